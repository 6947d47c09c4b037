package calc_test

import (
	"testing"

	"grammarsmith/internal/calc"
	"grammarsmith/internal/diag"
	"grammarsmith/source"
)

// testReporter собирает диагностики, полученные от лексера и парсера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func (r *testReporter) codes() []diag.Code {
	out := make([]diag.Code, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func kinds(tokens []source.Spanned[calc.Token]) []calc.Kind {
	out := make([]calc.Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Value.Kind)
	}
	return out
}

func equalKinds(a, b []calc.Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScanKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []calc.Kind
	}{
		{"empty", "", nil},
		{"only trivia", "  \n\t # comment\n// another", nil},
		{"arith", "1+2*3", []calc.Kind{calc.Number, calc.Plus, calc.Number, calc.Star, calc.Number}},
		{"let", "let x = (y - 1) / 2;", []calc.Kind{
			calc.KwLet, calc.Ident, calc.Assign, calc.LParen, calc.Ident, calc.Minus,
			calc.Number, calc.RParen, calc.Slash, calc.Number, calc.Semicolon,
		}},
		{"slash vs comment", "4 / 2 // half", []calc.Kind{calc.Number, calc.Slash, calc.Number}},
		{"keyword prefix is ident", "letter", []calc.Kind{calc.Ident}},
		{"unicode ident", "длина * 2", []calc.Kind{calc.Ident, calc.Star, calc.Number}},
		{"unknown char", "1 $ 2", []calc.Kind{calc.Number, calc.Invalid, calc.Number}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(calc.Scan(tt.src, nil))
			if !equalKinds(got, tt.want) {
				t.Fatalf("Scan(%q) kinds = %v, want %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestScanSpansAndText(t *testing.T) {
	src := "let π = 3_141 # pi"
	tokens := calc.Scan(src, nil)
	want := []struct {
		text       string
		start, end uint32
	}{
		{"let", 0, 3},
		{"π", 4, 6},
		{"=", 7, 8},
		{"3_141", 9, 14},
	}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		tok := tokens[i]
		if tok.Value.Text != w.text {
			t.Errorf("token %d text = %q, want %q", i, tok.Value.Text, w.text)
		}
		if tok.Span != source.SpanUnchecked(w.start, w.end) {
			t.Errorf("token %d span = %s, want %d..%d", i, tok.Span, w.start, w.end)
		}
		if tok.Span.Text(src) != tok.Value.Text {
			t.Errorf("token %d span text %q does not match %q", i, tok.Span.Text(src), tok.Value.Text)
		}
	}
	if tokens[3].Value.Num != 3141 {
		t.Errorf("number value = %d, want 3141", tokens[3].Value.Num)
	}
}

func TestScanDigitSeparators(t *testing.T) {
	tests := []struct {
		src   string
		kinds []calc.Kind
		num   uint64
	}{
		{"1_000_000", []calc.Kind{calc.Number}, 1000000},
		// "_" without a following digit is not part of the number
		{"12_", []calc.Kind{calc.Number, calc.Ident}, 12},
		{"12__3", []calc.Kind{calc.Number, calc.Ident}, 12},
		{"7_x", []calc.Kind{calc.Number, calc.Ident}, 7},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens := calc.Scan(tt.src, nil)
			if got := kinds(tokens); !equalKinds(got, tt.kinds) {
				t.Fatalf("kinds = %v, want %v", got, tt.kinds)
			}
			if tokens[0].Value.Num != tt.num {
				t.Fatalf("value = %d, want %d", tokens[0].Value.Num, tt.num)
			}
		})
	}
}

func TestScanReportsErrors(t *testing.T) {
	rep := &testReporter{}
	tokens := calc.Scan("1 @ 99999999999999999999", rep)
	if got := kinds(tokens); !equalKinds(got, []calc.Kind{calc.Number, calc.Invalid, calc.Invalid}) {
		t.Fatalf("kinds = %v", got)
	}
	codes := rep.codes()
	if len(codes) != 2 || codes[0] != diag.LexUnknownChar || codes[1] != diag.LexBadNumber {
		t.Fatalf("codes = %v", codes)
	}
	if rep.diagnostics[0].Primary != source.SpanUnchecked(2, 3) {
		t.Errorf("unknown char span = %s", rep.diagnostics[0].Primary)
	}
}

func TestEOFToken(t *testing.T) {
	eof := calc.EOFToken("1 + 2")
	if eof.Value.Kind != calc.EOF {
		t.Fatalf("kind = %v", eof.Value.Kind)
	}
	if eof.Span != source.Point(5) {
		t.Fatalf("span = %s, want 5..5", eof.Span)
	}
}
