package calc_test

import (
	"strconv"
	"testing"

	"grammarsmith/internal/calc"
	"grammarsmith/internal/diag"
	"grammarsmith/source"
)

func parse(t *testing.T, src string) (*calc.Program, *testReporter) {
	t.Helper()
	rep := &testReporter{}
	prog := calc.Parse(calc.Scan(src, rep), calc.EOFToken(src), calc.Options{Reporter: rep})
	return prog, rep
}

// render prints the tree in prefix form.
func render(prog *calc.Program, e calc.Expr) string {
	switch e := e.(type) {
	case *calc.NumberExpr:
		return strconv.FormatUint(e.Value, 10)
	case *calc.VarExpr:
		return prog.Names.MustLookup(e.Name)
	case *calc.BinaryExpr:
		return "(" + e.Op.String() + " " + render(prog, e.Left) + " " + render(prog, e.Right) + ")"
	case *calc.ParenExpr:
		return render(prog, e.Inner)
	case *calc.ErrorExpr:
		return "<error>"
	}
	return "?"
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"a + b * c", "(+ a (* b c))"},
		{"a * b + c", "(+ (* a b) c)"},
		{"a - b - c", "(- (- a b) c)"},
		{"a / b / c", "(/ (/ a b) c)"},
		{"(a + b) * c", "(* (+ a b) c)"},
		{"a + b * c / d - e", "(- (+ a (/ (* b c) d)) e)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog, rep := parse(t, tt.src)
			if len(rep.diagnostics) != 0 || prog.Errors != 0 {
				t.Fatalf("unexpected diagnostics: %v", rep.diagnostics)
			}
			if len(prog.Stmts) != 1 {
				t.Fatalf("got %d statements", len(prog.Stmts))
			}
			got := render(prog, prog.Stmts[0].(*calc.ExprStmt).X)
			if got != tt.want {
				t.Fatalf("tree = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseSpans(t *testing.T) {
	src := "let x = (1 + 2) * 3;"
	prog, rep := parse(t, src)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.diagnostics)
	}
	let := prog.Stmts[0].(*calc.LetStmt)
	if got := let.Span.Text(src); got != "let x = (1 + 2) * 3" {
		t.Errorf("let span text = %q", got)
	}
	if got := let.NameSpan.Text(src); got != "x" {
		t.Errorf("name span text = %q", got)
	}
	bin := let.Value.(*calc.BinaryExpr)
	if got := bin.Left.GetSpan().Text(src); got != "(1 + 2)" {
		t.Errorf("paren span text = %q", got)
	}
	if got := bin.OpSpan.Text(src); got != "*" {
		t.Errorf("op span text = %q", got)
	}

	// every child span lies inside its parent
	calc.Walk(let, func(n calc.Node) bool {
		parent := n.GetSpan()
		calc.Walk(n, func(c calc.Node) bool {
			if !parent.ContainsSpan(c.GetSpan()) {
				t.Errorf("span %s escapes parent %s", c.GetSpan(), parent)
			}
			return true
		})
		return true
	})
}

func TestParseStatements(t *testing.T) {
	prog, rep := parse(t, "let a = 1; let b = a + 1;; b * 2;")
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.diagnostics)
	}
	if len(prog.Stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(prog.Stmts))
	}
	if _, ok := prog.Stmts[2].(*calc.ExprStmt); !ok {
		t.Fatalf("last statement is %T", prog.Stmts[2])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		codes []diag.Code
		stmts int
	}{
		{"missing operand", "1 +", []diag.Code{diag.SynExpectExpression}, 1},
		{"unclosed paren", "(1 + 2", []diag.Code{diag.SynUnclosedParen}, 1},
		{"let without name", "let = 3; 4", []diag.Code{diag.SynExpectIdentifier, diag.SynSkippedTokens}, 2},
		{"let without assign", "let x 3; 4", []diag.Code{diag.SynExpectAssign, diag.SynSkippedTokens}, 2},
		{"missing semicolon", "1 2; 3", []diag.Code{diag.SynExpectSemicolon, diag.SynSkippedTokens}, 2},
		{"stray paren", ") ; 5", []diag.Code{diag.SynExpectExpression, diag.SynSkippedTokens}, 2},
		{"invalid token", "1 + $; 2", []diag.Code{diag.LexUnknownChar}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, rep := parse(t, tt.src)
			got := rep.codes()
			if len(got) != len(tt.codes) {
				t.Fatalf("codes = %v, want %v", got, tt.codes)
			}
			for i := range got {
				if got[i] != tt.codes[i] {
					t.Fatalf("codes = %v, want %v", got, tt.codes)
				}
			}
			if len(prog.Stmts) != tt.stmts {
				t.Fatalf("got %d statements, want %d", len(prog.Stmts), tt.stmts)
			}
			if prog.Errors == 0 {
				t.Fatal("Errors = 0")
			}
		})
	}
}

func TestParseRecoverySkippedSpan(t *testing.T) {
	src := "1 2 3; 4"
	_, rep := parse(t, src)
	var skipped *diag.Diagnostic
	for i := range rep.diagnostics {
		if rep.diagnostics[i].Code == diag.SynSkippedTokens {
			skipped = &rep.diagnostics[i]
		}
	}
	if skipped == nil {
		t.Fatal("no skipped-tokens diagnostic")
	}
	if skipped.Severity != diag.SevWarning {
		t.Errorf("severity = %v", skipped.Severity)
	}
	if got := skipped.Primary.Text(src); got != "2 3" {
		t.Errorf("skipped text = %q, want %q", got, "2 3")
	}
}

func TestParseUnclosedParenNote(t *testing.T) {
	src := "(1 + 2"
	_, rep := parse(t, src)
	d := rep.diagnostics[0]
	if len(d.Notes) != 1 || d.Notes[0].Span != source.SpanUnchecked(0, 1) {
		t.Fatalf("notes = %+v", d.Notes)
	}
	if d.Primary != source.Point(6) {
		t.Fatalf("primary = %s", d.Primary)
	}
}

func TestParseMaxErrors(t *testing.T) {
	src := "+; +; +; +"
	rep := &testReporter{}
	prog := calc.Parse(calc.Scan(src, rep), calc.EOFToken(src), calc.Options{Reporter: rep, MaxErrors: 2})
	if prog.Errors != 2 {
		t.Fatalf("Errors = %d, want 2", prog.Errors)
	}
}
