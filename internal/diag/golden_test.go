package diag

import (
	"testing"

	"grammarsmith/internal/fileset"
	"grammarsmith/source"
)

func TestFormatGoldenDiagnostics(t *testing.T) {
	fs := fileset.NewFileSet()
	fs.SetBaseDir("/workspace")

	userFile := fs.Add("/workspace/testdata/sample.calc", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     EvalDivByZero,
			Message:  "another",
			File:     userFile,
			Primary:  source.SpanUnchecked(2, 3),
		},
		{
			Severity: SevError,
			Code:     SynUnexpectedToken,
			Message:  "first line\nsecond",
			File:     userFile,
			Primary:  source.SpanUnchecked(0, 1),
			Notes: []Note{
				{Span: source.SpanUnchecked(2, 3), Msg: "note line"},
				{Span: source.SpanUnchecked(40, 41), Msg: "out of range"},
			},
		},
	}

	expected := "error SYN2001 testdata/sample.calc:1:1 first line second\n" +
		"note SYN2001 testdata/sample.calc:2:1 note line\n" +
		"warning EVL3001 testdata/sample.calc:2:1 another"

	if got := FormatGoldenDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected golden diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}

	if got := FormatGoldenDiagnostics(nil, fs, true); got != "" {
		t.Errorf("expected empty output, got %q", got)
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "LEX1001"},
		{SynExpectExpression, "SYN2002"},
		{EvalDivByZero, "EVL3001"},
		{IOLoadFileError, "IO4001"},
		{UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
	if EvalDivByZero.String() != "[EVL3001]: Division by zero" {
		t.Errorf("String() = %q", EvalDivByZero.String())
	}
	if Code(9999).Title() != "Unknown error" {
		t.Errorf("unknown Title() = %q", Code(9999).Title())
	}
}
