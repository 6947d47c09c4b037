package testkit

import (
	"strings"
	"testing"

	"grammarsmith/internal/calc"
	"grammarsmith/source"
)

func TestCheckTokenInvariants(t *testing.T) {
	inputs := []string{
		"",
		"1 + 2",
		"let ÿ = 1_000 * (x / 7); ÿ # done",
		"1 $ 2 @@ 3",
		"🦀 + é",
	}
	for _, src := range inputs {
		if err := CheckTokenInvariants(calc.Scan(src, nil), src); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTokenInvariantsDetectsOverlap(t *testing.T) {
	src := "12"
	tokens := []source.Spanned[calc.Token]{
		source.SpannedUnchecked(calc.Token{Kind: calc.Number, Text: "12"}, 0, 2),
		source.SpannedUnchecked(calc.Token{Kind: calc.Number, Text: "2"}, 1, 2),
	}
	err := CheckTokenInvariants(tokens, src)
	if err == nil || !strings.Contains(err.Error(), "overlaps") {
		t.Fatalf("err = %v", err)
	}
}

func TestCheckSpanInvariants(t *testing.T) {
	inputs := []string{
		"1 + 2 * 3",
		"let a = (1 + 2) * 3; let b = a / 2; a + b;",
		"1 +",
		"let = 5; (1 + ; 7",
	}
	for _, src := range inputs {
		prog := calc.Parse(calc.Scan(src, nil), calc.EOFToken(src), calc.Options{})
		if err := CheckSpanInvariants(prog, src); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckSpanInvariantsDetectsEscape(t *testing.T) {
	src := "1 + 2"
	prog := calc.Parse(calc.Scan(src, nil), calc.EOFToken(src), calc.Options{})
	bin := prog.Stmts[0].(*calc.ExprStmt).X.(*calc.BinaryExpr)
	bin.Right.SetSpan(source.SpanUnchecked(4, 9))
	if err := CheckSpanInvariants(prog, src); err == nil {
		t.Fatal("expected an error")
	}
}
