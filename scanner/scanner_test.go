package scanner

import (
	"slices"
	"testing"
	"unicode"

	"grammarsmith/source"
)

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

// TestAdvanceMultiByte проверяет, что курсор двигается на ширину руны в байтах
func TestAdvanceMultiByte(t *testing.T) {
	sc := New("123🦀€é")
	if sc.Slice() != "" {
		t.Fatalf("expected empty slice before advancing, got %q", sc.Slice())
	}

	want := []string{"1", "12", "123", "123🦀", "123🦀€", "123🦀€é"}
	for i, w := range want {
		if _, ok := sc.Advance(); !ok {
			t.Fatalf("step %d: unexpected end of input", i)
		}
		if sc.Slice() != w {
			t.Errorf("step %d: Slice() = %q, want %q", i, sc.Slice(), w)
		}
	}

	if _, ok := sc.Advance(); ok {
		t.Error("expected end of input")
	}
	if sc.Current() != source.BytePos(len("123🦀€é")) {
		t.Errorf("Current() = %d, want %d", sc.Current(), len("123🦀€é"))
	}
	if !sc.AtEnd() {
		t.Error("AtEnd() should be true")
	}
}

func TestPeek(t *testing.T) {
	sc := New("123🦀€é")
	for _, want := range []rune{'1', '2', '3', '🦀', '€', 'é'} {
		r, ok := sc.Peek()
		if !ok || r != want {
			t.Fatalf("Peek() = %q, %v; want %q", r, ok, want)
		}
		// repeated peeks are idempotent
		if r2, _ := sc.Peek(); r2 != r {
			t.Fatalf("second Peek() = %q, want %q", r2, r)
		}
		sc.Advance()
	}
	if _, ok := sc.Peek(); ok {
		t.Error("Peek() at end should report no input")
	}
}

func TestPeekSecond(t *testing.T) {
	sc := New("a€b")
	r, ok := sc.PeekSecond()
	if !ok || r != '€' {
		t.Fatalf("PeekSecond() = %q, %v; want '€'", r, ok)
	}
	if r, _ := sc.Peek(); r != 'a' {
		t.Errorf("PeekSecond disturbed Peek: got %q", r)
	}
	if sc.Current() != 0 {
		t.Errorf("PeekSecond moved the cursor to %d", sc.Current())
	}

	sc.Advance()
	sc.Advance()
	if _, ok := sc.PeekSecond(); ok {
		t.Error("PeekSecond() with one character left should report no input")
	}
	sc.Advance()
	if _, ok := sc.PeekSecond(); ok {
		t.Error("PeekSecond() at end should report no input")
	}
}

func TestConsumeIf(t *testing.T) {
	sc := New("123abc")
	for _, want := range []string{"1", "12", "123"} {
		if !sc.ConsumeIf(unicode.IsDigit) {
			t.Fatalf("ConsumeIf should consume before %q", want)
		}
		if sc.Slice() != want {
			t.Errorf("Slice() = %q, want %q", sc.Slice(), want)
		}
	}
	if sc.ConsumeIf(unicode.IsDigit) {
		t.Error("ConsumeIf consumed a letter")
	}
	if sc.Slice() != "123" {
		t.Errorf("Slice() = %q, want %q", sc.Slice(), "123")
	}
}

func TestConsumeIfNext(t *testing.T) {
	sc := New("123abc")
	if !sc.ConsumeIfNext(unicode.IsDigit) {
		t.Fatal("expected consume: second char is a digit")
	}
	if sc.Slice() != "1" {
		t.Errorf("Slice() = %q, want %q", sc.Slice(), "1")
	}
	if !sc.ConsumeIfNext(unicode.IsDigit) {
		t.Fatal("expected consume: second char is a digit")
	}
	if sc.Slice() != "12" {
		t.Errorf("Slice() = %q, want %q", sc.Slice(), "12")
	}
	if sc.ConsumeIfNext(unicode.IsDigit) {
		t.Error("second char is 'a', nothing should be consumed")
	}
	if sc.Slice() != "12" {
		t.Errorf("Slice() = %q, want %q", sc.Slice(), "12")
	}
}

func TestIfNext(t *testing.T) {
	sc := New("123abc")
	if !sc.IfNext(unicode.IsDigit) {
		t.Error("IfNext should see a digit")
	}
	if sc.Slice() != "" {
		t.Errorf("IfNext consumed input: %q", sc.Slice())
	}
	if New("").IfNext(unicode.IsDigit) {
		t.Error("IfNext on empty input must be false")
	}
}

func TestConsumeWhile(t *testing.T) {
	sc := New("123abc")
	got := sc.ConsumeWhile(isDigit)
	if !slices.Equal(got, []rune{'1', '2', '3'}) {
		t.Errorf("ConsumeWhile() = %q, want [1 2 3]", got)
	}
	if r, _ := sc.Peek(); r != 'a' {
		t.Errorf("cursor should stop at 'a', got %q", r)
	}
	if sc.Current() != 3 {
		t.Errorf("Current() = %d, want 3", sc.Current())
	}

	if got := sc.ConsumeWhile(isDigit); len(got) != 0 {
		t.Errorf("ConsumeWhile() on non-match = %q, want nothing", got)
	}

	rest := sc.ConsumeWhile(unicode.IsLetter)
	if string(rest) != "abc" || !sc.AtEnd() {
		t.Errorf("ConsumeWhile(letters) = %q, AtEnd=%v", string(rest), sc.AtEnd())
	}
}

func TestSkipWhile(t *testing.T) {
	sc := New("   x")
	if n := sc.SkipWhile(unicode.IsSpace); n != 3 {
		t.Errorf("SkipWhile() = %d, want 3", n)
	}
	if r, _ := sc.Peek(); r != 'x' {
		t.Errorf("Peek() = %q, want 'x'", r)
	}
}

func TestMatchChar(t *testing.T) {
	sc := New("=>")
	if sc.MatchChar('>') {
		t.Error("MatchChar('>') should fail on '='")
	}
	if !sc.MatchChar('=') || !sc.MatchChar('>') {
		t.Error("expected to match '=' then '>'")
	}
	if sc.MatchChar('>') {
		t.Error("MatchChar at end must fail")
	}
}

func TestMarkTokenStartAndWithSpan(t *testing.T) {
	sc := New("ab 🦀x")
	sc.Advance()
	sc.Advance()
	tok := WithSpan(sc, "ab")
	if tok.Span != source.SpanUnchecked(0, 2) || tok.Value != "ab" {
		t.Errorf("WithSpan = %+v, want ab@0..2", tok)
	}

	sc.Advance() // space
	sc.MarkTokenStart()
	if sc.Start() != 3 {
		t.Errorf("Start() = %d, want 3", sc.Start())
	}
	sc.Advance()
	crab := WithSpan(sc, 'c')
	if crab.Span != source.SpanUnchecked(3, 7) {
		t.Errorf("crab span = %v, want 3..7", crab.Span)
	}
	if sc.Slice() != "🦀" {
		t.Errorf("Slice() = %q", sc.Slice())
	}
	if sc.Remaining() != "x" {
		t.Errorf("Remaining() = %q, want %q", sc.Remaining(), "x")
	}
}

func TestInvalidUTF8AdvancesOneByte(t *testing.T) {
	sc := New("a\xffb")
	sc.Advance()
	r, ok := sc.Advance()
	if !ok || r != '�' {
		t.Fatalf("Advance() = %q, %v; want RuneError", r, ok)
	}
	if sc.Current() != 2 {
		t.Errorf("Current() = %d, want 2", sc.Current())
	}
	if r, _ := sc.Advance(); r != 'b' {
		t.Errorf("Advance() = %q, want 'b'", r)
	}
}
