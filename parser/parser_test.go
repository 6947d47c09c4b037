package parser

import (
	"testing"

	"grammarsmith/source"
)

type kind uint8

const (
	kNum kind = iota
	kPlus
	kSemi
	kLParen
	kRParen
	kEOF
)

type tok struct {
	k    kind
	text string
}

func (t tok) TokenKind() kind { return t.k }

// stream builds "1 + 2 ; ( 3 )"-like sequences where each token is one byte
// wide followed by one space.
func stream(kinds ...kind) []source.Spanned[tok] {
	out := make([]source.Spanned[tok], 0, len(kinds))
	for i, k := range kinds {
		start := uint32(i * 2)
		out = append(out, source.SpannedUnchecked(tok{k: k}, start, start+1))
	}
	return out
}

func newParser(kinds ...kind) (*Parser[tok, kind], *source.Spanned[tok]) {
	eof := source.EmptySpanned(tok{k: kEOF})
	return New[tok, kind](stream(kinds...), &eof), &eof
}

func TestEmptyStream(t *testing.T) {
	p, eof := newParser()
	if !p.IsAtEnd() {
		t.Error("empty stream should be at end")
	}
	if p.Peek() != kEOF {
		t.Errorf("Peek() = %v, want EOF kind", p.Peek())
	}
	if p.PeekToken() != eof {
		t.Error("PeekToken() should be the sentinel")
	}
	if p.Previous() != eof {
		t.Error("Previous() before any consumption should be the sentinel")
	}
	if p.Advance() != eof {
		t.Error("Advance() at end should return the sentinel")
	}
	if p.Pos() != 0 {
		t.Errorf("Advance() at end moved cursor to %d", p.Pos())
	}
	if p.Check(kEOF) {
		t.Error("Check must be false at end, even for the EOF kind")
	}
	if !p.CheckOneOf(kSemi, kEOF) {
		t.Error("CheckOneOf should see the EOF kind at end")
	}
	if p.EOFKind() != kEOF || p.Len() != 0 {
		t.Errorf("EOFKind() = %v, Len() = %d", p.EOFKind(), p.Len())
	}
}

func TestPeekAndAdvance(t *testing.T) {
	p, eof := newParser(kNum, kPlus, kNum)

	if p.Peek() != kNum {
		t.Fatalf("Peek() = %v, want kNum", p.Peek())
	}
	first := p.Advance()
	if first.Value.k != kNum || first.Span != source.SpanUnchecked(0, 1) {
		t.Errorf("Advance() = %+v", first)
	}
	if p.Previous() != first {
		t.Error("Previous() should be the token just consumed")
	}
	if p.Peek() != kPlus {
		t.Errorf("Peek() = %v, want kPlus", p.Peek())
	}

	p.Advance()
	last := p.Advance()
	if last.Value.k != kNum || last.Span.Start != 4 {
		t.Errorf("third Advance() = %+v", last)
	}
	if !p.IsAtEnd() {
		t.Fatal("expected end after three tokens")
	}
	if p.PeekToken() != eof {
		t.Error("PeekToken() past end should be the sentinel")
	}
	for range 3 {
		if p.Advance() != eof {
			t.Error("Advance() at end should keep returning the sentinel")
		}
	}
	if p.Pos() != 3 {
		t.Errorf("cursor ran past the end: %d", p.Pos())
	}
	if p.Previous() != last {
		t.Error("Previous() after end should still be the last real token")
	}
}

func TestInSequenceEOFToken(t *testing.T) {
	p, _ := newParser(kNum, kEOF)
	p.Advance()
	if !p.IsAtEnd() {
		t.Error("an EOF-kind token inside the sequence should end the stream")
	}
	p.Advance()
	if p.Pos() != 1 {
		t.Errorf("Advance() consumed the EOF token: pos %d", p.Pos())
	}
}

func TestCheck(t *testing.T) {
	p, _ := newParser(kPlus)
	if !p.Check(kPlus) {
		t.Error("Check(kPlus) should be true")
	}
	if p.Check(kNum) {
		t.Error("Check(kNum) should be false")
	}
	if p.Pos() != 0 {
		t.Error("Check must not consume")
	}
	if !p.CheckOneOf(kNum, kPlus) {
		t.Error("CheckOneOf should match kPlus")
	}
	if p.CheckOneOf(kNum, kSemi) {
		t.Error("CheckOneOf should not match")
	}
}

func TestAccept(t *testing.T) {
	p, _ := newParser(kLParen, kNum, kRParen)

	if p.Accept(kNum) {
		t.Error("Accept(kNum) on '(' should fail")
	}
	if p.Pos() != 0 {
		t.Error("failed Accept moved the cursor")
	}
	if !p.Accept(kLParen) {
		t.Fatal("Accept(kLParen) should succeed")
	}
	if p.Optional(kSemi) {
		t.Error("Optional(kSemi) should fail on a number")
	}
	if !p.Optional(kNum) {
		t.Error("Optional(kNum) should succeed")
	}
	if !p.Accept(kRParen) {
		t.Error("Accept(kRParen) should succeed")
	}
	if p.Accept(kEOF) {
		t.Error("Accept at end should fail")
	}
}

func TestAcceptOneOf(t *testing.T) {
	p, _ := newParser(kPlus, kSemi)

	if p.AcceptOneOf(kNum, kLParen) {
		t.Error("AcceptOneOf should not match")
	}
	if !p.AcceptOneOf(kNum, kPlus, kSemi) {
		t.Fatal("AcceptOneOf should match kPlus")
	}
	if p.Previous().Value.k != kPlus {
		t.Errorf("Previous() = %v, want the matched kPlus", p.Previous().Value.k)
	}
	if !p.AcceptOneOf(kSemi) {
		t.Error("AcceptOneOf(kSemi) should match")
	}
	if p.AcceptOneOf(kSemi, kEOF) {
		t.Error("AcceptOneOf at end should fail")
	}
}

func TestSynchronizeUntil(t *testing.T) {
	t.Run("already at stop token", func(t *testing.T) {
		p, _ := newParser(kSemi, kNum)
		span, ok := p.SynchronizeUntil(kSemi)
		if ok {
			t.Errorf("expected nothing skipped, got %v", span)
		}
		if p.Pos() != 0 {
			t.Errorf("cursor moved to %d", p.Pos())
		}
	})

	t.Run("skips up to stop token", func(t *testing.T) {
		p, _ := newParser(kNum, kPlus, kPlus, kSemi, kNum)
		span, ok := p.SynchronizeUntil(kSemi, kRParen)
		if !ok {
			t.Fatal("expected tokens to be skipped")
		}
		if span != source.SpanUnchecked(0, 5) {
			t.Errorf("skipped span = %v, want 0..5", span)
		}
		if p.Peek() != kSemi {
			t.Errorf("cursor should rest on ';', got %v", p.Peek())
		}
	})

	t.Run("runs to end without stop token", func(t *testing.T) {
		p, _ := newParser(kNum, kNum)
		span, ok := p.SynchronizeUntil(kSemi)
		if !ok || span != source.SpanUnchecked(0, 3) {
			t.Errorf("SynchronizeUntil() = %v, %v; want 0..3, true", span, ok)
		}
		if !p.IsAtEnd() {
			t.Error("expected end of stream")
		}
	})

	t.Run("at end", func(t *testing.T) {
		p, _ := newParser()
		if _, ok := p.SynchronizeUntil(kSemi); ok {
			t.Error("nothing to skip at end")
		}
	})
}

func TestPosAndReset(t *testing.T) {
	p, _ := newParser(kNum, kPlus, kNum)
	mark := p.Pos()
	p.Advance()
	p.Advance()
	if !p.Reset(mark) {
		t.Fatal("Reset to an earlier position should succeed")
	}
	if p.Pos() != 0 || p.Peek() != kNum {
		t.Errorf("after Reset: pos %d kind %v", p.Pos(), p.Peek())
	}
	if p.Reset(2) {
		t.Error("Reset forward must be refused")
	}
	if p.Reset(-1) {
		t.Error("Reset to a negative position must be refused")
	}
}
