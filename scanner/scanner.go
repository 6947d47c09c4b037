package scanner

import (
	"fmt"

	"fortio.org/safecast"

	"grammarsmith/source"
)

// Predicate classifies a single character.
type Predicate func(rune) bool

// Scanner is a forward-only cursor over the characters of a text buffer.
type Scanner struct {
	src     string
	start   source.BytePos
	current source.BytePos
	it      decoder
}

// New creates a scanner positioned at the beginning of src.
func New(src string) *Scanner {
	// positions are uint32; reject buffers that cannot be addressed
	source.PosFromInt(len(src))
	return &Scanner{
		src: src,
		it:  decoder{src: src},
	}
}

// Source returns the whole buffer.
func (s *Scanner) Source() string {
	return s.src
}

// Start returns the position recorded by the last MarkTokenStart.
func (s *Scanner) Start() source.BytePos {
	return s.start
}

// Current returns the read position.
func (s *Scanner) Current() source.BytePos {
	return s.current
}

// AtEnd reports whether every character has been consumed.
func (s *Scanner) AtEnd() bool {
	return s.current.Int() >= len(s.src)
}

// MarkTokenStart begins a new token at the current position.
func (s *Scanner) MarkTokenStart() {
	s.start = s.current
}

// Slice returns the text between the token start and the current position.
func (s *Scanner) Slice() string {
	return s.src[s.start:s.current]
}

// Span returns [token start, current).
func (s *Scanner) Span() source.Span {
	return source.Span{Start: s.start, End: s.current}
}

// Remaining returns the unconsumed suffix of the buffer.
func (s *Scanner) Remaining() string {
	return s.src[s.it.off:]
}

// Advance consumes and returns the next character.
// ok is false at end of input; nothing moves in that case.
func (s *Scanner) Advance() (r rune, ok bool) {
	r, size := s.it.next()
	if size == 0 {
		return 0, false
	}
	usz, err := safecast.Conv[uint32](size)
	if err != nil {
		panic(fmt.Errorf("rune width overflow: %w", err))
	}
	s.current = s.current.Add(usz)
	return r, true
}

// Peek returns the next character without consuming it.
func (s *Scanner) Peek() (r rune, ok bool) {
	r, size := s.it.peek()
	if size == 0 {
		return 0, false
	}
	return r, true
}

// PeekSecond returns the character after the one Peek would return.
// It runs on a copy of the decode cursor, so Peek/Advance are unaffected.
func (s *Scanner) PeekSecond() (r rune, ok bool) {
	it := s.it
	if _, size := it.next(); size == 0 {
		return 0, false
	}
	r, size := it.peek()
	if size == 0 {
		return 0, false
	}
	return r, true
}

// IfNext reports whether the next character satisfies pred, without
// consuming it. False at end of input.
func (s *Scanner) IfNext(pred Predicate) bool {
	r, ok := s.Peek()
	return ok && pred(r)
}

// ConsumeIf consumes one character iff it satisfies pred.
func (s *Scanner) ConsumeIf(pred Predicate) bool {
	if !s.IfNext(pred) {
		return false
	}
	s.Advance()
	return true
}

// ConsumeIfNext consumes the next character iff the character after it
// satisfies pred. Useful for constructs like "_" digit separators where the
// current character is only part of the token when followed by something.
func (s *Scanner) ConsumeIfNext(pred Predicate) bool {
	r, ok := s.PeekSecond()
	if !ok || !pred(r) {
		return false
	}
	s.Advance()
	return true
}

// ConsumeWhile consumes characters while pred holds and returns them in
// order. The first non-matching character is left in place.
func (s *Scanner) ConsumeWhile(pred Predicate) []rune {
	var consumed []rune
	for {
		r, ok := s.Peek()
		if !ok || !pred(r) {
			return consumed
		}
		consumed = append(consumed, r)
		s.Advance()
	}
}

// SkipWhile is ConsumeWhile without collecting the characters.
// It returns the number of characters consumed.
func (s *Scanner) SkipWhile(pred Predicate) int {
	n := 0
	for s.ConsumeIf(pred) {
		n++
	}
	return n
}

// MatchChar consumes the next character iff it equals expected.
func (s *Scanner) MatchChar(expected rune) bool {
	r, ok := s.Peek()
	if !ok || r != expected {
		return false
	}
	s.Advance()
	return true
}

// WithSpan packages value with the span of the current token.
func WithSpan[T any](s *Scanner, value T) source.Spanned[T] {
	return source.Spanned[T]{Value: value, Span: s.Span()}
}
