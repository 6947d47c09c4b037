package parser

import (
	"slices"

	"grammarsmith/source"
)

// Parser is a forward-only cursor over a sequence of spanned tokens.
type Parser[T Token[K], K comparable] struct {
	current int
	tokens  []source.Spanned[T]
	eof     *source.Spanned[T]
	eofKind K
}

// New creates a parser over tokens. eof is returned whenever the cursor runs
// past the sequence; its kind marks the end of the stream. Trailing tokens
// of that kind inside tokens are allowed and behave the same way.
func New[T Token[K], K comparable](tokens []source.Spanned[T], eof *source.Spanned[T]) *Parser[T, K] {
	return &Parser[T, K]{
		tokens:  tokens,
		eof:     eof,
		eofKind: eof.Value.TokenKind(),
	}
}

// EOFKind returns the end-of-stream kind.
func (p *Parser[T, K]) EOFKind() K {
	return p.eofKind
}

// Len returns the number of real tokens.
func (p *Parser[T, K]) Len() int {
	return len(p.tokens)
}

// Pos returns the cursor index. Together with Reset it lets a grammar
// snapshot and restore the cursor when it needs backtracking.
func (p *Parser[T, K]) Pos() int {
	return p.current
}

// Reset moves the cursor back to a position previously returned by Pos.
// Positions outside [0, Pos()] are ignored and reported as false.
func (p *Parser[T, K]) Reset(pos int) bool {
	if pos < 0 || pos > p.current {
		return false
	}
	p.current = pos
	return true
}

// Peek returns the kind at the cursor.
func (p *Parser[T, K]) Peek() K {
	return p.PeekToken().Value.TokenKind()
}

// PeekToken returns the token at the cursor, or the sentinel past the end.
func (p *Parser[T, K]) PeekToken() *source.Spanned[T] {
	return p.at(p.current)
}

// Previous returns the most recently consumed token, or the sentinel if
// nothing has been consumed yet.
func (p *Parser[T, K]) Previous() *source.Spanned[T] {
	return p.at(p.current - 1)
}

func (p *Parser[T, K]) at(i int) *source.Spanned[T] {
	if i < 0 || i >= len(p.tokens) {
		return p.eof
	}
	return &p.tokens[i]
}

// IsAtEnd reports whether the kind at the cursor is the end-of-stream kind.
func (p *Parser[T, K]) IsAtEnd() bool {
	return p.Peek() == p.eofKind
}

// Check reports whether the cursor is on kind. Always false at the end, even
// when kind is the end-of-stream kind; use CheckOneOf for that.
func (p *Parser[T, K]) Check(kind K) bool {
	if p.IsAtEnd() {
		return false
	}
	return p.Peek() == kind
}

// CheckOneOf reports whether the kind at the cursor is one of kinds.
// It is evaluated at the end of the stream too.
func (p *Parser[T, K]) CheckOneOf(kinds ...K) bool {
	return slices.Contains(kinds, p.Peek())
}

// Advance consumes the token at the cursor unless at the end, and returns
// Previous. At the end it is a no-op that returns the sentinel.
func (p *Parser[T, K]) Advance() *source.Spanned[T] {
	if !p.IsAtEnd() {
		p.current++
		return p.Previous()
	}
	return p.eof
}

// Accept consumes the token at the cursor iff it has the given kind.
func (p *Parser[T, K]) Accept(kind K) bool {
	if p.Check(kind) {
		p.Advance()
		return true
	}
	return false
}

// Optional is Accept for productions where a miss is not an error.
func (p *Parser[T, K]) Optional(kind K) bool {
	return p.Accept(kind)
}

// AcceptOneOf consumes the token at the cursor if it matches any of kinds,
// tried in order. The consumed token is available through Previous.
func (p *Parser[T, K]) AcceptOneOf(kinds ...K) bool {
	for _, k := range kinds {
		if p.Check(k) {
			p.Advance()
			return true
		}
	}
	return false
}

// SynchronizeUntil skips tokens until the cursor reaches one of kinds or the
// end of the stream, and returns the union of the skipped spans. ok is false
// when nothing was skipped.
func (p *Parser[T, K]) SynchronizeUntil(kinds ...K) (skipped source.Span, ok bool) {
	for !p.IsAtEnd() && !slices.Contains(kinds, p.Peek()) {
		tok := p.Advance()
		if ok {
			skipped = skipped.Union(tok.Span)
		} else {
			skipped, ok = tok.Span, true
		}
	}
	return skipped, ok
}
