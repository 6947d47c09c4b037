// Package parser provides a generic cursor over a finished token sequence.
//
// Parser works with any token type whose kind is comparable. The end of the
// stream is represented by a caller-supplied sentinel token; its kind is the
// end-of-stream kind. Reading past the real sequence yields the sentinel, so
// no operation here panics or indexes out of bounds.
//
// Typical use in a recursive-descent or Pratt parser:
//
//	p := parser.New[Token, Kind](tokens, &eof)
//	if !p.Accept(KindLet) { ... }
//	if !p.Accept(KindIdent) {
//		report(p.PeekToken().Span, "expected identifier")
//		skipped, ok := p.SynchronizeUntil(KindSemicolon)
//		...
//	}
//
// The token slice and the sentinel are borrowed and must outlive the parser.
package parser
