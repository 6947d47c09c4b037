package parser

// Token is the capability a token type must provide: a comparable kind,
// ignoring any payload.
type Token[K comparable] interface {
	TokenKind() K
}
