package calc

import "fmt"

// Kind is the category of a calculator token.
type Kind uint8

const (
	// Invalid marks a character the lexer could not classify.
	Invalid Kind = iota
	// EOF marks the end of the token stream.
	EOF
	Number
	Ident
	KwLet
	Plus
	Minus
	Star
	Slash
	LParen
	RParen
	Assign
	Semicolon
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Number:    "Number",
	Ident:     "Ident",
	KwLet:     "KwLet",
	Plus:      "Plus",
	Minus:     "Minus",
	Star:      "Star",
	Slash:     "Slash",
	LParen:    "LParen",
	RParen:    "RParen",
	Assign:    "Assign",
	Semicolon: "Semicolon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Token is a calculator token. Text is a slice of the source buffer.
type Token struct {
	Kind Kind
	Text string
	Num  uint64 // value of Number tokens
}

// TokenKind implements parser.Token.
func (t Token) TokenKind() Kind {
	return t.Kind
}

// IsOperator reports whether the token is a binary operator.
func (t Token) IsOperator() bool {
	switch t.Kind {
	case Plus, Minus, Star, Slash:
		return true
	default:
		return false
	}
}

// Describe renders the token for "expected X, got Y" messages.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case Number, Ident, Invalid:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	default:
		return fmt.Sprintf("%q", t.Text)
	}
}
