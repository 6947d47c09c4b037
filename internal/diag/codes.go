package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0
	// Lexical
	LexInfo        Code = 1000
	LexUnknownChar Code = 1001
	LexBadNumber   Code = 1002

	// Syntax
	SynInfo             Code = 2000
	SynUnexpectedToken  Code = 2001
	SynExpectExpression Code = 2002
	SynExpectIdentifier Code = 2003
	SynExpectAssign     Code = 2004
	SynUnclosedParen    Code = 2005
	SynExpectSemicolon  Code = 2006
	SynSkippedTokens    Code = 2007

	// Evaluation
	EvalInfo          Code = 3000
	EvalDivByZero     Code = 3001
	EvalOverflow      Code = 3002
	EvalUnderflow     Code = 3003
	EvalUnknownVar    Code = 3004
	EvalInvalidSyntax Code = 3005

	// IO
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	LexInfo:             "Lexical information",
	LexUnknownChar:      "Unknown character",
	LexBadNumber:        "Bad number literal",
	SynInfo:             "Syntax information",
	SynUnexpectedToken:  "Unexpected token",
	SynExpectExpression: "Expected expression",
	SynExpectIdentifier: "Expected identifier",
	SynExpectAssign:     "Expected '='",
	SynUnclosedParen:    "Unclosed parenthesis",
	SynExpectSemicolon:  "Expected ';'",
	SynSkippedTokens:    "Tokens skipped during recovery",
	EvalInfo:            "Evaluation information",
	EvalDivByZero:       "Division by zero",
	EvalOverflow:        "Integer overflow",
	EvalUnderflow:       "Integer underflow",
	EvalUnknownVar:      "Unknown variable",
	EvalInvalidSyntax:   "Cannot evaluate invalid syntax",
	IOLoadFileError:     "Failed to load file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EVL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
