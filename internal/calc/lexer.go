package calc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"grammarsmith/internal/diag"
	"grammarsmith/scanner"
	"grammarsmith/source"
)

type lexer struct {
	sc  *scanner.Scanner
	rep diag.Reporter
}

// Scan tokenizes src. Unknown characters and out-of-range numbers are
// reported to rep and produce Invalid tokens, so the result always covers
// the whole input. rep may be nil.
func Scan(src string, rep diag.Reporter) []source.Spanned[Token] {
	if rep == nil {
		rep = diag.NopReporter{}
	}
	lx := lexer{sc: scanner.New(src), rep: rep}
	var tokens []source.Spanned[Token]
	for {
		lx.sc.MarkTokenStart()
		c, ok := lx.sc.Advance()
		if !ok {
			break
		}
		if tok, ok := lx.scanToken(c); ok {
			tokens = append(tokens, scanner.WithSpan(lx.sc, tok))
		}
	}
	return tokens
}

// EOFToken returns the end-of-stream sentinel for src: a point span at the
// end of the buffer, so "unexpected end of input" diagnostics land after the
// last character.
func EOFToken(src string) source.Spanned[Token] {
	return source.NewSpanned(Token{Kind: EOF}, source.PointAt(source.PosFromInt(len(src))))
}

// scanToken classifies the token starting with c. ok is false for trivia.
func (lx *lexer) scanToken(c rune) (Token, bool) {
	switch {
	case unicode.IsSpace(c):
		lx.sc.SkipWhile(unicode.IsSpace)
		return Token{}, false
	case c == '#':
		lx.skipLineComment()
		return Token{}, false
	case c == '/' && lx.sc.MatchChar('/'):
		lx.skipLineComment()
		return Token{}, false
	case isDigit(c):
		return lx.scanNumber(), true
	case isIdentStart(c):
		return lx.scanIdent(), true
	}

	kind := Invalid
	switch c {
	case '+':
		kind = Plus
	case '-':
		kind = Minus
	case '*':
		kind = Star
	case '/':
		kind = Slash
	case '(':
		kind = LParen
	case ')':
		kind = RParen
	case '=':
		kind = Assign
	case ';':
		kind = Semicolon
	default:
		lx.rep.Report(diag.LexUnknownChar, diag.SevError, lx.sc.Span(),
			fmt.Sprintf("unknown character %q", c), nil)
	}
	return Token{Kind: kind, Text: lx.sc.Slice()}, true
}

func (lx *lexer) skipLineComment() {
	lx.sc.SkipWhile(func(r rune) bool { return r != '\n' })
}

// scanNumber reads digits with "_" separators; a "_" only belongs to the
// number when a digit follows it.
func (lx *lexer) scanNumber() Token {
	for {
		lx.sc.SkipWhile(isDigit)
		if !lx.sc.IfNext(isUnderscore) || !lx.sc.ConsumeIfNext(isDigit) {
			break
		}
	}
	text := lx.sc.Slice()
	n, err := strconv.ParseUint(strings.ReplaceAll(text, "_", ""), 10, 64)
	if err != nil {
		lx.rep.Report(diag.LexBadNumber, diag.SevError, lx.sc.Span(),
			fmt.Sprintf("number %s does not fit in 64 bits", text), nil)
		return Token{Kind: Invalid, Text: text}
	}
	return Token{Kind: Number, Text: text, Num: n}
}

func (lx *lexer) scanIdent() Token {
	lx.sc.SkipWhile(isIdentContinue)
	text := lx.sc.Slice()
	if text == "let" {
		return Token{Kind: KwLet, Text: text}
	}
	return Token{Kind: Ident, Text: text}
}

func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
func isUnderscore(r rune) bool { return r == '_' }

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
