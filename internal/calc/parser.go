package calc

import (
	"fmt"

	"grammarsmith/internal/diag"
	"grammarsmith/internal/intern"
	"grammarsmith/parser"
	"grammarsmith/source"
)

// Options configures Parse.
type Options struct {
	Reporter diag.Reporter
	// Names receives identifiers; a fresh interner is used when nil.
	Names *intern.Interner
	// MaxErrors stops parsing after that many syntax errors; 0 means no limit.
	MaxErrors int
}

type calcParser struct {
	p        *parser.Parser[Token, Kind]
	names    *intern.Interner
	reporter diag.Reporter
	opts     Options
	errors   int
}

// Parse builds a Program from tokens. eof is the end-of-stream sentinel,
// usually EOFToken(src).
func Parse(tokens []source.Spanned[Token], eof source.Spanned[Token], opts Options) *Program {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	if opts.Names == nil {
		opts.Names = intern.NewInterner()
	}
	ps := &calcParser{
		p:        parser.New[Token, Kind](tokens, &eof),
		names:    opts.Names,
		reporter: opts.Reporter,
		opts:     opts,
	}
	return ps.parseProgram()
}

func (ps *calcParser) parseProgram() *Program {
	prog := &Program{Names: ps.names}
	for !ps.p.IsAtEnd() {
		if ps.opts.MaxErrors > 0 && ps.errors >= ps.opts.MaxErrors {
			break
		}
		if ps.p.Accept(Semicolon) {
			continue
		}
		stmt, ok := ps.parseStmt()
		prog.Stmts = append(prog.Stmts, stmt)
		if !ok {
			ps.recover()
			continue
		}
		if ps.p.IsAtEnd() || ps.p.Accept(Semicolon) {
			continue
		}
		end := source.PointAt(stmt.GetSpan().End)
		ps.errorf(diag.SynExpectSemicolon, end, "expected ';' after statement, got %s", ps.p.PeekToken().Value.Describe())
		ps.recover()
	}
	prog.Errors = ps.errors
	return prog
}

// recover skips to the next statement boundary.
func (ps *calcParser) recover() {
	if skipped, ok := ps.p.SynchronizeUntil(Semicolon); ok {
		diag.ReportWarning(ps.reporter, diag.SynSkippedTokens, skipped, "skipped tokens while recovering").Emit()
	}
	ps.p.Accept(Semicolon)
}

func (ps *calcParser) parseStmt() (Stmt, bool) {
	if ps.p.Check(KwLet) {
		return ps.parseLet()
	}
	x, ok := ps.parseExpr(0)
	stmt := &ExprStmt{X: x}
	stmt.Span = x.GetSpan()
	return stmt, ok
}

// parseLet разбирает `let name = expr`.
func (ps *calcParser) parseLet() (Stmt, bool) {
	letTok := ps.p.Advance()
	stmt := &LetStmt{}
	stmt.Span = letTok.Span

	if !ps.p.Check(Ident) {
		tok := ps.p.PeekToken()
		ps.errorf(diag.SynExpectIdentifier, tok.Span, "expected identifier after 'let', got %s", tok.Value.Describe())
		stmt.Value = ps.errorExpr(tok.Span)
		stmt.Span = stmt.Span.Union(tok.Span)
		return stmt, false
	}
	name := ps.p.Advance()
	stmt.Name = ps.names.Intern(name.Value.Text)
	stmt.NameSpan = name.Span
	stmt.Span = stmt.Span.Union(name.Span)

	if !ps.p.Accept(Assign) {
		tok := ps.p.PeekToken()
		ps.errorf(diag.SynExpectAssign, tok.Span, "expected '=' after %q, got %s", name.Value.Text, tok.Value.Describe())
		stmt.Value = ps.errorExpr(tok.Span)
		stmt.Span = stmt.Span.Union(tok.Span)
		return stmt, false
	}

	value, ok := ps.parseExpr(0)
	stmt.Value = value
	stmt.Span = stmt.Span.Union(value.GetSpan())
	return stmt, ok
}

// parseExpr is a Pratt loop: operators binding looser than minBP are left
// to the caller.
func (ps *calcParser) parseExpr(minBP uint8) (Expr, bool) {
	lhs, ok := ps.parsePrimary()
	if !ok {
		return lhs, false
	}
	for {
		op, isOp := binaryOpFor(ps.p.Peek())
		if !isOp {
			return lhs, true
		}
		lbp, rbp := op.bindingPower()
		if lbp < minBP {
			return lhs, true
		}
		opTok := ps.p.Advance()
		rhs, ok := ps.parseExpr(rbp)
		bin := &BinaryExpr{Op: op, OpSpan: opTok.Span, Left: lhs, Right: rhs}
		bin.Span = lhs.GetSpan().Union(rhs.GetSpan())
		if !ok {
			return bin, false
		}
		lhs = bin
	}
}

func (ps *calcParser) parsePrimary() (Expr, bool) {
	tok := ps.p.PeekToken()
	switch tok.Value.Kind {
	case Number:
		ps.p.Advance()
		n := &NumberExpr{Value: tok.Value.Num}
		n.Span = tok.Span
		return n, true

	case Ident:
		ps.p.Advance()
		v := &VarExpr{Name: ps.names.Intern(tok.Value.Text)}
		v.Span = tok.Span
		return v, true

	case LParen:
		return ps.parseParen()

	case Invalid:
		// lexer already reported it
		ps.p.Advance()
		ps.errors++
		return ps.errorExpr(tok.Span), false

	default:
		ps.errorf(diag.SynExpectExpression, tok.Span, "expected expression, got %s", tok.Value.Describe())
		return ps.errorExpr(tok.Span), false
	}
}

func (ps *calcParser) parseParen() (Expr, bool) {
	open := ps.p.Advance()
	inner, ok := ps.parseExpr(0)
	paren := &ParenExpr{Inner: inner}
	paren.Span = open.Span.Union(inner.GetSpan())
	if !ok {
		return paren, false
	}
	if !ps.p.Accept(RParen) {
		tok := ps.p.PeekToken()
		diag.ReportError(ps.reporter, diag.SynUnclosedParen, source.PointAt(inner.GetSpan().End),
			fmt.Sprintf("expected ')', got %s", tok.Value.Describe())).
			WithNote(open.Span, "opening parenthesis is here").
			Emit()
		ps.errors++
		return paren, false
	}
	paren.Span = paren.Span.Union(ps.p.Previous().Span)
	return paren, true
}

func (ps *calcParser) errorExpr(sp source.Span) *ErrorExpr {
	e := &ErrorExpr{}
	e.Span = sp
	return e
}

func (ps *calcParser) errorf(code diag.Code, sp source.Span, format string, args ...any) {
	ps.errors++
	ps.reporter.Report(code, diag.SevError, sp, fmt.Sprintf(format, args...), nil)
}
