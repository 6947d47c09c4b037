package driver

import (
	"context"
	"fmt"
	"strconv"

	"grammarsmith/internal/calc"
	"grammarsmith/internal/diag"
	"grammarsmith/internal/fileset"
	"grammarsmith/internal/trace"
	"grammarsmith/source"
)

type ParseResult struct {
	*TokenizeResult
	Program *calc.Program
}

// Parse lexes and parses file id of fs.
func Parse(ctx context.Context, fs *fileset.FileSet, id fileset.FileID, opts Options) (*ParseResult, error) {
	tr, err := Tokenize(ctx, fs, id, opts)
	if err != nil {
		return nil, err
	}
	return parseTokens(ctx, tr, id, opts)
}

func parseTokens(ctx context.Context, tr *TokenizeResult, id fileset.FileID, opts Options) (*ParseResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	span, ctx := trace.StartSpan(ctx, trace.ScopePass, "parse")
	done := opts.Timer.Track("parse")

	eof := source.NewSpanned(calc.Token{Kind: calc.EOF}, source.PointAt(tr.File.Lines.Len()))
	prog := calc.Parse(tr.Tokens, eof, calc.Options{
		// восстановление может повторно сообщить об одной и той же позиции
		Reporter:  diag.NewDedupReporter(diag.BagReporter{Bag: tr.Bag, File: id}),
		MaxErrors: opts.MaxDiagnostics,
	})

	if tracer := trace.FromContext(ctx); tracer.Level() >= trace.LevelDebug {
		for _, stmt := range prog.Stmts {
			trace.Point(tracer, trace.ScopeToken, "stmt", stmt.GetSpan().String(), span.Context())
		}
	}

	done(fmt.Sprintf("%d statements", len(prog.Stmts)))
	span.With("statements", strconv.Itoa(len(prog.Stmts))).
		With("errors", strconv.Itoa(prog.Errors)).
		End(tr.File.Path)

	return &ParseResult{TokenizeResult: tr, Program: prog}, nil
}
