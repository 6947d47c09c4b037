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

type TokenizeResult struct {
	FileSet *fileset.FileSet
	File    *fileset.File
	Tokens  []source.Spanned[calc.Token]
	Bag     *diag.Bag
}

// Tokenize lexes file id of fs. Lexical errors go to the result's Bag.
func Tokenize(ctx context.Context, fs *fileset.FileSet, id fileset.FileID, opts Options) (*TokenizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	span, _ := trace.StartSpan(ctx, trace.ScopePass, "lex")
	done := opts.Timer.Track("lex")

	file := fs.Get(id)
	bag := diag.NewBag(opts.MaxDiagnostics)
	tokens := calc.Scan(file.Text(), diag.BagReporter{Bag: bag, File: id})

	done(fmt.Sprintf("%d tokens", len(tokens)))
	span.With("tokens", strconv.Itoa(len(tokens))).End(file.Path)

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
