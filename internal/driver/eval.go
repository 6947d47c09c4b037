package driver

import (
	"context"
	"errors"
	"fmt"

	"grammarsmith/internal/calc"
	"grammarsmith/internal/fileset"
	"grammarsmith/internal/trace"
)

type EvalResult struct {
	*ParseResult
	// Results is nil when the file has syntax errors.
	Results []calc.Result
}

// Last returns the value of the last successful expression statement.
func (r *EvalResult) Last() (uint64, bool) {
	for i := len(r.Results) - 1; i >= 0; i-- {
		if r.Results[i].HasValue {
			return r.Results[i].Value, true
		}
	}
	return 0, false
}

// Eval lexes, parses and, when there are no syntax errors, evaluates file id
// of fs. Evaluation errors are added to the Bag as diagnostics.
func Eval(ctx context.Context, fs *fileset.FileSet, id fileset.FileID, opts Options) (*EvalResult, error) {
	pr, err := Parse(ctx, fs, id, opts)
	if err != nil {
		return nil, err
	}
	return evalProgram(ctx, pr, id, opts)
}

func evalProgram(ctx context.Context, pr *ParseResult, id fileset.FileID, opts Options) (*EvalResult, error) {
	res := &EvalResult{ParseResult: pr}
	if pr.Bag.HasErrors() {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	span, _ := trace.StartSpan(ctx, trace.ScopePass, "eval")
	done := opts.Timer.Track("eval")

	res.Results = calc.NewEnv(pr.Program.Names).Exec(pr.Program)
	failed := 0
	for _, r := range res.Results {
		if r.Err == nil {
			continue
		}
		failed++
		var evalErr *calc.EvalError
		if !errors.As(r.Err, &evalErr) {
			return nil, r.Err
		}
		d := evalErr.Diagnostic()
		d.File = id
		pr.Bag.Add(d)
	}

	done(fmt.Sprintf("%d failed", failed))
	span.End(pr.File.Path)
	return res, nil
}
