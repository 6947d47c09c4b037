package calc

import (
	"fmt"

	"grammarsmith/internal/diag"
)

// SyntaxError carries the diagnostics of a source that failed to lex or parse.
type SyntaxError struct {
	Diags []diag.Diagnostic
}

func (e *SyntaxError) Error() string {
	if len(e.Diags) == 0 {
		return "syntax error"
	}
	d := e.Diags[0]
	msg := fmt.Sprintf("%s at %s: %s", d.Code.ID(), d.Primary, d.Message)
	if n := len(e.Diags) - 1; n > 0 {
		msg += fmt.Sprintf(" (and %d more)", n)
	}
	return msg
}

func (e *SyntaxError) Unwrap() error { return ErrInvalidSyntax }

// Run lexes, parses and evaluates src and returns the value of the last
// expression statement. It fails with *SyntaxError when src has syntax
// errors and with *EvalError on the first failed statement.
func Run(src string) (uint64, error) {
	bag := diag.NewBag(0)
	rep := diag.BagReporter{Bag: bag}
	prog := Parse(Scan(src, rep), EOFToken(src), Options{Reporter: rep})
	if bag.HasErrors() {
		bag.Sort()
		return 0, &SyntaxError{Diags: errorsOnly(bag.Items())}
	}

	var (
		last uint64
		seen bool
	)
	for _, res := range NewEnv(prog.Names).Exec(prog) {
		if res.Err != nil {
			return 0, res.Err
		}
		if res.HasValue {
			last, seen = res.Value, true
		}
	}
	if !seen {
		return 0, fmt.Errorf("calc: %w: no expression to evaluate", ErrInvalidSyntax)
	}
	return last, nil
}

func errorsOnly(items []diag.Diagnostic) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(items))
	for _, d := range items {
		if d.Severity >= diag.SevError {
			out = append(out, d)
		}
	}
	return out
}
