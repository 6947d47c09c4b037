// Package testkit holds structural checks shared by tests of the lexer,
// parser and driver.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"grammarsmith/internal/calc"
	"grammarsmith/source"
)

// CheckTokenInvariants verifies a token stream against its source:
// 1) every span lies within the buffer and is non-empty
// 2) spans are strictly ordered and do not overlap
// 3) token text equals the text under its span
func CheckTokenInvariants(tokens []source.Spanned[calc.Token], src string) error {
	size, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd source.BytePos
	for i, tok := range tokens {
		sp := tok.Span
		if sp.Empty() {
			return fmt.Errorf("token %d (%s) has empty span %s", i, tok.Value.Kind, sp)
		}
		if uint32(sp.End) > size {
			return fmt.Errorf("token %d span %s beyond content length %d", i, sp, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d span %s overlaps previous end %s", i, sp, prevEnd)
		}
		if got := sp.Text(src); got != tok.Value.Text {
			return fmt.Errorf("token %d text %q does not match span text %q", i, tok.Value.Text, got)
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckSpanInvariants runs span invariants on a parsed program:
// 1) every node span is within the buffer, and non-empty for error-free trees
// 2) every child span is contained in its parent span
// 3) statements appear in source order
func CheckSpanInvariants(prog *calc.Program, src string) error {
	if prog == nil {
		return fmt.Errorf("nil program")
	}
	size, err := safecast.Conv[uint32](len(src))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	var prevEnd source.BytePos
	for i, stmt := range prog.Stmts {
		sp := stmt.GetSpan()
		if sp.Start < prevEnd {
			return fmt.Errorf("statement %d span %s starts before previous end %s", i, sp, prevEnd)
		}
		prevEnd = sp.End

		var walkErr error
		calc.Walk(stmt, func(n calc.Node) bool {
			if walkErr != nil {
				return false
			}
			parent := n.GetSpan()
			if uint32(parent.End) > size {
				walkErr = fmt.Errorf("%T span %s beyond content length %d", n, parent, size)
				return false
			}
			// error placeholders at end of input are points
			if prog.Errors == 0 && parent.Empty() {
				walkErr = fmt.Errorf("empty %T span %s", n, parent)
				return false
			}
			calc.Walk(n, func(child calc.Node) bool {
				if child != n && !parent.ContainsSpan(child.GetSpan()) {
					walkErr = fmt.Errorf("%T span %s escapes parent %T %s", child, child.GetSpan(), n, parent)
				}
				return walkErr == nil
			})
			return walkErr == nil
		})
		if walkErr != nil {
			return fmt.Errorf("statement %d: %w", i, walkErr)
		}
	}
	return nil
}
