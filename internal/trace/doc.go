// Package trace records where grammarsmith spends its time.
//
// Spans mark driver operations, passes (lex, parse, eval) and per-file work
// in directory checks. Events go straight to a writer as text or NDJSON.
//
// # Usage
//
//	grammarsmith check --trace=- --trace-level=detail ./examples
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelPhase: driver and pass boundaries
//   - LevelDetail: per-file events
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.StartSpan(ctx, trace.ScopePass, "parse")
//	defer span.End("")
//
// Nested spans are indented by depth in the text format.
package trace
