// Package source defines byte positions, spans and the line index used to
// locate tokens and syntax nodes in an in-memory text buffer.
//
// Invariants:
//   - A BytePos is only meaningful for the buffer it was derived from.
//   - Spans built through NewSpan satisfy Start <= End; SpanUnchecked trusts
//     the caller to have established that.
//   - A LineIndex never references the buffer characters, only offsets.
package source
