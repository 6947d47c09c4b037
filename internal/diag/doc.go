// Package diag defines the diagnostic model shared by the scanning, parsing
// and evaluation phases of the calculator and the CLI.
//
// # Scope
//
// Package diag does not perform formatting or IO beyond the compact golden
// form used in tests. Rendering lives in internal/diagfmt.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – Info, Warning or Error.
//   - Code – numeric identifier with a stable string form (LEX/SYN/EVL).
//   - Message – short human text.
//   - File and Primary – the file and byte span pointing at the issue.
//   - Notes – optional secondary spans with extra context.
//
// # Emitting diagnostics
//
// Phases report through a Reporter so they stay independent of storage. A
// BagReporter stamps every diagnostic with its file and adds it to a Bag,
// which supports sorting, deduplication and limits.
package diag
