// Package scanner provides a character cursor over an in-memory UTF-8 buffer.
//
// A Scanner tracks two positions: the start of the token being scanned and
// the current read position. Tokenizers call MarkTokenStart before each new
// token, consume characters with Advance/ConsumeIf/ConsumeWhile/MatchChar and
// package the result with WithSpan.
//
// The buffer is borrowed: it must stay unchanged while the Scanner is in use.
// Decoding errors are not reported; invalid bytes decode as utf8.RuneError of
// width one, so callers should validate encoding beforehand.
package scanner
