package source

import (
	"fmt"
	"slices"
)

// LineIndex maps byte offsets to 1-based line numbers.
// It records offset 0 and the offset right after every '\n'.
type LineIndex struct {
	starts []BytePos
	size   BytePos
}

// NewLineIndex builds the index for text.
func NewLineIndex(text string) *LineIndex {
	starts := make([]BytePos, 1, 1+len(text)/32)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, PosFromInt(i+1))
		}
	}
	return &LineIndex{starts: starts, size: PosFromInt(len(text))}
}

// NewLineIndexBytes builds the index for content.
func NewLineIndexBytes(content []byte) *LineIndex {
	starts := make([]BytePos, 1, 1+len(content)/32)
	for i, b := range content {
		if b == '\n' {
			starts = append(starts, PosFromInt(i+1))
		}
	}
	return &LineIndex{starts: starts, size: PosFromInt(len(content))}
}

// Line returns the 1-based line containing pos.
// pos may equal the buffer length (end-of-input markers); anything past it
// is a caller bug and panics.
func (li *LineIndex) Line(pos BytePos) int {
	if pos > li.size {
		panic(fmt.Sprintf("source: position %d beyond buffer length %d", pos, li.size))
	}
	idx, found := slices.BinarySearch(li.starts, pos)
	if found {
		return idx + 1
	}
	return idx
}

// LineStart returns the offset of the first byte of the 1-based line.
func (li *LineIndex) LineStart(line int) (BytePos, bool) {
	if line < 1 || line > len(li.starts) {
		return 0, false
	}
	return li.starts[line-1], true
}

// LineEnd returns the offset of the '\n' terminating line, or the buffer
// length for the last line.
func (li *LineIndex) LineEnd(line int) (BytePos, bool) {
	if line < 1 || line > len(li.starts) {
		return 0, false
	}
	if line == len(li.starts) {
		return li.size, true
	}
	return li.starts[line] - 1, true
}

// LineCount returns the number of lines; an empty buffer has one line.
func (li *LineIndex) LineCount() int {
	return len(li.starts)
}

// Len returns the length of the indexed buffer.
func (li *LineIndex) Len() BytePos {
	return li.size
}
