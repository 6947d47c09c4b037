package source

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"fortio.org/safecast"
)

// BytePos is a zero-based byte offset into a source buffer.
type BytePos uint32

// PosFromInt converts an int offset into a BytePos.
// It panics when the offset does not fit, which only happens for buffers
// larger than 4 GiB.
func PosFromInt(off int) BytePos {
	v, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("byte offset overflow: %w", err))
	}
	return BytePos(v)
}

// Int returns the offset as an int, ready for slicing.
func (p BytePos) Int() int {
	return int(p)
}

// Shift advances the position by the UTF-8 encoded width of r.
// Invalid runes advance by the width of utf8.RuneError, matching how the
// decoder replaces them.
func (p BytePos) Shift(r rune) BytePos {
	n := utf8.RuneLen(r)
	if n < 0 {
		n = utf8.RuneLen(utf8.RuneError)
	}
	return p + BytePos(n)
}

// Add advances the position by n bytes.
func (p BytePos) Add(n uint32) BytePos {
	return p + BytePos(n)
}

// Min returns the smaller of two positions.
func (p BytePos) Min(other BytePos) BytePos {
	if other < p {
		return other
	}
	return p
}

// Max returns the larger of two positions.
func (p BytePos) Max(other BytePos) BytePos {
	if other > p {
		return other
	}
	return p
}

func (p BytePos) String() string {
	return strconv.FormatUint(uint64(p), 10)
}
