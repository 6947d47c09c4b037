package source

import (
	"testing"
	"unicode/utf8"
)

func TestBytePos_Shift(t *testing.T) {
	tests := []struct {
		r    rune
		want BytePos
	}{
		{'a', 11},
		{'é', 12},
		{'€', 13},
		{'🦀', 14},
		{utf8.RuneError, 13},
		{-1, 13},
	}
	for _, tt := range tests {
		if got := BytePos(10).Shift(tt.r); got != tt.want {
			t.Errorf("Shift(%q) = %d, want %d", tt.r, got, tt.want)
		}
	}
}

func TestBytePos_MinMax(t *testing.T) {
	a, b := BytePos(3), BytePos(9)
	if a.Min(b) != a || b.Min(a) != a {
		t.Error("Min picked the wrong position")
	}
	if a.Max(b) != b || b.Max(a) != b {
		t.Error("Max picked the wrong position")
	}
}

func TestPosFromInt(t *testing.T) {
	if PosFromInt(42) != 42 {
		t.Errorf("PosFromInt(42) = %d", PosFromInt(42))
	}
	defer func() {
		if recover() == nil {
			t.Error("expected panic for negative offset")
		}
	}()
	PosFromInt(-1)
}
