package source

import (
	"strings"
	"testing"
)

func naiveLine(text string, pos int) int {
	return 1 + strings.Count(text[:pos], "\n")
}

func TestLineIndex_Line(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		cases map[BytePos]int
	}{
		{"empty string", "", map[BytePos]int{0: 1}},
		{"single line", "hello world", map[BytePos]int{0: 1, 5: 1, 10: 1, 11: 1}},
		{"multiple lines", "line1\nline2\nline3", map[BytePos]int{0: 1, 5: 1, 6: 2, 11: 2, 12: 3, 16: 3}},
		{"trailing newline", "hello\n", map[BytePos]int{0: 1, 5: 1, 6: 2}},
		{"consecutive newlines", "a\n\n\nb", map[BytePos]int{0: 1, 2: 2, 3: 3, 4: 4}},
		{"crlf endings", "line1\r\nline2\nline3", map[BytePos]int{0: 1, 6: 1, 7: 2, 12: 2, 13: 3}},
		{"leading newline", "\nx", map[BytePos]int{0: 1, 1: 2, 2: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			li := NewLineIndex(tt.text)
			for pos, want := range tt.cases {
				if got := li.Line(pos); got != want {
					t.Errorf("Line(%d) = %d, want %d", pos, got, want)
				}
			}
		})
	}
}

func TestLineIndex_MatchesLinearScan(t *testing.T) {
	inputs := []string{
		"",
		"\n",
		"\n\n",
		"abc",
		"a\nb\nc\n",
		"first line\n\nthird 🦀 line\r\nfourth€\n",
		strings.Repeat("xy\n", 50) + "tail",
		"no newline at all but quite long text with é and ü",
	}
	for _, text := range inputs {
		li := NewLineIndex(text)
		lb := NewLineIndexBytes([]byte(text))
		for p := 0; p <= len(text); p++ {
			want := naiveLine(text, p)
			if got := li.Line(BytePos(p)); got != want {
				t.Fatalf("text %q: Line(%d) = %d, want %d", text, p, got, want)
			}
			if got := lb.Line(BytePos(p)); got != want {
				t.Fatalf("text %q (bytes): Line(%d) = %d, want %d", text, p, got, want)
			}
		}
	}
}

func TestLineIndex_PanicsBeyondLength(t *testing.T) {
	li := NewLineIndex("hello")
	defer func() {
		if recover() == nil {
			t.Error("expected panic for position beyond buffer length")
		}
	}()
	li.Line(10)
}

func TestLineIndex_LineStartAndEnd(t *testing.T) {
	text := "ab\ncde\n\nf"
	li := NewLineIndex(text)
	if li.LineCount() != 4 {
		t.Fatalf("LineCount() = %d, want 4", li.LineCount())
	}
	if li.Len() != BytePos(len(text)) {
		t.Errorf("Len() = %d, want %d", li.Len(), len(text))
	}

	starts := []BytePos{0, 3, 7, 8}
	ends := []BytePos{2, 6, 7, 9}
	for i := range starts {
		line := i + 1
		start, ok := li.LineStart(line)
		if !ok || start != starts[i] {
			t.Errorf("LineStart(%d) = %d, %v; want %d", line, start, ok, starts[i])
		}
		end, ok := li.LineEnd(line)
		if !ok || end != ends[i] {
			t.Errorf("LineEnd(%d) = %d, %v; want %d", line, end, ok, ends[i])
		}
	}
	if _, ok := li.LineStart(0); ok {
		t.Error("LineStart(0) should fail")
	}
	if _, ok := li.LineStart(5); ok {
		t.Error("LineStart(5) should fail")
	}
	if _, ok := li.LineEnd(5); ok {
		t.Error("LineEnd(5) should fail")
	}
}
