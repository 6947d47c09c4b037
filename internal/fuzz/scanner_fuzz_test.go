package fuzztests

import (
	"bytes"
	"errors"
	"testing"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"grammarsmith/internal/fileset"
	"grammarsmith/scanner"
	"grammarsmith/source"
)

func FuzzScannerWalk(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		src := string(clampInput(input))
		s := scanner.New(src)

		prev := s.Current()
		for steps := 0; ; steps++ {
			if steps > len(src) {
				t.Fatalf("scanner did not reach the end after %d steps", steps)
			}
			s.MarkTokenStart()
			if _, ok := s.Advance(); !ok {
				break
			}
			cur := s.Current()
			if cur <= prev {
				t.Fatalf("cursor did not move: %d -> %d", prev, cur)
			}
			if got, want := s.Slice(), src[prev:cur]; got != want {
				t.Fatalf("Slice() = %q, want %q", got, want)
			}
			prev = cur
		}
		if !s.AtEnd() || s.Current().Int() != len(src) {
			t.Fatalf("stopped at %d of %d", s.Current(), len(src))
		}
	})
}

func FuzzLineIndex(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		li := source.NewLineIndexBytes(input)
		if want := bytes.Count(input, []byte{'\n'}) + 1; li.LineCount() != want {
			t.Fatalf("LineCount() = %d, want %d", li.LineCount(), want)
		}
		for off := 0; off <= len(input); off++ {
			pos := source.PosFromInt(off)
			line := li.Line(pos)
			start, ok := li.LineStart(line)
			if !ok || start > pos {
				t.Fatalf("offset %d: line %d starts at %d", off, line, start)
			}
			end, ok := li.LineEnd(line)
			if !ok || end < pos {
				t.Fatalf("offset %d: line %d ends at %d", off, line, end)
			}
		}
	})
}

func FuzzFileSetLoad(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)
		fs := fileset.NewFileSet()
		id, err := fs.LoadReader("fuzz.calc", bytes.NewReader(input), fileset.LoadOptions{NFC: true})
		if !utf8.Valid(input) {
			if !errors.Is(err, fileset.ErrInvalidUTF8) {
				t.Fatalf("invalid input accepted: err = %v", err)
			}
			return
		}
		if err != nil {
			t.Fatalf("LoadReader: %v", err)
		}
		file := fs.Get(id)
		// CRLF схлопывается, но число строк сохраняется
		if got, want := bytes.Count(file.Content, []byte{'\n'}), bytes.Count(input, []byte{'\n'}); got != want {
			t.Fatalf("normalization changed line count: %d -> %d", want, got)
		}
		if !norm.NFC.IsNormal(file.Content) {
			t.Fatal("content is not NFC after LoadOptions.NFC")
		}
		if file.Lines.Len().Int() != len(file.Content) {
			t.Fatalf("line index covers %d bytes, content has %d", file.Lines.Len(), len(file.Content))
		}
	})
}
