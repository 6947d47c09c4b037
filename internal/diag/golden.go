package diag

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"grammarsmith/internal/fileset"
	"grammarsmith/source"
)

// ShortLine is one resolved line of short (golden) output. Notes become
// lines of their own with Severity "note".
type ShortLine struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

func (l ShortLine) String() string {
	return fmt.Sprintf("%s %s %s:%d:%d %s", l.Severity, l.Code, l.Path, l.Line, l.Column, l.Message)
}

// ShortLines resolves diags against fs and orders them by path, position,
// severity, code and message. Spans outside their file are skipped.
func ShortLines(diags []Diagnostic, fs *fileset.FileSet, includeNotes bool) []ShortLine {
	if fs == nil {
		return nil
	}
	out := make([]ShortLine, 0, len(diags))
	for i := range diags {
		d := &diags[i]
		if l, ok := shortLine(fs, d.File, d.Primary); ok {
			l.Severity, l.Code, l.Message = d.Severity.Label(), d.Code.ID(), squashSpaces(d.Message)
			out = append(out, l)
		}
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			if l, ok := shortLine(fs, d.File, note.Span); ok {
				l.Severity, l.Code, l.Message = "note", d.Code.ID(), squashSpaces(note.Msg)
				out = append(out, l)
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.Path != b.Path:
			return a.Path < b.Path
		case a.Line != b.Line:
			return a.Line < b.Line
		case a.Column != b.Column:
			return a.Column < b.Column
		case a.Severity != b.Severity:
			return a.Severity < b.Severity
		case a.Code != b.Code:
			return a.Code < b.Code
		}
		return a.Message < b.Message
	})
	return out
}

// FormatGoldenDiagnostics joins ShortLines with newlines, without a trailing
// one. Stable across runs, so tests compare it against golden files.
func FormatGoldenDiagnostics(diags []Diagnostic, fs *fileset.FileSet, includeNotes bool) string {
	lines := ShortLines(diags, fs, includeNotes)
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = l.String()
	}
	return strings.Join(parts, "\n")
}

func shortLine(fs *fileset.FileSet, id fileset.FileID, span source.Span) (ShortLine, bool) {
	if int(id) >= fs.Len() {
		return ShortLine{}, false
	}
	file := fs.Get(id)
	if span.Start > span.End || span.End > file.Lines.Len() {
		return ShortLine{}, false
	}
	lc := file.LineCol(span.Start)
	path := filepath.ToSlash(file.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(path, "./") {
		path = strings.TrimPrefix(path, "./")
	}
	return ShortLine{Path: path, Line: lc.Line, Column: lc.Col}, true
}

func squashSpaces(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
