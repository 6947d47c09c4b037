package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"grammarsmith/internal/diag"
	"grammarsmith/internal/fileset"
	"grammarsmith/source"
)

const tabWidth = 4

type palette struct {
	err, warn, info, note *color.Color
	code, path, gutter    *color.Color
	caret                 *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgCyan),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.code, p.path, p.gutter, p.caret} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes с аналогичным форматом.
func Pretty(w io.Writer, bag *diag.Bag, fs *fileset.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *fileset.FileSet, opts PrettyOpts, pal palette) {
	file := lookupFile(fs, d.File)
	loc := "<unknown>"
	if file != nil && inFile(file, d.Primary) {
		lc := file.LineCol(d.Primary.Start)
		loc = fmt.Sprintf("%s:%d:%d", formatPath(file, fs, opts.PathMode), lc.Line, lc.Col)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n",
		pal.path.Sprint(loc),
		pal.severity(d.Severity).Sprint(d.Severity.String()),
		pal.code.Sprint(d.Code.ID()),
		d.Message,
	)
	if file != nil && inFile(file, d.Primary) {
		writeSnippet(w, file, d.Primary, opts, pal)
	}

	if !opts.ShowNotes {
		return
	}
	for _, n := range d.Notes {
		noteLoc := ""
		if file != nil && inFile(file, n.Span) {
			lc := file.LineCol(n.Span.Start)
			noteLoc = fmt.Sprintf("%s:%d:%d: ", formatPath(file, fs, opts.PathMode), lc.Line, lc.Col)
		}
		fmt.Fprintf(w, "  %s %s%s\n", pal.note.Sprint("note:"), noteLoc, n.Msg)
		if noteLoc != "" {
			writeSnippet(w, file, n.Span, PrettyOpts{Width: opts.Width}, pal)
		}
	}
}

func inFile(f *fileset.File, sp source.Span) bool {
	return sp.Start <= sp.End && sp.End <= f.Lines.Len()
}

// writeSnippet prints the context lines and the line holding sp.Start with
// an underline. A span crossing lines is underlined to the end of its first
// line.
func writeSnippet(w io.Writer, f *fileset.File, sp source.Span, opts PrettyOpts, pal palette) {
	lc := f.LineCol(sp.Start)
	first := max(int(lc.Line)-int(opts.Context), 1)
	gutterWidth := len(fmt.Sprint(lc.Line))

	for ln := first; ln <= int(lc.Line); ln++ {
		text := expandTabs(f.GetLine(uint32(ln)))
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
	}

	line := f.GetLine(lc.Line)
	startCol := int(lc.Col) - 1
	endCol := len(line)
	if endLC := f.LineCol(sp.End); endLC.Line == lc.Line {
		endCol = int(endLC.Col) - 1
	}
	startCol = min(startCol, len(line))
	endCol = max(min(endCol, len(line)), startCol)

	pad := runewidth.StringWidth(expandTabs(line[:startCol]))
	width := max(runewidth.StringWidth(expandTabs(line[startCol:endCol])), 1)
	if opts.Width > 0 {
		if pad >= int(opts.Width) {
			return
		}
		width = min(width, int(opts.Width)-pad)
	}
	underline := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), strings.Repeat(" ", pad), pal.caret.Sprint(underline))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
