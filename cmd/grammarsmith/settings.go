package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"grammarsmith/internal/diag"
	"grammarsmith/internal/diagfmt"
	"grammarsmith/internal/driver"
	"grammarsmith/internal/fileset"
	"grammarsmith/internal/observ"
)

type outputFormat string

const (
	formatPretty  outputFormat = "pretty"
	formatJSON    outputFormat = "json"
	formatMsgPack outputFormat = "msgpack"
	// formatShort prints one diagnostic per line; data output stays pretty.
	formatShort   outputFormat = "short"
)

func readFormat(value string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(value))); f {
	case formatPretty, formatJSON, formatMsgPack, formatShort:
		return f, nil
	case "":
		return formatPretty, nil
	default:
		return "", fmt.Errorf("unknown format: %s (expected pretty|json|msgpack|short)", value)
	}
}

// runSettings собирает глобальные флаги одной команды.
type runSettings struct {
	format           outputFormat
	color            bool
	quiet            bool
	timings          bool
	noWarnings       bool
	warningsAsErrors bool
	opts             driver.Options
}

func readSettings(cmd *cobra.Command) (*runSettings, error) {
	flags := cmd.Flags()

	formatStr, err := flags.GetString("format")
	if err != nil {
		return nil, fmt.Errorf("failed to get format flag: %w", err)
	}
	format, err := readFormat(formatStr)
	if err != nil {
		return nil, err
	}

	maxDiagnostics, err := flags.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}

	showTimings, err := flags.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	nfc, err := flags.GetBool("nfc")
	if err != nil {
		return nil, fmt.Errorf("failed to get nfc flag: %w", err)
	}

	noWarnings, err := flags.GetBool("no-warnings")
	if err != nil {
		return nil, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}

	warningsAsErrors, err := flags.GetBool("warnings-as-errors")
	if err != nil {
		return nil, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}

	if noWarnings && warningsAsErrors {
		return nil, fmt.Errorf("no-warnings and warnings-as-errors flags cannot be used together")
	}

	useColor, err := resolveColor(cmd)
	if err != nil {
		return nil, err
	}

	s := &runSettings{
		format:           format,
		color:            useColor,
		quiet:            quiet,
		timings:          showTimings,
		noWarnings:       noWarnings,
		warningsAsErrors: warningsAsErrors,
		opts: driver.Options{
			MaxDiagnostics: maxDiagnostics,
			NFC:            nfc,
		},
	}
	if showTimings {
		s.opts.Timer = observ.NewTimer()
	}
	return s, nil
}

// resolveColor читает --color и выставляет color.NoColor для всего процесса.
func resolveColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Flags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	var useColor bool
	switch strings.ToLower(colorFlag) {
	case "on":
		useColor = true
	case "off":
		useColor = false
	case "auto", "":
		useColor = isTerminal(os.Stderr) && os.Getenv("NO_COLOR") == ""
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !useColor
	return useColor, nil
}

// applyPolicy drops or promotes warnings according to the flags.
func (s *runSettings) applyPolicy(bag *diag.Bag) {
	switch {
	case bag == nil:
	case s.noWarnings:
		bag.Filter(func(d *diag.Diagnostic) bool { return d.Severity != diag.SevWarning })
	case s.warningsAsErrors:
		bag.Promote(diag.SevWarning, diag.SevError)
	}
}

// reportDiagnostics prints bag to w. JSON output follows --format; binary
// formats fall back to pretty text since diagnostics go to stderr.
func (s *runSettings) reportDiagnostics(w io.Writer, bag *diag.Bag, fs *fileset.FileSet) error {
	s.applyPolicy(bag)
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Sort()
	switch s.format {
	case formatJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	case formatShort:
		_, err := fmt.Fprintln(w, diag.FormatGoldenDiagnostics(bag.Items(), fs, false))
		return err
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   2,
		ShowNotes: true,
	})
	if n := bag.Dropped(); n > 0 && !s.quiet {
		fmt.Fprintf(w, "\n... and %d more diagnostics not shown (see --max-diagnostics)\n", n)
	}
	return nil
}

// finish prints timings and turns error diagnostics into errHasErrors.
func (s *runSettings) finish(cmd *cobra.Command, bag *diag.Bag) error {
	if s.timings {
		if err := printTimings(cmd.ErrOrStderr(), s.opts.Timer, s.format); err != nil {
			return err
		}
	}
	if bag != nil && bag.HasErrors() {
		return errHasErrors
	}
	return nil
}
