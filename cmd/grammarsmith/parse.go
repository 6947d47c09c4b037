package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grammarsmith/internal/diagfmt"
	"grammarsmith/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.calc",
	Short: "Parse a calc source file and dump its syntax tree",
	Long:  `Parse builds the syntax tree of a calc source file (or - for stdin), recovering after syntax errors`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	settings, err := readSettings(cmd)
	if err != nil {
		return err
	}

	fs, id, err := driver.Open(args[0], settings.opts)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	result, err := driver.Parse(cmd.Context(), fs, id, settings.opts)
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	if err := settings.reportDiagnostics(cmd.ErrOrStderr(), result.Bag, fs); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch settings.format {
	case formatJSON:
		err = diagfmt.FormatProgramJSON(out, result.Program)
	case formatMsgPack:
		err = diagfmt.FormatProgramMsgPack(out, result.Program)
	default:
		err = diagfmt.FormatProgramPretty(out, result.Program, result.File)
	}
	if err != nil {
		return err
	}
	return settings.finish(cmd, result.Bag)
}
