package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"grammarsmith/internal/diagfmt"
	"grammarsmith/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.calc",
	Short: "Tokenize a calc source file",
	Long:  `Tokenize breaks a calc source file (or - for stdin) into spanned tokens`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	settings, err := readSettings(cmd)
	if err != nil {
		return err
	}

	fs, id, err := driver.Open(args[0], settings.opts)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	// Выполняем токенизацию
	result, err := driver.Tokenize(cmd.Context(), fs, id, settings.opts)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if err := settings.reportDiagnostics(cmd.ErrOrStderr(), result.Bag, fs); err != nil {
		return err
	}

	// Выводим токены в выбранном формате
	out := cmd.OutOrStdout()
	switch settings.format {
	case formatJSON:
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	case formatMsgPack:
		err = diagfmt.FormatTokensMsgPack(out, result.Tokens)
	default:
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.File)
	}
	if err != nil {
		return err
	}
	return settings.finish(cmd, result.Bag)
}
