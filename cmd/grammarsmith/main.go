package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"grammarsmith/internal/version"
)

// errHasErrors сигнализирует о диагностиках с ошибками; сообщение уже выведено.
var errHasErrors = errors.New("diagnostics contain errors")

var rootCmd = &cobra.Command{
	Use:   "grammarsmith",
	Short: "Lexer and parser toolkit with a calculator playground",
	Long: `grammarsmith drives the scanner and parser toolkit over .calc files:
it prints tokens, syntax trees, evaluation results and diagnostics`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: prepareRun,
}

func init() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file (0 = unlimited)")
	rootCmd.PersistentFlags().Bool("no-warnings", false, "ignore warnings in diagnostics")
	rootCmd.PersistentFlags().Bool("warnings-as-errors", false, "treat warnings as errors")
	rootCmd.PersistentFlags().String("format", "pretty", "output format (pretty|json|msgpack|short)")
	rootCmd.PersistentFlags().Bool("nfc", false, "normalize input to Unicode NFC before scanning")
	rootCmd.PersistentFlags().String("config", "", "path to grammarsmith.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr; .ndjson selects NDJSON)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a pprof CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a pprof heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime execution trace to file")
}

// main executes the root command and exits with status 1 on any error,
// including diagnostics of error severity.
func main() {
	err := rootCmd.Execute()
	finishTracing()
	finishProfiling()
	if err == nil {
		return
	}
	if !errors.Is(err, errHasErrors) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	os.Exit(1)
}

// prepareRun применяет grammarsmith.toml, настраивает цвет, трассировку и
// профилирование перед любой подкомандой.
func prepareRun(cmd *cobra.Command, _ []string) error {
	if err := applyConfig(cmd); err != nil {
		return err
	}
	if _, err := resolveColor(cmd); err != nil {
		return err
	}
	if err := setupTracing(cmd); err != nil {
		return err
	}
	return setupProfiling(cmd)
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
