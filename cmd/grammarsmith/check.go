package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"grammarsmith/internal/diagfmt"
	"grammarsmith/internal/driver"
	"grammarsmith/internal/fileset"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [directory]",
	Short: "Check every calc file of a directory in parallel",
	Long: `Check lexes and parses (and with --eval evaluates) every file with the
configured extension under a directory, reporting all diagnostics at once`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "max parallel workers (0=auto)")
	checkCmd.Flags().String("ui", "auto", "progress UI mode (auto|on|off)")
	checkCmd.Flags().Bool("eval", false, "also evaluate files without syntax errors")
	checkCmd.Flags().String("ext", driver.DefaultExtension, "file extension to look for")
	checkCmd.Flags().Bool("disk-cache", false, "reuse results of unchanged files from the user cache directory")
	checkCmd.Flags().Bool("clear-cache", false, "drop the disk cache before checking")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	settings, err := readSettings(cmd)
	if err != nil {
		return err
	}

	// Получаем флаги
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	withEval, err := cmd.Flags().GetBool("eval")
	if err != nil {
		return fmt.Errorf("failed to get eval flag: %w", err)
	}
	ext, err := cmd.Flags().GetString("ext")
	if err != nil {
		return fmt.Errorf("failed to get ext flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("disk-cache")
	if err != nil {
		return fmt.Errorf("failed to get disk-cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}

	opts := settings.opts
	opts.Jobs = jobs
	opts.Eval = withEval
	opts.Extension = ext
	if useCache || clearCache {
		cache, err := driver.OpenDiskCache("grammarsmith")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear disk cache: %w", err)
			}
		}
		if useCache {
			opts.Cache = cache
		}
	}

	files, err := driver.ListFiles(dir, opts.Extension)
	if err != nil {
		return fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var (
		fs      *fileset.FileSet
		results []driver.CheckResult
	)
	if shouldUseTUI(mode) && !settings.quiet && settings.format == formatPretty && len(files) > 0 {
		fs, results, err = runCheckWithUI(cmd.Context(), "check "+dir, dir, files, opts)
	} else {
		fs, results, err = driver.CheckDir(cmd.Context(), dir, opts, nil)
	}
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	for i := range results {
		settings.applyPolicy(results[i].Bag)
	}
	merged := driver.MergeBags(results)
	out := cmd.OutOrStdout()
	switch settings.format {
	case formatJSON:
		err = diagfmt.JSON(out, merged, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	case formatMsgPack:
		err = diagfmt.MsgPack(out, merged, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	default:
		err = settings.reportDiagnostics(out, merged, fs)
	}
	if err != nil {
		return err
	}

	if !settings.quiet {
		summaryOut := cmd.ErrOrStderr()
		if settings.format == formatPretty || settings.format == formatShort {
			summaryOut = out
		}
		printCheckSummary(summaryOut, driver.Summarize(results))
	}
	return settings.finish(cmd, merged)
}

func printCheckSummary(w io.Writer, s driver.Summary) {
	fmt.Fprintf(w, "checked %d %s: %d %s, %d %s",
		s.Files, plural(s.Files, "file", "files"),
		s.Errors, plural(s.Errors, "error", "errors"),
		s.Warnings, plural(s.Warnings, "warning", "warnings"))
	if s.Failed > 0 {
		fmt.Fprintf(w, " in %d %s", s.Failed, plural(s.Failed, "file", "files"))
	}
	if s.Cached > 0 {
		fmt.Fprintf(w, " (%d cached)", s.Cached)
	}
	fmt.Fprintln(w)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
