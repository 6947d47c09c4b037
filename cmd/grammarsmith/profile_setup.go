package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grammarsmith/internal/prof"
)

var profSession *prof.Session

// setupProfiling starts the profilers requested by --cpu-profile,
// --mem-profile and --runtime-trace.
func setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Flags()
	var cfg prof.Config
	var err error
	if cfg.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.Mem, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	profSession, err = prof.Start(cfg)
	return err
}

func finishProfiling() {
	if err := profSession.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "profile: %v\n", err)
	}
	profSession = nil
}
