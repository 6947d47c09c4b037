package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"grammarsmith/internal/trace"
)

// traceCleanup закрывает трассировку текущей команды; вызывается из main.
var traceCleanup = func() {}

// setupTracing inspects trace-related flags, attaches a tracer to the command
// context and opens a driver-scope span named after the command.
func setupTracing(cmd *cobra.Command) error {
	flags := cmd.Flags()

	// Read trace configuration from flags
	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}

	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}

	formatStr, err := flags.GetString("trace-format")
	if err != nil {
		return fmt.Errorf("failed to get trace-format flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	// --trace без уровня включает фазы
	if level == trace.LevelOff && traceOutput != "" && !flags.Changed("trace-level") {
		level = trace.LevelPhase
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	format, err := trace.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	tracer, err := trace.New(trace.Config{
		Level:      level,
		Format:     format,
		OutputPath: traceOutput,
	})
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, cmd.CommandPath())
	cmd.SetContext(ctx)

	traceCleanup = func() {
		span.End("")
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "trace: close error: %v\n", err)
		}
	}
	return nil
}

func finishTracing() {
	traceCleanup()
	traceCleanup = func() {}
}
