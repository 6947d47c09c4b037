package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"grammarsmith/internal/driver"
	"grammarsmith/internal/fileset"
	"grammarsmith/internal/ui"
)

type checkOutcome struct {
	fs      *fileset.FileSet
	results []driver.CheckResult
	err     error
}

// runCheckWithUI runs driver.CheckDir in the background and renders its
// progress events until the check finishes.
func runCheckWithUI(ctx context.Context, title, dir string, files []string, opts driver.Options) (*fileset.FileSet, []driver.CheckResult, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		fs, results, err := driver.CheckDir(ctx, dir, opts, driver.ChannelSink{Ch: events})
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	if uiErr != nil {
		// UI упал: дочитываем события, чтобы CheckDir не заблокировался
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
