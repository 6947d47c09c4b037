package main

import (
	"encoding/json"
	"fmt"
	"io"

	"grammarsmith/internal/observ"
)

// printTimings writes the per-phase report of timer. JSON output stays JSON so
// that stdout can be piped; every other format gets the text summary.
func printTimings(out io.Writer, timer *observ.Timer, format outputFormat) error {
	if out == nil || timer == nil {
		return nil
	}
	if format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(timer.Report())
	}
	_, err := fmt.Fprint(out, timer.Summary())
	return err
}
