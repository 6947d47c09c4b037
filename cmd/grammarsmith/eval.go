package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"

	"grammarsmith/internal/driver"
	"grammarsmith/source"
)

var evalCmd = &cobra.Command{
	Use:   "eval [flags] file.calc",
	Short: "Evaluate a calc source file",
	Long: `Eval parses a calc source file (or - for stdin) and, when it has no syntax
errors, evaluates every statement and prints the value of each expression`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	evalCmd.Flags().Bool("last", false, "print only the value of the last expression")
}

type evalValueOutput struct {
	Line  uint32      `json:"line" msgpack:"line"`
	Span  source.Span `json:"span" msgpack:"span"`
	Value *uint64     `json:"value,omitempty" msgpack:"value,omitempty"`
	Error string      `json:"error,omitempty" msgpack:"error,omitempty"`
}

type evalOutput struct {
	Results []evalValueOutput `json:"results" msgpack:"results"`
	Last    *uint64           `json:"last,omitempty" msgpack:"last,omitempty"`
}

func runEval(cmd *cobra.Command, args []string) error {
	settings, err := readSettings(cmd)
	if err != nil {
		return err
	}
	lastOnly, err := cmd.Flags().GetBool("last")
	if err != nil {
		return fmt.Errorf("failed to get last flag: %w", err)
	}

	fs, id, err := driver.Open(args[0], settings.opts)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", args[0], err)
	}

	result, err := driver.Eval(cmd.Context(), fs, id, settings.opts)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if err := settings.reportDiagnostics(cmd.ErrOrStderr(), result.Bag, fs); err != nil {
		return err
	}

	out := buildEvalOutput(result)
	w := cmd.OutOrStdout()
	switch settings.format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	case formatMsgPack:
		err = msgpack.NewEncoder(w).Encode(out)
	default:
		err = writeEvalPretty(w, out, lastOnly)
	}
	if err != nil {
		return err
	}
	return settings.finish(cmd, result.Bag)
}

func buildEvalOutput(result *driver.EvalResult) evalOutput {
	out := evalOutput{Results: make([]evalValueOutput, 0, len(result.Results))}
	for _, r := range result.Results {
		if !r.HasValue && r.Err == nil {
			continue // let без ошибки ничего не печатает
		}
		sp := r.Stmt.GetSpan()
		item := evalValueOutput{
			Line: result.File.LineCol(sp.Start).Line,
			Span: sp,
		}
		if r.Err != nil {
			item.Error = r.Err.Error()
		} else {
			v := r.Value
			item.Value = &v
		}
		out.Results = append(out.Results, item)
	}
	if last, ok := result.Last(); ok {
		out.Last = &last
	}
	return out
}

func writeEvalPretty(w io.Writer, out evalOutput, lastOnly bool) error {
	if lastOnly {
		if out.Last != nil {
			_, err := fmt.Fprintln(w, *out.Last)
			return err
		}
		return nil
	}
	for _, r := range out.Results {
		if r.Value == nil {
			continue // ошибки уже выведены как диагностика
		}
		if _, err := fmt.Fprintln(w, *r.Value); err != nil {
			return err
		}
	}
	return nil
}
