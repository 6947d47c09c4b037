package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"grammarsmith/internal/calc"
	"grammarsmith/internal/fileset"
	"grammarsmith/source"
)

type TokenOutput struct {
	Kind  string      `json:"kind" msgpack:"kind"`
	Text  string      `json:"text,omitempty" msgpack:"text,omitempty"`
	Value *uint64     `json:"value,omitempty" msgpack:"value,omitempty"`
	Span  source.Span `json:"span" msgpack:"span"`
}

func tokenOutputs(tokens []source.Spanned[calc.Token]) []TokenOutput {
	out := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		to := TokenOutput{
			Kind: tok.Value.Kind.String(),
			Text: tok.Value.Text,
			Span: tok.Span,
		}
		if tok.Value.Kind == calc.Number {
			v := tok.Value.Num
			to.Value = &v
		}
		out = append(out, to)
	}
	return out
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []source.Spanned[calc.Token], file *fileset.File) error {
	for i, tok := range tokens {
		start, end := file.LineCol(tok.Span.Start), file.LineCol(tok.Span.End)
		if _, err := fmt.Fprintf(w, "%3d: %-10s", i+1, tok.Value.Kind.String()); err != nil {
			return err
		}
		if tok.Value.Text != "" {
			fmt.Fprintf(w, " %q", tok.Value.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d\n", start.Line, start.Col, end.Line, end.Col)
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []source.Spanned[calc.Token]) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokenOutputs(tokens))
}

// FormatTokensMsgPack выводит токены в msgpack
func FormatTokensMsgPack(w io.Writer, tokens []source.Spanned[calc.Token]) error {
	return msgpack.NewEncoder(w).Encode(tokenOutputs(tokens))
}
