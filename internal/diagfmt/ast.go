package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/vmihailenco/msgpack/v5"

	"grammarsmith/internal/calc"
	"grammarsmith/internal/fileset"
	"grammarsmith/internal/intern"
	"grammarsmith/source"
)

type ASTNodeOutput struct {
	Type     string          `json:"type" msgpack:"type"`
	Span     source.Span     `json:"span" msgpack:"span"`
	Text     string          `json:"text,omitempty" msgpack:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty" msgpack:"children,omitempty"`
}

// FormatProgramPretty prints the tree with box-drawing guides, one node per
// line.
func FormatProgramPretty(w io.Writer, prog *calc.Program, file *fileset.File) error {
	root := programOutput(prog)
	fmt.Fprintf(w, "Program (span: %s)\n", formatSpan(root.Span, file))
	for i, child := range root.Children {
		writeTreeNode(w, child, file, "", i == len(root.Children)-1)
	}
	return nil
}

func writeTreeNode(w io.Writer, n ASTNodeOutput, file *fileset.File, prefix string, last bool) {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	label := n.Type
	if n.Text != "" {
		label += " " + n.Text
	}
	fmt.Fprintf(w, "%s%s%s (span: %s)\n", prefix, branch, label, formatSpan(n.Span, file))
	for i, child := range n.Children {
		writeTreeNode(w, child, file, prefix+next, i == len(n.Children)-1)
	}
}

// FormatProgramJSON выводит AST в JSON
func FormatProgramJSON(w io.Writer, prog *calc.Program) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(programOutput(prog))
}

// FormatProgramMsgPack выводит AST в msgpack
func FormatProgramMsgPack(w io.Writer, prog *calc.Program) error {
	return msgpack.NewEncoder(w).Encode(programOutput(prog))
}

func programOutput(prog *calc.Program) ASTNodeOutput {
	root := ASTNodeOutput{Type: "Program"}
	for i, stmt := range prog.Stmts {
		if i == 0 {
			root.Span = stmt.GetSpan()
		} else {
			root.Span = root.Span.Union(stmt.GetSpan())
		}
		root.Children = append(root.Children, nodeOutput(prog, stmt))
	}
	return root
}

func nodeOutput(prog *calc.Program, n calc.Node) ASTNodeOutput {
	out := ASTNodeOutput{Span: n.GetSpan()}
	switch n := n.(type) {
	case *calc.LetStmt:
		out.Type = "Let"
		out.Text = lookupName(prog, n.Name)
		out.Children = []ASTNodeOutput{nodeOutput(prog, n.Value)}
	case *calc.ExprStmt:
		out.Type = "ExprStmt"
		out.Children = []ASTNodeOutput{nodeOutput(prog, n.X)}
	case *calc.NumberExpr:
		out.Type = "Number"
		out.Text = strconv.FormatUint(n.Value, 10)
	case *calc.VarExpr:
		out.Type = "Var"
		out.Text = lookupName(prog, n.Name)
	case *calc.BinaryExpr:
		out.Type = "Binary"
		out.Text = n.Op.String()
		out.Children = []ASTNodeOutput{nodeOutput(prog, n.Left), nodeOutput(prog, n.Right)}
	case *calc.ParenExpr:
		out.Type = "Paren"
		out.Children = []ASTNodeOutput{nodeOutput(prog, n.Inner)}
	case *calc.ErrorExpr:
		out.Type = "Error"
	default:
		out.Type = fmt.Sprintf("%T", n)
	}
	return out
}

func lookupName(prog *calc.Program, id intern.StringID) string {
	if prog.Names == nil {
		return "<?>"
	}
	if s, ok := prog.Names.Lookup(id); ok {
		return s
	}
	return "<?>"
}

func formatSpan(span source.Span, file *fileset.File) string {
	if file != nil && inFile(file, span) {
		start, end := file.LineCol(span.Start), file.LineCol(span.End)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}
