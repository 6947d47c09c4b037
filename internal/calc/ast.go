package calc

import (
	"grammarsmith/internal/intern"
	"grammarsmith/source"
)

// Node is any AST node.
type Node interface {
	source.Spanner
	source.SpanSetter
	node()
}

// Expr is an expression node.
type Expr interface {
	Node
	expr()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmt()
}

// BinaryOp is an arithmetic operator.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	default:
		return "?"
	}
}

// bindingPower returns left and right binding powers. Left < right gives
// left associativity.
func (op BinaryOp) bindingPower() (left, right uint8) {
	switch op {
	case OpMul, OpDiv:
		return 3, 4
	default:
		return 1, 2
	}
}

func binaryOpFor(k Kind) (BinaryOp, bool) {
	switch k {
	case Plus:
		return OpAdd, true
	case Minus:
		return OpSub, true
	case Star:
		return OpMul, true
	case Slash:
		return OpDiv, true
	default:
		return 0, false
	}
}

type span struct {
	Span source.Span
}

func (s *span) GetSpan() source.Span  { return s.Span }
func (s *span) SetSpan(sp source.Span) { s.Span = sp }
func (*span) node()                    {}

type (
	// NumberExpr is an integer literal.
	NumberExpr struct {
		span
		Value uint64
	}

	// VarExpr is a variable reference.
	VarExpr struct {
		span
		Name intern.StringID
	}

	// BinaryExpr is Left Op Right.
	BinaryExpr struct {
		span
		Op     BinaryOp
		OpSpan source.Span
		Left   Expr
		Right  Expr
	}

	// ParenExpr is a parenthesized expression; Span includes both parens.
	ParenExpr struct {
		span
		Inner Expr
	}

	// ErrorExpr stands in for an expression that failed to parse.
	ErrorExpr struct {
		span
	}
)

func (*NumberExpr) expr() {}
func (*VarExpr) expr()    {}
func (*BinaryExpr) expr() {}
func (*ParenExpr) expr()  {}
func (*ErrorExpr) expr()  {}

type (
	// LetStmt binds Name to Value.
	LetStmt struct {
		span
		Name     intern.StringID
		NameSpan source.Span
		Value    Expr
	}

	// ExprStmt evaluates X and yields its value.
	ExprStmt struct {
		span
		X Expr
	}
)

func (*LetStmt) stmt()  {}
func (*ExprStmt) stmt() {}

// Program is a parsed source file.
type Program struct {
	Stmts []Stmt
	Names *intern.Interner
	// Errors counts syntax errors; a program with errors still has a full
	// tree with ErrorExpr placeholders.
	Errors int
}

// Walk calls fn for n and its children in depth-first order. Returning false
// from fn skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *ParenExpr:
		Walk(n.Inner, fn)
	case *LetStmt:
		Walk(n.Value, fn)
	case *ExprStmt:
		Walk(n.X, fn)
	}
}
