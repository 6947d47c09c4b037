package calc

import (
	"errors"
	"fmt"
	"math/bits"

	"grammarsmith/internal/diag"
	"grammarsmith/internal/intern"
	"grammarsmith/source"
)

var (
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("overflow")
	ErrUnderflow      = errors.New("underflow")
	ErrUnknownVar     = errors.New("unknown variable")
	ErrInvalidSyntax  = errors.New("invalid syntax")
)

// EvalError is a runtime error located in the source.
type EvalError struct {
	Code diag.Code
	Span source.Span
	Msg  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code.ID(), e.Span, e.Msg)
}

// Unwrap maps the code to one of the Err* sentinels so callers can use
// errors.Is.
func (e *EvalError) Unwrap() error {
	switch e.Code {
	case diag.EvalDivByZero:
		return ErrDivisionByZero
	case diag.EvalOverflow:
		return ErrOverflow
	case diag.EvalUnderflow:
		return ErrUnderflow
	case diag.EvalUnknownVar:
		return ErrUnknownVar
	case diag.EvalInvalidSyntax:
		return ErrInvalidSyntax
	default:
		return nil
	}
}

// Diagnostic converts the error into a diagnostic for file.
func (e *EvalError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}

func evalErrorf(code diag.Code, sp source.Span, format string, args ...any) *EvalError {
	return &EvalError{Code: code, Span: sp, Msg: fmt.Sprintf(format, args...)}
}

// Env holds variable bindings.
type Env struct {
	names *intern.Interner
	vars  map[intern.StringID]uint64
}

// NewEnv creates an empty environment resolving names through names.
func NewEnv(names *intern.Interner) *Env {
	if names == nil {
		names = intern.NewInterner()
	}
	return &Env{names: names, vars: make(map[intern.StringID]uint64)}
}

// Set binds name to v.
func (env *Env) Set(name string, v uint64) {
	env.vars[env.names.Intern(name)] = v
}

// Get returns the value bound to name.
func (env *Env) Get(name string) (uint64, bool) {
	v, ok := env.vars[env.names.Intern(name)]
	return v, ok
}

// Eval evaluates e. Errors are always *EvalError.
func (env *Env) Eval(e Expr) (uint64, error) {
	switch e := e.(type) {
	case *NumberExpr:
		return e.Value, nil

	case *VarExpr:
		v, ok := env.vars[e.Name]
		if !ok {
			name, _ := env.names.Lookup(e.Name)
			return 0, evalErrorf(diag.EvalUnknownVar, e.Span, "unknown variable %q", name)
		}
		return v, nil

	case *ParenExpr:
		return env.Eval(e.Inner)

	case *BinaryExpr:
		lhs, err := env.Eval(e.Left)
		if err != nil {
			return 0, err
		}
		rhs, err := env.Eval(e.Right)
		if err != nil {
			return 0, err
		}
		return applyBinary(e, lhs, rhs)

	case *ErrorExpr:
		return 0, evalErrorf(diag.EvalInvalidSyntax, e.Span, "cannot evaluate invalid expression")

	default:
		return 0, fmt.Errorf("calc: unexpected expression %T", e)
	}
}

func applyBinary(e *BinaryExpr, lhs, rhs uint64) (uint64, error) {
	switch e.Op {
	case OpAdd:
		sum, carry := bits.Add64(lhs, rhs, 0)
		if carry != 0 {
			return 0, evalErrorf(diag.EvalOverflow, e.Span, "%d + %d overflows uint64", lhs, rhs)
		}
		return sum, nil
	case OpSub:
		if rhs > lhs {
			return 0, evalErrorf(diag.EvalUnderflow, e.Span, "%d - %d is negative", lhs, rhs)
		}
		return lhs - rhs, nil
	case OpMul:
		hi, lo := bits.Mul64(lhs, rhs)
		if hi != 0 {
			return 0, evalErrorf(diag.EvalOverflow, e.Span, "%d * %d overflows uint64", lhs, rhs)
		}
		return lo, nil
	case OpDiv:
		if rhs == 0 {
			return 0, evalErrorf(diag.EvalDivByZero, e.Right.GetSpan(), "division by zero")
		}
		return lhs / rhs, nil
	default:
		return 0, fmt.Errorf("calc: unknown operator %v", e.Op)
	}
}

// Result is the outcome of one statement.
type Result struct {
	Stmt  Stmt
	Value uint64
	// HasValue is false for let statements and failed statements.
	HasValue bool
	Err      error
}

// Exec runs every statement of prog in order. A failed statement does not
// stop execution; a failed let leaves its name unbound.
func (env *Env) Exec(prog *Program) []Result {
	results := make([]Result, 0, len(prog.Stmts))
	for _, stmt := range prog.Stmts {
		res := Result{Stmt: stmt}
		switch s := stmt.(type) {
		case *LetStmt:
			v, err := env.Eval(s.Value)
			if err != nil {
				res.Err = err
				break
			}
			env.vars[s.Name] = v
		case *ExprStmt:
			v, err := env.Eval(s.X)
			if err != nil {
				res.Err = err
				break
			}
			res.Value, res.HasValue = v, true
		}
		results = append(results, res)
	}
	return results
}
