// Package interp is the restricted tree-walking interpreter: it executes
// only the numeric subset of noctern, walking a post-order token stream
// as a stack machine rather than recursing over an AST.
package interp

import (
	"fmt"
	"strconv"

	"github.com/quincunx271/noctern/internal/lexer"
)

const (
	ErrUndefinedName = "E_EVAL_UNDEFINED_NAME"
	ErrBadLiteral    = "E_EVAL_BAD_LITERAL"
	ErrStackShape    = "E_EVAL_STACK_SHAPE"
)

// EvalError is a fatal evaluation-time failure; like the parser, the
// interpreter never recovers from one.
type EvalError struct {
	Code    string
	Message string
}

func (e *EvalError) Error() string { return e.Code + " " + e.Message }

// frame is one function activation: its local bindings and its
// expression value stack.
type frame struct {
	locals map[string]float64
	stack  []float64
}

func newFrame() *frame {
	return &frame{locals: map[string]float64{}}
}

func (f *frame) push(v float64) { f.stack = append(f.stack, v) }

func (f *frame) pop() (float64, error) {
	if len(f.stack) == 0 {
		return 0, &EvalError{Code: ErrStackShape, Message: "pop from empty expression stack"}
	}
	v := f.stack[len(f.stack)-1]
	f.stack = f.stack[:len(f.stack)-1]
	return v, nil
}

// Eval evaluates the function whose body begins at from in store, with no
// arguments bound (the numeric subset spec targets takes no parameters at
// the call boundary this interpreter exposes), and returns its result.
func Eval(store *lexer.Tokens, from lexer.Handle) (float64, error) {
	f := newFrame()
	if store.Kind(from) == lexer.LBRACE {
		return evalBlock(store, from, f)
	}
	return evalExpr(store, from, f)
}

// evalBlock processes `let` bindings in order, then evaluates and returns
// the `return` expression. Mirrors eval_block: lbrace, (let ident = expr
// ;)*, return expr ;, rbrace.
func evalBlock(store *lexer.Tokens, from lexer.Handle, f *frame) (float64, error) {
	pos := int(from) + 1 // past '{'
	for store.Kind(lexer.Handle(pos)) == lexer.LET {
		pos++ // past 'let'
		if store.Kind(lexer.Handle(pos)) != lexer.IDENT {
			return 0, &EvalError{Code: ErrStackShape, Message: "expected identifier after let"}
		}
		name := store.Lexeme(lexer.Handle(pos))
		pos++ // past ident
		pos++ // past '='
		v, next, err := evalExprAt(store, lexer.Handle(pos), f)
		if err != nil {
			return 0, err
		}
		f.locals[name] = v
		pos = int(next) + 1 // past ';'
	}
	pos++ // past 'return'
	v, next, err := evalExprAt(store, lexer.Handle(pos), f)
	if err != nil {
		return 0, err
	}
	_ = next
	return v, nil
}

// evalExpr evaluates a bare-expression function body: a post-order run
// terminated by a semicolon.
func evalExpr(store *lexer.Tokens, from lexer.Handle, f *frame) (float64, error) {
	v, _, err := evalExprAt(store, from, f)
	return v, err
}

// evalExprAt walks the post-order run starting at from, pushing operands
// and reducing on operators, until it reaches the terminating semicolon.
// It returns the single remaining stack value and the handle of that
// semicolon.
func evalExprAt(store *lexer.Tokens, from lexer.Handle, f *frame) (float64, lexer.Handle, error) {
	pos := int(from)
	for {
		h := lexer.Handle(pos)
		kind := store.Kind(h)
		switch kind {
		case lexer.SEMICOLON:
			result, err := f.pop()
			if err != nil {
				return 0, h, err
			}
			if len(f.stack) != 0 {
				return 0, h, &EvalError{Code: ErrStackShape, Message: fmt.Sprintf("expected 1 value on the stack, found %d", len(f.stack)+1)}
			}
			return result, h, nil
		case lexer.INT, lexer.REAL:
			v, err := strconv.ParseFloat(store.Lexeme(h), 64)
			if err != nil {
				return 0, h, &EvalError{Code: ErrBadLiteral, Message: "invalid numeric literal " + store.Lexeme(h)}
			}
			f.push(v)
		case lexer.IDENT:
			v, ok := f.locals[store.Lexeme(h)]
			if !ok {
				return 0, h, &EvalError{Code: ErrUndefinedName, Message: "undefined name " + store.Lexeme(h)}
			}
			f.push(v)
		case lexer.PLUS, lexer.MINUS, lexer.STAR, lexer.SLASH:
			second, err := f.pop() // right operand: pushed last, popped first
			if err != nil {
				return 0, h, err
			}
			first, err := f.pop() // left operand
			if err != nil {
				return 0, h, err
			}
			f.push(applyOp(kind, first, second))
		default:
			return 0, h, &EvalError{Code: ErrStackShape, Message: "unexpected token in expression: " + kind.String()}
		}
		pos++
	}
}

// applyOp computes a binary operator over two IEEE-754 doubles. Division
// follows floating-point semantics exactly: a zero divisor yields ±Inf or
// NaN, never a fatal error.
func applyOp(op lexer.Kind, first, second float64) float64 {
	switch op {
	case lexer.PLUS:
		return first + second
	case lexer.MINUS:
		return first - second
	case lexer.STAR:
		return first * second
	case lexer.SLASH:
		return first / second
	default:
		panic("interp: unreachable operator " + op.String())
	}
}
