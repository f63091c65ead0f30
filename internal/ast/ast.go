// Package ast defines the structured tree shape the parser can build, as
// an alternative to its flat post-order token stream.
package ast

import "github.com/quincunx271/noctern/internal/lexer"

// Identifier names a declaration or a reference to one.
type Identifier struct {
	Name string
	Span lexer.Span
}

// Type is the sum of noctern's three type shapes.
type Type interface{ typeNode() }

// BasicType is a bare name reference, e.g. int or real.
type BasicType struct {
	Name Identifier
	Span lexer.Span
}

// FuncType is a function type, from -> to.
type FuncType struct {
	From Type
	To   Type
	Span lexer.Span
}

// EvaluatedType is a type application, base::args.
type EvaluatedType struct {
	Base Type
	Args []Type
	Span lexer.Span
}

func (*BasicType) typeNode()     {}
func (*FuncType) typeNode()      {}
func (*EvaluatedType) typeNode() {}

// Expr is the sum of noctern's expression forms.
type Expr interface{ exprNode() }

// IntLit is an integer literal expression.
type IntLit struct {
	Value string
	Span  lexer.Span
}

// RealLit is a floating-point literal expression.
type RealLit struct {
	Value string
	Span  lexer.Span
}

// StringLit is a string literal expression. Accepted syntactically; the
// interpreter rejects any attempt to evaluate one.
type StringLit struct {
	Value string
	Span  lexer.Span
}

// IdentExpr references a bound name: a parameter, a let binding, or a
// top-level function.
type IdentExpr struct {
	Name Identifier
	Span lexer.Span
}

// BinaryExpr is a left-associative binary operator application.
type BinaryExpr struct {
	Op    lexer.Kind
	Left  Expr
	Right Expr
	Span  lexer.Span
}

// CallExpr applies Fn to Args.
type CallExpr struct {
	Fn   Expr
	Args []Expr
	Span lexer.Span
}

// LambdaExpr is an anonymous function literal. Accepted syntactically;
// the interpreter rejects any attempt to evaluate one.
type LambdaExpr struct {
	Value *FuncDecl
	Span  lexer.Span
}

func (*IntLit) exprNode()     {}
func (*RealLit) exprNode()    {}
func (*StringLit) exprNode()  {}
func (*IdentExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*LambdaExpr) exprNode() {}

// Param is a single function parameter: a name with its declared type.
type Param struct {
	Name Identifier
	Type Type
	Span lexer.Span
}

// Body is a function body: either a block (let bindings then return) or a
// bare expression, matching the source grammar's two function-body shapes.
type Body struct {
	Lets   []LetBinding
	Return Expr // nil when this is a bare-expression body with no block
	Expr   Expr // set when the body is a bare expression, Lets/Return nil
	Span   lexer.Span
}

// LetBinding is one `let name = expr;` inside a block body.
type LetBinding struct {
	Name Identifier
	Expr Expr
	Span lexer.Span
}

// Declaration is the sum of top-level declaration forms.
type Declaration interface{ declNode() }

// FuncDecl is a `def name(params): type { ... }` declaration.
type FuncDecl struct {
	Name   Identifier
	Params []Param
	Result Type
	Body   Body
	Span   lexer.Span
}

// AttrDecl is one struct member: a name with its declared type.
type AttrDecl struct {
	Name Identifier
	Type Type
	Span lexer.Span
}

// StructDecl declares a struct type and its attributes. Accepted
// syntactically; the interpreter rejects any attempt to execute one.
type StructDecl struct {
	Name  Identifier
	Attrs []AttrDecl
	Span  lexer.Span
}

func (*FuncDecl) declNode()   {}
func (*StructDecl) declNode() {}

// File is the parsed top-level declaration list for one source file.
type File struct {
	Decls []Declaration
	Span  lexer.Span
}
