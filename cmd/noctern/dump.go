package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/quincunx271/noctern/internal/ast"
	"github.com/quincunx271/noctern/internal/compile"
)

// dumpFile writes a minimal, one-line-per-node indented dump of the
// parsed declaration tree. It is debug tooling, not a pretty-printer:
// the output is not meant to be reparsed.
func dumpFile(w io.Writer, program *compile.Program) {
	for _, decl := range program.AST.Decls {
		dumpDecl(w, decl, 0)
	}
}

func indent(n int) string { return strings.Repeat("  ", n) }

func dumpDecl(w io.Writer, decl ast.Declaration, depth int) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		fmt.Fprintf(w, "%sFuncDecl %s\n", indent(depth), d.Name.Name)
		for _, p := range d.Params {
			fmt.Fprintf(w, "%sParam %s\n", indent(depth+1), p.Name.Name)
		}
		dumpBody(w, d.Body, depth+1)
	case *ast.StructDecl:
		fmt.Fprintf(w, "%sStructDecl %s\n", indent(depth), d.Name.Name)
		for _, a := range d.Attrs {
			fmt.Fprintf(w, "%sAttr %s\n", indent(depth+1), a.Name.Name)
		}
	}
}

func dumpBody(w io.Writer, b ast.Body, depth int) {
	for _, l := range b.Lets {
		fmt.Fprintf(w, "%sLet %s =\n", indent(depth), l.Name.Name)
		dumpExpr(w, l.Expr, depth+1)
	}
	if b.Return != nil {
		fmt.Fprintf(w, "%sReturn\n", indent(depth))
		dumpExpr(w, b.Return, depth+1)
		return
	}
	dumpExpr(w, b.Expr, depth)
}

func dumpExpr(w io.Writer, e ast.Expr, depth int) {
	switch n := e.(type) {
	case *ast.IntLit:
		fmt.Fprintf(w, "%sIntLit %s\n", indent(depth), n.Value)
	case *ast.RealLit:
		fmt.Fprintf(w, "%sRealLit %s\n", indent(depth), n.Value)
	case *ast.StringLit:
		fmt.Fprintf(w, "%sStringLit %q\n", indent(depth), n.Value)
	case *ast.IdentExpr:
		fmt.Fprintf(w, "%sIdentExpr %s\n", indent(depth), n.Name.Name)
	case *ast.BinaryExpr:
		fmt.Fprintf(w, "%sBinaryExpr %s\n", indent(depth), n.Op.String())
		dumpExpr(w, n.Left, depth+1)
		dumpExpr(w, n.Right, depth+1)
	case *ast.CallExpr:
		fmt.Fprintf(w, "%sCallExpr\n", indent(depth))
		dumpExpr(w, n.Fn, depth+1)
		for _, a := range n.Args {
			dumpExpr(w, a, depth+1)
		}
	case *ast.LambdaExpr:
		fmt.Fprintf(w, "%sLambdaExpr\n", indent(depth))
		dumpBody(w, n.Value.Body, depth+1)
	}
}
