package parser

import (
	"testing"

	"github.com/quincunx271/noctern/internal/ast"
	"github.com/quincunx271/noctern/internal/lexer"
)

func parseSrc(t *testing.T, src string) *ast.File {
	t.Helper()
	store := lexer.ScanAll([]byte(src), false)
	file, err := New(store).ParseFile()
	if err != nil {
		t.Fatalf("ParseFile(%q): %v", src, err)
	}
	return file
}

func TestParseFileSimpleFunction(t *testing.T) {
	file := parseSrc(t, "def Main(): real { return 2 + 3 * 4; };")
	if len(file.Decls) != 1 {
		t.Fatalf("decls = %d, want 1", len(file.Decls))
	}
	fn, ok := file.Decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("decl 0 = %T, want *ast.FuncDecl", file.Decls[0])
	}
	if fn.Name.Name != "Main" {
		t.Fatalf("name = %q, want Main", fn.Name.Name)
	}
	bin, ok := fn.Body.Return.(*ast.BinaryExpr)
	if !ok || bin.Op != lexer.PLUS {
		t.Fatalf("return expr = %#v, want top-level PLUS", fn.Body.Return)
	}
}

func TestParseFileLeftAssociativity(t *testing.T) {
	file := parseSrc(t, "def f(): real { return 1 - 2 - 3; };")
	fn := file.Decls[0].(*ast.FuncDecl)
	top, ok := fn.Body.Return.(*ast.BinaryExpr)
	if !ok || top.Op != lexer.MINUS {
		t.Fatalf("top op = %#v, want MINUS", fn.Body.Return)
	}
	left, ok := top.Left.(*ast.BinaryExpr)
	if !ok || left.Op != lexer.MINUS {
		t.Fatalf("left-hand side should itself be a MINUS expr, got %#v", top.Left)
	}
	if _, ok := left.Left.(*ast.IntLit); !ok {
		t.Fatalf("innermost left should be a literal, got %#v", left.Left)
	}
}

func TestParseFileStructDeclAccepted(t *testing.T) {
	file := parseSrc(t, "Point { x: real, y: real }\ndef Main(): real { return 1; };")
	found := false
	for _, d := range file.Decls {
		if sd, ok := d.(*ast.StructDecl); ok {
			found = true
			if sd.Name.Name != "Point" || len(sd.Attrs) != 2 {
				t.Fatalf("struct decl = %#v", sd)
			}
		}
	}
	if !found {
		t.Fatal("expected a StructDecl among top-level declarations")
	}
}

func TestParseFileAbortsOnFirstError(t *testing.T) {
	store := lexer.ScanAll([]byte("def Main(: real { return 1; };"), false)
	_, err := New(store).ParseFile()
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	se, ok := err.(*SyntaxError)
	if !ok {
		t.Fatalf("error type = %T, want *SyntaxError", err)
	}
	if se.Code != ErrExpectedToken {
		t.Fatalf("code = %s, want %s", se.Code, ErrExpectedToken)
	}
}
