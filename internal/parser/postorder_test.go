package parser

import (
	"testing"

	"github.com/quincunx271/noctern/internal/lexer"
)

func buildPostOrder(t *testing.T, src string) (*lexer.Tokens, map[string]lexer.Handle) {
	t.Helper()
	lexed := lexer.ScanAll([]byte(src), false)
	out, symbols, err := BuildPostOrder(lexed)
	if err != nil {
		t.Fatalf("BuildPostOrder(%q): %v", src, err)
	}
	return out, symbols
}

func kindsFrom(store *lexer.Tokens, from lexer.Handle, upto lexer.Kind) []lexer.Kind {
	var out []lexer.Kind
	for i := int(from); i < store.Len(); i++ {
		k := store.Kind(lexer.Handle(i))
		out = append(out, k)
		if k == upto {
			break
		}
	}
	return out
}

func TestBuildPostOrderPrecedence(t *testing.T) {
	out, symbols := buildPostOrder(t, "def f(): real 2 + 3 * 4;")
	body, ok := symbols["f"]
	if !ok {
		t.Fatal("expected symbol f")
	}
	// Bare-expression body: post-order run should read 2 3 4 * + ;
	kinds := kindsFrom(out, body, lexer.SEMICOLON)
	want := []lexer.Kind{lexer.INT, lexer.INT, lexer.INT, lexer.STAR, lexer.PLUS, lexer.SEMICOLON}
	if len(kinds) != len(want) {
		t.Fatalf("kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("kinds = %v, want %v", kinds, want)
		}
	}
}

func TestBuildPostOrderBlockBody(t *testing.T) {
	out, symbols := buildPostOrder(t, "def f(): real { let x = 1; return x + 2; };")
	body, ok := symbols["f"]
	if !ok {
		t.Fatal("expected symbol f")
	}
	if out.Kind(body) != lexer.LBRACE {
		t.Fatalf("block body should start at LBRACE, got %v", out.Kind(body))
	}
}

func TestBuildPostOrderRejectsDuplicateFunctions(t *testing.T) {
	_, _, err := BuildPostOrder(lexer.ScanAll([]byte(
		"def f(): real { return 1; };\ndef f(): real { return 2; };"), false))
	if err == nil {
		t.Fatal("expected duplicate-function error")
	}
}
