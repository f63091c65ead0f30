// Package compile is the front end's pipeline: scan, build the structured
// AST, build the post-order store the interpreter consumes, and resolve
// the symbol table, all from one source buffer.
package compile

import (
	"fmt"

	"github.com/quincunx271/noctern/internal/ast"
	"github.com/quincunx271/noctern/internal/diagnostics"
	"github.com/quincunx271/noctern/internal/lexer"
	"github.com/quincunx271/noctern/internal/parser"
	"github.com/quincunx271/noctern/internal/symtab"
)

// Program is everything downstream stages need from one compiled file.
type Program struct {
	Lexed     *lexer.Tokens
	PostOrder *lexer.Tokens
	AST       *ast.File
	Symbols   *symtab.SymbolTable
}

// File runs the whole pipeline over src. A syntactic error aborts
// immediately and is returned as a single diagnostic; there is no partial
// Program on failure, matching the fatal, no-recovery error policy.
func File(src []byte) (*Program, *diagnostics.Diagnostic, error) {
	lexed := lexer.ScanAll(src, false)

	p := parser.New(lexed)
	file, err := p.ParseFile()
	if err != nil {
		return nil, toDiagnostic(err), err
	}

	postOrder, symbols, err := parser.BuildPostOrder(lexed)
	if err != nil {
		return nil, toDiagnostic(err), err
	}

	return &Program{
		Lexed:     lexed,
		PostOrder: postOrder,
		AST:       file,
		Symbols:   symtab.From(symbols),
	}, nil, nil
}

func toDiagnostic(err error) *diagnostics.Diagnostic {
	if se, ok := err.(*parser.SyntaxError); ok {
		return &diagnostics.Diagnostic{
			Severity: "error",
			Code:     se.Code,
			Message:  se.Message,
			Line:     se.Span.Start.Line,
			Column:   se.Span.Start.Column,
		}
	}
	return &diagnostics.Diagnostic{Severity: "error", Code: "E_PARSE_UNKNOWN", Message: fmt.Sprintf("%v", err)}
}
