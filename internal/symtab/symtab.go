// Package symtab is the external symbol-table collaborator the
// interpreter consults to resolve a function name to the Handle, in a
// post-order token store, where its body begins.
package symtab

import "github.com/quincunx271/noctern/internal/lexer"

// SymbolTable maps declared function names to their body's starting
// Handle in a post-order token store.
type SymbolTable struct {
	fns map[string]lexer.Handle
}

// From wraps a name->Handle map produced by the parser's post-order
// build pass.
func From(fns map[string]lexer.Handle) *SymbolTable {
	return &SymbolTable{fns: fns}
}

// Lookup resolves a function name to its body handle.
func (s *SymbolTable) Lookup(name string) (lexer.Handle, bool) {
	h, ok := s.fns[name]
	return h, ok
}

// Names lists every declared function name, for diagnostics such as
// reporting which function the CLI could not find.
func (s *SymbolTable) Names() []string {
	out := make([]string, 0, len(s.fns))
	for name := range s.fns {
		out = append(out, name)
	}
	return out
}
