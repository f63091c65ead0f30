package parser

import (
	"fmt"

	"github.com/quincunx271/noctern/internal/lexer"
)

const (
	ErrExpectedToken   = "E_PARSE_EXPECTED_TOKEN"
	ErrUnexpectedToken = "E_PARSE_UNEXPECTED_TOKEN"
	ErrInvalidExpr     = "E_PARSE_INVALID_EXPR"
)

// SyntaxError is the single fatal parse error. Unlike a diagnostic
// collector, the parser stops at the first one: there is no recovery.
type SyntaxError struct {
	Code    string
	Message string
	Span    lexer.Span
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s %d:%d %s", e.Code, e.Span.Start.Line, e.Span.Start.Column, e.Message)
}
