package parser

import "github.com/quincunx271/noctern/internal/lexer"

// BuildPostOrder scans every `def` declaration in src and emits a second
// token store in which each function body's expressions have been
// reordered into post-order (operands before the operator that combines
// them), left-associative. The interpreter walks this store directly, as
// a stack machine, never re-deriving precedence at evaluation time.
//
// The returned symbol table maps each function name to the Handle, in the
// post-order store, where its body begins.
func BuildPostOrder(src *lexer.Tokens) (*lexer.Tokens, map[string]lexer.Handle, error) {
	c := newCursor(src)
	out := lexer.NewTokens(src.Source())
	symbols := map[string]lexer.Handle{}

	for c.kind() != lexer.EOF {
		if c.kind() != lexer.DEF {
			// Struct declarations and any other non-function top-level
			// form carry no runtime body; skip to the next `def`.
			if err := skipDecl(c); err != nil {
				return nil, nil, err
			}
			continue
		}
		name, bodyHandle, err := emitFuncDecl(c, out)
		if err != nil {
			return nil, nil, err
		}
		if _, dup := symbols[name]; dup {
			return nil, nil, &SyntaxError{Code: ErrUnexpectedToken, Message: "duplicate function " + name, Span: c.span()}
		}
		symbols[name] = bodyHandle
	}
	return out, symbols, nil
}

// skipDecl advances past one non-function top-level declaration without
// emitting anything: struct declarations have no post-order body.
func skipDecl(c *cursor) error {
	if _, err := c.expect(lexer.IDENT); err != nil {
		return err
	}
	if _, err := c.expect(lexer.LBRACE); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		switch c.kind() {
		case lexer.LBRACE:
			depth++
		case lexer.RBRACE:
			depth--
		case lexer.EOF:
			return &SyntaxError{Code: ErrExpectedToken, Message: "unterminated struct body", Span: c.span()}
		}
		c.advance()
	}
	return nil
}

// emitFuncDecl parses one `def name(params): type <body>` form, emitting
// only the body into out in post-order, and returns the function's name
// plus the Handle where its body begins.
func emitFuncDecl(c *cursor, out *lexer.Tokens) (string, lexer.Handle, error) {
	if _, err := c.expect(lexer.DEF); err != nil {
		return "", 0, err
	}
	nameHandle, err := c.expect(lexer.IDENT)
	if err != nil {
		return "", 0, err
	}
	name := c.store.Lexeme(nameHandle)
	if err := skipSignature(c); err != nil {
		return "", 0, err
	}
	bodyStart, err := emitBody(c, out)
	if err != nil {
		return "", 0, err
	}
	if c.kind() == lexer.SEMICOLON { // the declaration's terminating ';'
		c.advance()
	}
	return name, bodyStart, nil
}

// skipSignature advances past `(params): type` without emitting: the
// interpreter's numeric subset never inspects parameter or result types.
func skipSignature(c *cursor) error {
	if _, err := c.expect(lexer.LPAREN); err != nil {
		return err
	}
	depth := 1
	for depth > 0 {
		switch c.kind() {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
		case lexer.EOF:
			return &SyntaxError{Code: ErrExpectedToken, Message: "unterminated parameter list", Span: c.span()}
		}
		c.advance()
	}
	if _, err := c.expect(lexer.COLON); err != nil {
		return err
	}
	// Result type: one identifier, optionally `::( ... )` or `-> type`.
	if _, err := c.expect(lexer.IDENT); err != nil {
		return err
	}
	for c.kind() == lexer.DOUBLECOLON || c.kind() == lexer.ARROW {
		if c.kind() == lexer.ARROW {
			c.advance()
			if _, err := c.expect(lexer.IDENT); err != nil {
				return err
			}
			continue
		}
		c.advance()
		if _, err := c.expect(lexer.LPAREN); err != nil {
			return err
		}
		depth := 1
		for depth > 0 {
			switch c.kind() {
			case lexer.LPAREN:
				depth++
			case lexer.RPAREN:
				depth--
			case lexer.EOF:
				return &SyntaxError{Code: ErrExpectedToken, Message: "unterminated type application", Span: c.span()}
			}
			c.advance()
		}
	}
	return nil
}

// emitBody emits one function body into out, returning the handle of its
// first emitted token (LBRACE for a block body, or the first operand
// token for a bare-expression body).
func emitBody(c *cursor, out *lexer.Tokens) (lexer.Handle, error) {
	if c.kind() == lexer.LBRACE {
		start := emitLiteral(out, c)
		c.advance()
		for c.kind() == lexer.LET {
			emitLiteral(out, c)
			c.advance()
			if err := expectEmit(c, out, lexer.IDENT); err != nil {
				return 0, err
			}
			if err := expectEmit(c, out, lexer.ASSIGN); err != nil {
				return 0, err
			}
			if err := emitExprPostOrder(c, out); err != nil {
				return 0, err
			}
			if err := expectEmit(c, out, lexer.SEMICOLON); err != nil {
				return 0, err
			}
		}
		if err := expectEmit(c, out, lexer.RETURN); err != nil {
			return 0, err
		}
		if err := emitExprPostOrder(c, out); err != nil {
			return 0, err
		}
		if err := expectEmit(c, out, lexer.SEMICOLON); err != nil {
			return 0, err
		}
		if err := expectEmit(c, out, lexer.RBRACE); err != nil {
			return 0, err
		}
		return start, nil
	}

	startLen := out.Len()
	if err := emitExprPostOrder(c, out); err != nil {
		return 0, err
	}
	if c.kind() == lexer.SEMICOLON {
		c.advance()
	}
	out.PushRaw(lexer.SEMICOLON, ";")
	return lexer.Handle(startLen), nil
}

func emitLiteral(out *lexer.Tokens, c *cursor) lexer.Handle {
	return out.PushRaw(c.kind(), c.lit())
}

// expectEmit checks the current token is of kind, emits it into out, and
// advances past it; it returns a SyntaxError without emitting anything
// if the check fails.
func expectEmit(c *cursor, out *lexer.Tokens, kind lexer.Kind) error {
	if c.kind() != kind {
		return &SyntaxError{Code: ErrExpectedToken, Message: "expected " + kind.String() + ", found " + c.kind().String(), Span: c.span()}
	}
	emitLiteral(out, c)
	c.advance()
	return nil
}

// emitExprPostOrder parses one `add`-level expression directly from c and
// emits its tokens into out in post-order: each operand before the
// operator it feeds, left-associative, with no grouping-paren tokens
// (they carry no runtime meaning once reordered).
func emitExprPostOrder(c *cursor, out *lexer.Tokens) error {
	return emitAddPostOrder(c, out)
}

func emitAddPostOrder(c *cursor, out *lexer.Tokens) error {
	if err := emitMulPostOrder(c, out); err != nil {
		return err
	}
	for c.kind() == lexer.PLUS || c.kind() == lexer.MINUS {
		op, lit := c.kind(), c.lit()
		c.advance()
		if err := emitMulPostOrder(c, out); err != nil {
			return err
		}
		out.PushRaw(op, lit)
	}
	return nil
}

func emitMulPostOrder(c *cursor, out *lexer.Tokens) error {
	if err := emitPrimaryPostOrder(c, out); err != nil {
		return err
	}
	for c.kind() == lexer.STAR || c.kind() == lexer.SLASH {
		op, lit := c.kind(), c.lit()
		c.advance()
		if err := emitPrimaryPostOrder(c, out); err != nil {
			return err
		}
		out.PushRaw(op, lit)
	}
	return nil
}

func emitPrimaryPostOrder(c *cursor, out *lexer.Tokens) error {
	switch c.kind() {
	case lexer.INT, lexer.REAL, lexer.IDENT:
		out.PushRaw(c.kind(), c.lit())
		c.advance()
		return nil
	case lexer.LPAREN:
		c.advance()
		if err := emitAddPostOrder(c, out); err != nil {
			return err
		}
		_, err := c.expect(lexer.RPAREN)
		return err
	default:
		return &SyntaxError{Code: ErrInvalidExpr, Message: "expected an expression, found " + c.kind().String(), Span: c.span()}
	}
}
