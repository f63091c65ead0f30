// Package parser turns a scanned token store into either of two shapes:
// a structured AST (used to accept, but never execute, struct and lambda
// declarations) or a reordered post-order token stream the interpreter
// walks directly as a stack machine. There is no error recovery: the
// first syntactic fault aborts parsing immediately.
package parser

import (
	"github.com/quincunx271/noctern/internal/ast"
	"github.com/quincunx271/noctern/internal/lexer"
)

// cursor is a compact view over a token store's significant tokens only
// (whitespace, when present, is skipped transparently).
type cursor struct {
	store   *lexer.Tokens
	handles []lexer.Handle
	pos     int
}

func newCursor(store *lexer.Tokens) *cursor {
	handles := make([]lexer.Handle, 0, store.Len())
	for i := 0; i < store.Len(); i++ {
		h := lexer.Handle(i)
		if store.Kind(h).IsSignificant() || store.Kind(h) == lexer.EOF {
			handles = append(handles, h)
		}
	}
	return &cursor{store: store, handles: handles}
}

func (c *cursor) cur() lexer.Handle  { return c.handles[c.pos] }
func (c *cursor) kind() lexer.Kind   { return c.store.Kind(c.cur()) }
func (c *cursor) lit() string        { return c.store.Lexeme(c.cur()) }
func (c *cursor) span() lexer.Span   { return c.store.Span(c.cur()) }
func (c *cursor) advance()           { if c.pos < len(c.handles)-1 { c.pos++ } }

func (c *cursor) expect(kind lexer.Kind) (lexer.Handle, error) {
	if c.kind() != kind {
		return 0, &SyntaxError{
			Code:    ErrExpectedToken,
			Message: "expected " + kind.String() + ", found " + c.kind().String(),
			Span:    c.span(),
		}
	}
	h := c.cur()
	c.advance()
	return h, nil
}

// Parser builds either output shape from one scanned token store.
type Parser struct {
	store *lexer.Tokens
}

// New creates a Parser over a scanned token store.
func New(store *lexer.Tokens) *Parser {
	return &Parser{store: store}
}

// ParseFile builds the structured AST for the whole file. Struct and
// lambda declarations are fully parsed but never evaluated downstream.
func (p *Parser) ParseFile() (*ast.File, error) {
	c := newCursor(p.store)
	file := &ast.File{}
	start := c.span()
	for c.kind() != lexer.EOF {
		decl, err := p.parseDecl(c)
		if err != nil {
			return nil, err
		}
		file.Decls = append(file.Decls, decl)
	}
	file.Span = lexer.Span{Start: start.Start, End: c.span().End}
	return file, nil
}

func (p *Parser) parseDecl(c *cursor) (ast.Declaration, error) {
	switch c.kind() {
	case lexer.DEF:
		return p.parseFuncDecl(c)
	case lexer.IDENT:
		return p.parseStructDecl(c)
	default:
		return nil, &SyntaxError{
			Code:    ErrUnexpectedToken,
			Message: "expected a declaration, found " + c.kind().String(),
			Span:    c.span(),
		}
	}
}

func (p *Parser) parseFuncDecl(c *cursor) (*ast.FuncDecl, error) {
	start := c.span()
	if _, err := c.expect(lexer.DEF); err != nil {
		return nil, err
	}
	name, err := p.parseIdentifier(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	for c.kind() != lexer.RPAREN {
		if len(params) > 0 {
			if _, err := c.expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}
		pname, err := p.parseIdentifier(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(lexer.COLON); err != nil {
			return nil, err
		}
		ptype, err := p.parseType(c)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: pname, Type: ptype, Span: pname.Span})
	}
	if _, err := c.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := c.expect(lexer.COLON); err != nil {
		return nil, err
	}
	resultType, err := p.parseType(c)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody(c)
	if err != nil {
		return nil, err
	}
	if c.kind() == lexer.SEMICOLON { // the declaration's terminating ';'
		c.advance()
	}
	return &ast.FuncDecl{
		Name:   name,
		Params: params,
		Result: resultType,
		Body:   body,
		Span:   lexer.Span{Start: start.Start, End: body.Span.End},
	}, nil
}

// parseStructDecl parses `name { attr: type, ... }` — a struct shape
// accepted only when a bare identifier opens a declaration outside `def`.
func (p *Parser) parseStructDecl(c *cursor) (*ast.StructDecl, error) {
	start := c.span()
	name, err := p.parseIdentifier(c)
	if err != nil {
		return nil, err
	}
	if _, err := c.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var attrs []ast.AttrDecl
	for c.kind() != lexer.RBRACE {
		if len(attrs) > 0 {
			if _, err := c.expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}
		if c.kind() == lexer.RBRACE { // trailing comma, permissive per grammar
			break
		}
		aname, err := p.parseIdentifier(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(lexer.COLON); err != nil {
			return nil, err
		}
		atype, err := p.parseType(c)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, ast.AttrDecl{Name: aname, Type: atype, Span: aname.Span})
	}
	end, err := c.expect(lexer.RBRACE)
	if err != nil {
		return nil, err
	}
	return &ast.StructDecl{Name: name, Attrs: attrs, Span: lexer.Span{Start: start.Start, End: p.store.Span(end).End}}, nil
}

func (p *Parser) parseIdentifier(c *cursor) (ast.Identifier, error) {
	h, err := c.expect(lexer.IDENT)
	if err != nil {
		return ast.Identifier{}, err
	}
	return ast.Identifier{Name: p.store.Lexeme(h), Span: p.store.Span(h)}, nil
}

// parseType parses a basic name, a function type (from -> to), or a type
// application (base::args).
func (p *Parser) parseType(c *cursor) (ast.Type, error) {
	start := c.span()
	name, err := p.parseIdentifier(c)
	if err != nil {
		return nil, err
	}
	var t ast.Type = &ast.BasicType{Name: name, Span: name.Span}
	if c.kind() == lexer.DOUBLECOLON {
		c.advance()
		if _, err := c.expect(lexer.LPAREN); err != nil {
			return nil, err
		}
		var args []ast.Type
		for c.kind() != lexer.RPAREN {
			if len(args) > 0 {
				if _, err := c.expect(lexer.COMMA); err != nil {
					return nil, err
				}
			}
			arg, err := p.parseType(c)
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		end, err := c.expect(lexer.RPAREN)
		if err != nil {
			return nil, err
		}
		t = &ast.EvaluatedType{Base: t, Args: args, Span: lexer.Span{Start: start.Start, End: p.store.Span(end).End}}
	}
	if c.kind() == lexer.ARROW {
		c.advance()
		to, err := p.parseType(c)
		if err != nil {
			return nil, err
		}
		t = &ast.FuncType{From: t, To: to, Span: lexer.Span{Start: start.Start, End: typeSpan(to).End}}
	}
	return t, nil
}

// typeSpan extracts a type node's span without requiring the Type
// interface itself to expose one.
func typeSpan(t ast.Type) lexer.Span {
	switch n := t.(type) {
	case *ast.BasicType:
		return n.Span
	case *ast.FuncType:
		return n.Span
	case *ast.EvaluatedType:
		return n.Span
	default:
		return lexer.Span{}
	}
}

func (p *Parser) parseBody(c *cursor) (ast.Body, error) {
	start := c.span()
	if c.kind() == lexer.LBRACE {
		c.advance()
		var lets []ast.LetBinding
		for c.kind() == lexer.LET {
			lstart := c.span()
			c.advance()
			name, err := p.parseIdentifier(c)
			if err != nil {
				return ast.Body{}, err
			}
			if _, err := c.expect(lexer.ASSIGN); err != nil {
				return ast.Body{}, err
			}
			expr, err := p.parseExpr(c)
			if err != nil {
				return ast.Body{}, err
			}
			if _, err := c.expect(lexer.SEMICOLON); err != nil {
				return ast.Body{}, err
			}
			lets = append(lets, ast.LetBinding{Name: name, Expr: expr, Span: lexer.Span{Start: lstart.Start, End: c.span().Start}})
		}
		if _, err := c.expect(lexer.RETURN); err != nil {
			return ast.Body{}, err
		}
		ret, err := p.parseExpr(c)
		if err != nil {
			return ast.Body{}, err
		}
		if _, err := c.expect(lexer.SEMICOLON); err != nil {
			return ast.Body{}, err
		}
		end, err := c.expect(lexer.RBRACE)
		if err != nil {
			return ast.Body{}, err
		}
		return ast.Body{Lets: lets, Return: ret, Span: lexer.Span{Start: start.Start, End: p.store.Span(end).End}}, nil
	}
	expr, err := p.parseExpr(c)
	if err != nil {
		return ast.Body{}, err
	}
	end := c.span()
	if c.kind() == lexer.SEMICOLON {
		c.advance()
		end = c.span()
	}
	return ast.Body{Expr: expr, Span: lexer.Span{Start: start.Start, End: end.Start}}, nil
}

// Expression grammar, two precedence levels: mul/div binds tighter than
// add/sub. Both loops climb iteratively, so the resulting AST (and the
// post-order emission in postorder.go) comes out left-associative without any
// special-case reordering step.
func (p *Parser) parseExpr(c *cursor) (ast.Expr, error) {
	return p.parseAdd(c)
}

func (p *Parser) parseAdd(c *cursor) (ast.Expr, error) {
	left, err := p.parseMul(c)
	if err != nil {
		return nil, err
	}
	for c.kind() == lexer.PLUS || c.kind() == lexer.MINUS {
		op := c.kind()
		start := c.span()
		c.advance()
		right, err := p.parseMul(c)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: lexer.Span{Start: start.Start, End: c.span().Start}}
	}
	return left, nil
}

func (p *Parser) parseMul(c *cursor) (ast.Expr, error) {
	left, err := p.parsePrimary(c)
	if err != nil {
		return nil, err
	}
	for c.kind() == lexer.STAR || c.kind() == lexer.SLASH {
		op := c.kind()
		start := c.span()
		c.advance()
		right, err := p.parsePrimary(c)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: lexer.Span{Start: start.Start, End: c.span().Start}}
	}
	return left, nil
}

func (p *Parser) parsePrimary(c *cursor) (ast.Expr, error) {
	switch c.kind() {
	case lexer.INT:
		h := c.cur()
		c.advance()
		return &ast.IntLit{Value: p.store.Lexeme(h), Span: p.store.Span(h)}, nil
	case lexer.REAL:
		h := c.cur()
		c.advance()
		return &ast.RealLit{Value: p.store.Lexeme(h), Span: p.store.Span(h)}, nil
	case lexer.STRING:
		h := c.cur()
		c.advance()
		return &ast.StringLit{Value: p.store.Lexeme(h), Span: p.store.Span(h)}, nil
	case lexer.BACKSLASH:
		return p.parseLambda(c)
	case lexer.LPAREN:
		c.advance()
		inner, err := p.parseExpr(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		return inner, nil
	case lexer.IDENT:
		name, err := p.parseIdentifier(c)
		if err != nil {
			return nil, err
		}
		var expr ast.Expr = &ast.IdentExpr{Name: name, Span: name.Span}
		for c.kind() == lexer.LPAREN {
			c.advance()
			var args []ast.Expr
			for c.kind() != lexer.RPAREN {
				if len(args) > 0 {
					if _, err := c.expect(lexer.COMMA); err != nil {
						return nil, err
					}
				}
				arg, err := p.parseExpr(c)
				if err != nil {
					return nil, err
				}
				args = append(args, arg)
			}
			end, err := c.expect(lexer.RPAREN)
			if err != nil {
				return nil, err
			}
			expr = &ast.CallExpr{Fn: expr, Args: args, Span: lexer.Span{Start: name.Span.Start, End: p.store.Span(end).End}}
		}
		return expr, nil
	default:
		return nil, &SyntaxError{Code: ErrInvalidExpr, Message: "expected an expression, found " + c.kind().String(), Span: c.span()}
	}
}

// parseLambda parses `\(params): type { ... }` as an anonymous FuncDecl.
func (p *Parser) parseLambda(c *cursor) (ast.Expr, error) {
	start := c.span()
	c.advance() // backslash
	if _, err := c.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	for c.kind() != lexer.RPAREN {
		if len(params) > 0 {
			if _, err := c.expect(lexer.COMMA); err != nil {
				return nil, err
			}
		}
		pname, err := p.parseIdentifier(c)
		if err != nil {
			return nil, err
		}
		if _, err := c.expect(lexer.COLON); err != nil {
			return nil, err
		}
		ptype, err := p.parseType(c)
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: pname, Type: ptype, Span: pname.Span})
	}
	if _, err := c.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	if _, err := c.expect(lexer.COLON); err != nil {
		return nil, err
	}
	resultType, err := p.parseType(c)
	if err != nil {
		return nil, err
	}
	body, err := p.parseBody(c)
	if err != nil {
		return nil, err
	}
	decl := &ast.FuncDecl{Params: params, Result: resultType, Body: body, Span: lexer.Span{Start: start.Start, End: body.Span.End}}
	return &ast.LambdaExpr{Value: decl, Span: decl.Span}, nil
}
