package lexer

// Position locates a byte offset in source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Span is a half-open [Start, End) range over source text.
type Span struct {
	Start Position
	End   Position
}

// Handle is an opaque reference to a token within the Tokens store that
// produced it. A Handle from one store is meaningless against another.
type Handle int

// Tokens is the parallel-array token store: kinds and slices always have
// identical length, and a Handle is simply an index shared by both.
type Tokens struct {
	src    []byte
	kinds  []Kind
	spans  []Span
	lexeme []string
}

// NewTokens creates an empty store bound to the given source buffer; the
// buffer must outlive any Handle resolved against the store.
func NewTokens(src []byte) *Tokens {
	return &Tokens{src: src}
}

// push appends a token and returns its Handle. Invariant: len(kinds) ==
// len(spans) == len(lexeme) after every call.
func (t *Tokens) push(kind Kind, span Span, lit string) Handle {
	t.kinds = append(t.kinds, kind)
	t.spans = append(t.spans, span)
	t.lexeme = append(t.lexeme, lit)
	return Handle(len(t.kinds) - 1)
}

// PushRaw appends a synthetic token with no meaningful span, for stores
// built by reordering another store's tokens (e.g. the parser's
// post-order emission) rather than by scanning source bytes directly.
func (t *Tokens) PushRaw(kind Kind, lit string) Handle {
	return t.push(kind, Span{}, lit)
}

// Len reports how many tokens the store holds.
func (t *Tokens) Len() int { return len(t.kinds) }

// Kind resolves a handle's kind.
func (t *Tokens) Kind(h Handle) Kind { return t.kinds[h] }

// Span resolves a handle's source span.
func (t *Tokens) Span(h Handle) Span { return t.spans[h] }

// Lexeme resolves a handle's literal text, exactly as scanned.
func (t *Tokens) Lexeme(h Handle) string { return t.lexeme[h] }

// Source returns the buffer the store was built over.
func (t *Tokens) Source() []byte { return t.src }

// Cursor walks a Tokens store forward and backward by Handle. It never
// mutates the store; it is a view, the idiomatic Go stand-in for the
// original implementation's iterator-facade abstraction.
type Cursor struct {
	store *Tokens
	pos   int
}

// Cursor returns a cursor positioned at the store's first token.
func (t *Tokens) Cursor() Cursor {
	return Cursor{store: t, pos: 0}
}

// AtEnd reports whether the cursor has walked past the last token.
func (c Cursor) AtEnd() bool { return c.pos >= c.store.Len() }

// Handle returns the handle the cursor currently sits on. Calling it at
// AtEnd is a programmer error.
func (c Cursor) Handle() Handle { return Handle(c.pos) }

// Kind is a convenience shorthand for store.Kind(cursor.Handle()).
func (c Cursor) Kind() Kind { return c.store.Kind(c.Handle()) }

// Lexeme is a convenience shorthand for store.Lexeme(cursor.Handle()).
func (c Cursor) Lexeme() string { return c.store.Lexeme(c.Handle()) }

// Span is a convenience shorthand for store.Span(cursor.Handle()).
func (c Cursor) Span() Span { return c.store.Span(c.Handle()) }

// Next advances the cursor by one token and returns the new cursor.
func (c Cursor) Next() Cursor { return Cursor{store: c.store, pos: c.pos + 1} }

// Prev moves the cursor back by one token and returns the new cursor.
func (c Cursor) Prev() Cursor { return Cursor{store: c.store, pos: c.pos - 1} }

// Walk reconstructs the scanned text by calling fn with each token's kind
// and exact lexeme, in order. It exists mainly for round-trip testing.
func (t *Tokens) Walk(fn func(Kind, string)) {
	for i := range t.kinds {
		fn(t.kinds[i], t.lexeme[i])
	}
}
