package lexer

import "testing"

func scanKinds(t *testing.T, src string, keepWhitespace bool) []Kind {
	t.Helper()
	store := ScanAll([]byte(src), keepWhitespace)
	kinds := make([]Kind, 0, store.Len())
	for i := 0; i < store.Len(); i++ {
		kinds = append(kinds, store.Kind(Handle(i)))
	}
	return kinds
}

func TestScanAllKeywordsAndPunctuation(t *testing.T) {
	src := "def Main(): real { let x = 1; return x + 2 * 3; };"
	got := scanKinds(t, src, false)
	want := []Kind{
		DEF, IDENT, LPAREN, RPAREN, COLON, IDENT, LBRACE,
		LET, IDENT, ASSIGN, INT, SEMICOLON,
		RETURN, IDENT, PLUS, INT, STAR, INT, SEMICOLON,
		RBRACE, SEMICOLON, EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("token count = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScanNeverFails(t *testing.T) {
	for _, src := range []string{"@@@", `"unterminated`, "123.", "\x00\x01"} {
		store := ScanAll([]byte(src), false)
		if store.Len() == 0 {
			t.Fatalf("scan of %q produced no tokens, want at least EOF", src)
		}
		if store.Kind(Handle(store.Len()-1)) != EOF {
			t.Fatalf("scan of %q did not terminate with EOF", src)
		}
	}
}

func TestScanIntegerUpgradesToReal(t *testing.T) {
	store := ScanAll([]byte("42 3.14 5. .5"), false)
	if store.Kind(0) != INT || store.Lexeme(0) != "42" {
		t.Fatalf("token 0 = %v %q, want INT 42", store.Kind(0), store.Lexeme(0))
	}
	if store.Kind(1) != REAL || store.Lexeme(1) != "3.14" {
		t.Fatalf("token 1 = %v %q, want REAL 3.14", store.Kind(1), store.Lexeme(1))
	}
	// A digit run immediately followed by '.' always upgrades to REAL,
	// even with no trailing digit.
	if store.Kind(2) != REAL || store.Lexeme(2) != "5." {
		t.Fatalf("token 2 = %v %q, want REAL 5.", store.Kind(2), store.Lexeme(2))
	}
	// A leading dot immediately followed by a digit is also a REAL.
	if store.Kind(3) != REAL || store.Lexeme(3) != ".5" {
		t.Fatalf("token 3 = %v %q, want REAL .5", store.Kind(3), store.Lexeme(3))
	}
}

func TestScanBareDotIsStructural(t *testing.T) {
	store := ScanAll([]byte(". .."), false)
	if store.Kind(0) != DOT {
		t.Fatalf("token 0 = %v, want DOT", store.Kind(0))
	}
	if store.Kind(1) != DOTDOT {
		t.Fatalf("token 1 = %v, want DOTDOT", store.Kind(1))
	}
}

func TestScanKeepWhitespaceRoundTrips(t *testing.T) {
	src := "def  Main ( ) : real { return 1 ; }"
	store := ScanAll([]byte(src), true)
	var rebuilt []byte
	store.Walk(func(k Kind, lit string) {
		if k != EOF {
			rebuilt = append(rebuilt, lit...)
		}
	})
	if string(rebuilt) != src {
		t.Fatalf("round trip = %q, want %q", rebuilt, src)
	}
}

func TestKindStringPanicsOnOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range kind")
		}
	}()
	_ = Kind(999).String()
}
