package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.noctern")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write temp source: %v", err)
	}
	return path
}

func TestRunCommandPrintsResult(t *testing.T) {
	path := writeTempSource(t, "def Main(): real { return 2 + 3 * 4; };")
	var stdout, stderr bytes.Buffer
	code := run([]string{"run", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "Result: 14" {
		t.Fatalf("stdout = %q, want %q", got, "Result: 14")
	}
}

func TestRunCommandFailsOnSyntaxError(t *testing.T) {
	path := writeTempSource(t, "def Main(: real { return 1; };")
	var stdout, stderr bytes.Buffer
	code := run([]string{"run", path}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if stderr.Len() == 0 {
		t.Fatal("expected a diagnostic on stderr")
	}
}

func TestLexCommandPrintsBareKindForLiteralTokens(t *testing.T) {
	path := writeTempSource(t, "def Main(): real { return 1; };")
	var stdout, stderr bytes.Buffer
	code := run([]string{"lex", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) == 0 || lines[0] != "DEF" {
		t.Fatalf("first line = %q, want bare %q", lines[0], "DEF")
	}
	if strings.Contains(stdout.String(), "DEF:") {
		t.Fatalf("literal DEF token should not carry a lexeme: %s", stdout.String())
	}
}

func TestLexCommandPrintsKindAndLexemeForDataBearingTokens(t *testing.T) {
	path := writeTempSource(t, "def Main(): real { return 1; };")
	var stdout, stderr bytes.Buffer
	code := run([]string{"lex", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), `IDENT: "Main"`) {
		t.Fatalf("stdout missing IDENT token with lexeme: %s", stdout.String())
	}
}
