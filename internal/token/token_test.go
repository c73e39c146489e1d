package token_test

import (
	"testing"

	"pycheck/internal/token"
)

func TestIsKeyword(t *testing.T) {
	for _, kw := range []string{"if", "def", "lambda", "None", "print", "nonlocal"} {
		if !token.IsKeyword(kw) {
			t.Fatalf("%q should be a keyword", kw)
		}
	}
	// регистрозависимо, и мягкие ключевые слова остаются именами
	for _, name := range []string{"If", "none", "match", "case", "_", "self"} {
		if token.IsKeyword(name) {
			t.Fatalf("%q must NOT be a keyword", name)
		}
	}
}

func TestOpensBlock(t *testing.T) {
	for _, w := range []string{"if", "elif", "else", "for", "while", "try", "except", "finally", "with", "def", "class", "async", "match", "case"} {
		if !token.OpensBlock(w) {
			t.Fatalf("%q should open a block", w)
		}
	}
	for _, w := range []string{"lambda", "return", "x", "print", ""} {
		if token.OpensBlock(w) {
			t.Fatalf("%q must NOT open a block", w)
		}
	}
}

func TestTokenHelpers(t *testing.T) {
	colon := token.Token{Kind: token.Op, Text: ":"}
	if !colon.IsOp(":") || colon.IsOp(":=") {
		t.Fatal("IsOp mismatch for ':'")
	}
	if colon.IsStructural() {
		t.Fatal("':' is not structural")
	}
	for _, k := range []token.Kind{token.Newline, token.Indent, token.Dedent, token.EOF} {
		if !(token.Token{Kind: k}).IsStructural() {
			t.Fatalf("%s should be structural", k)
		}
	}
	if got := (token.Token{Kind: token.Keyword, Text: "if"}).Word(); got != "if" {
		t.Fatalf("Word() = %q, want if", got)
	}
	if got := (token.Token{Kind: token.String, Text: "'if'"}).Word(); got != "" {
		t.Fatalf("Word() on string = %q, want empty", got)
	}
	if token.Kind(200).String() != "UNKNOWN" {
		t.Fatal("out of range kind must print UNKNOWN")
	}
}
