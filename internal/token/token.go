package token

import (
	"pycheck/internal/source"
)

// Token represents a single source token with its location and trivia.
type Token struct {
	Kind    Kind
	Span    source.Span
	Text    string
	Leading []Trivia
}

// IsOp reports whether the token is the operator or delimiter op.
func (t Token) IsOp(op string) bool {
	return t.Kind == Op && t.Text == op
}

// IsStructural reports whether the token only carries line structure.
func (t Token) IsStructural() bool {
	switch t.Kind {
	case Newline, Indent, Dedent, EOF:
		return true
	default:
		return false
	}
}

// Word returns the identifier text for Name and Keyword tokens.
func (t Token) Word() string {
	if t.Kind == Name || t.Kind == Keyword {
		return t.Text
	}
	return ""
}
