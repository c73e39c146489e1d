package token

import "pycheck/internal/source"

type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	// TriviaNL is a newline that does not end a logical line (blank line,
	// comment-only line, or inside brackets).
	TriviaNL
	TriviaComment
	// TriviaContinuation is a backslash immediately followed by a newline.
	TriviaContinuation
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNL:
		return "NL"
	case TriviaComment:
		return "Comment"
	case TriviaContinuation:
		return "Continuation"
	}
	return "Unknown"
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
