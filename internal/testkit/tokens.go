package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pycheck/internal/source"
	"pycheck/internal/token"
)

// CheckTokenSpans runs a minimal set of span invariants on a token stream:
// 1) every span and trivia span belongs to sf and lies within its content
// 2) significant tokens are non-empty and do not overlap, in source order
// 3) the stream ends with exactly one EOF
// 4) INDENT and DEDENT tokens balance
func CheckTokenSpans(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty token stream")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	inBounds := func(sp source.Span) error {
		if sp.File != sf.ID {
			return fmt.Errorf("span %v points to different file id: want=%d", sp, sf.ID)
		}
		if sp.End < sp.Start || sp.End > lenContent {
			return fmt.Errorf("span %v out of bounds (len %d)", sp, lenContent)
		}
		return nil
	}

	var prevEnd uint32
	depth := 0
	for i, tok := range tokens {
		if err := inBounds(tok.Span); err != nil {
			return fmt.Errorf("token %d (%s): %w", i, tok.Kind, err)
		}
		for _, tr := range tok.Leading {
			if err := inBounds(tr.Span); err != nil {
				return fmt.Errorf("token %d (%s) trivia %s: %w", i, tok.Kind, tr.Kind, err)
			}
		}

		switch tok.Kind {
		case token.Indent:
			depth++
		case token.Dedent:
			depth--
			if depth < 0 {
				return fmt.Errorf("token %d: dedent below zero", i)
			}
		case token.EOF:
			if i != len(tokens)-1 {
				return fmt.Errorf("token %d: EOF before end of stream", i)
			}
		}

		if tok.IsStructural() {
			continue
		}
		if tok.Span.Empty() {
			return fmt.Errorf("token %d (%s): empty span", i, tok.Kind)
		}
		if tok.Span.Start < prevEnd {
			return fmt.Errorf("token %d (%s): span %v overlaps previous token ending at %d", i, tok.Kind, tok.Span, prevEnd)
		}
		prevEnd = tok.Span.End
	}

	if last := tokens[len(tokens)-1]; last.Kind != token.EOF {
		return fmt.Errorf("stream ends with %s, want EOF", last.Kind)
	}
	if depth != 0 {
		return fmt.Errorf("unbalanced indentation: %d open blocks at EOF", depth)
	}
	return nil
}
