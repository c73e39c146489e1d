package lexer

import (
	"fmt"
	"unicode/utf8"

	"pycheck/internal/diag"
	"pycheck/internal/token"
)

// scanIdentOrKeyword сканирует идентификатор. Если идентификатор - префикс
// строки (r, b, f, rb, ...) и сразу за ним кавычка, сканирует строку.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()

	// ASCII fast-path
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b < utf8.RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, _ := lx.cursor.PeekRune()
		if !isIdentContinueRune(r) {
			break
		}
		lx.cursor.BumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	if q := lx.cursor.Peek(); (q == '"' || q == '\'') && isStringPrefix(text) {
		return lx.scanString(start)
	}

	kind := token.Name
	if token.IsKeyword(text) {
		kind = token.Keyword
	}
	return token.Token{Kind: kind, Span: sp, Text: text}
}

// scanInvalidRune съедает одну руну, которая не может начинать токен.
func (lx *Lexer) scanInvalidRune() token.Token {
	start := lx.cursor.Mark()
	r := lx.cursor.BumpRune()
	sp := lx.cursor.SpanFrom(start)

	msg := fmt.Sprintf("invalid character '%c' (U+%04X)", r, r)
	if r < utf8.RuneSelf {
		msg = fmt.Sprintf("invalid non-printable character U+%04X", r)
	}
	lx.errLex(diag.LexUnknownChar, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanBadContinuation: '\' не в конце строки.
func (lx *Lexer) scanBadContinuation() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexBadContinuation, sp, "unexpected character after line continuation character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
