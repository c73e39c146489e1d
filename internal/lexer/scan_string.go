package lexer

import (
	"strings"

	"pycheck/internal/diag"
	"pycheck/internal/token"
)

// isStringPrefix reports whether ident may prefix a string literal.
func isStringPrefix(ident string) bool {
	switch strings.ToLower(ident) {
	case "r", "u", "b", "f", "br", "rb", "fr", "rf", "ur":
		return true
	}
	return false
}

// scanString сканирует строковый литерал; start указывает на префикс (если он
// был), курсор стоит на открывающей кавычке. Escape-последовательности не
// валидируются: '\' просто съедает следующий байт, включая '\n'.
func (lx *Lexer) scanString(start Mark) token.Token {
	quote := lx.cursor.Bump()
	pair := string([]byte{quote, quote})
	triple := lx.cursor.EatSeq(pair)

	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' && !triple {
			// '\n' не съедаем: он закрывает логическую строку
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "EOL while scanning string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		lx.cursor.Bump()
		switch b {
		case '\\':
			lx.cursor.Bump()
		case quote:
			if !triple || lx.cursor.EatSeq(pair) {
				sp := lx.cursor.SpanFrom(start)
				return token.Token{Kind: token.String, Span: sp, Text: lx.text(sp)}
			}
		}
	}

	// EOF без закрывающей кавычки
	sp := lx.cursor.SpanFrom(start)
	if triple {
		lx.errLex(diag.LexUnterminatedTripleString, sp, "EOF while scanning triple-quoted string literal")
	} else {
		lx.errLex(diag.LexUnterminatedString, sp, "EOL while scanning string literal")
	}
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
