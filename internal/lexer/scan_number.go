package lexer

import "pycheck/internal/token"

// scanNumber сканирует числовой литерал нестрого: цифры, буквы, '_' и '.',
// плюс знак экспоненты в десятичных литералах. Корректность самого числа
// проверяет грамматика.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()

	hex := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '0' && (b1 == 'x' || b1 == 'X') {
		hex = true
	}

	var prev byte
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch {
		case isIdentContinueByte(b) || b == '.':
		case (b == '+' || b == '-') && !hex && (prev == 'e' || prev == 'E'):
		default:
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.Number, Span: sp, Text: lx.text(sp)}
		}
		prev = lx.cursor.Bump()
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Number, Span: sp, Text: lx.text(sp)}
}
