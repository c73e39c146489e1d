package lexer

import (
	"fmt"

	"pycheck/internal/diag"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

// Операторы по убыванию длины: матчим жадно.
var (
	ops3 = [...]string{"**=", "//=", ">>=", "<<=", "..."}
	ops2 = [...]string{
		"**", "//", ">>", "<<", "<=", ">=", "==", "!=", "<>", "->", ":=",
		"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=", "@=",
	}
)

// scanOperatorOrPunct сканирует оператор, разделитель или скобку. Неизвестная
// ASCII пунктуация ('$', '?', '`', одиночный '!') тоже становится Op: решает
// грамматика.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func() token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: token.Op, Span: sp, Text: lx.text(sp)}
	}

	for _, op := range ops3 {
		if lx.cursor.EatSeq(op) {
			return emit()
		}
	}
	for _, op := range ops2 {
		if lx.cursor.EatSeq(op) {
			return emit()
		}
	}

	ch := lx.cursor.Bump()
	tok := emit()
	switch ch {
	case '(', '[', '{':
		lx.brackets = append(lx.brackets, openBracket{ch: ch, span: tok.Span})
	case ')', ']', '}':
		lx.closeBracket(ch, tok.Span)
	}
	return tok
}

func (lx *Lexer) closeBracket(ch byte, sp source.Span) {
	n := len(lx.brackets)
	if n == 0 {
		lx.errLex(diag.LexUnmatchedBracket, sp, fmt.Sprintf("unmatched '%c'", ch))
		return
	}
	open := lx.brackets[n-1]
	lx.brackets = lx.brackets[:n-1]
	if closerFor(open.ch) == ch {
		return
	}

	msg := fmt.Sprintf("closing parenthesis '%c' does not match opening parenthesis '%c'", ch, open.ch)
	if openLine, closeLine := lx.file.Position(open.span.Start).Line, lx.file.Position(sp.Start).Line; openLine != closeLine {
		msg += fmt.Sprintf(" on line %d", openLine)
	}
	lx.errLexNote(diag.LexMismatchedBracket, sp, msg, open.span, "opened here")
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	case '{':
		return '}'
	}
	return 0
}
