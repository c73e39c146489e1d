package lexer

import (
	"pycheck/internal/diag"
	"pycheck/internal/token"
)

// collectLeadingTrivia собирает подряд идущие trivia перед значимым токеном.
// - ' ', '\t' и '\f' коалесцируются в один TriviaSpace
// - '#...' до \n -> TriviaComment
// - '\' + '\n' -> TriviaContinuation
// - '\n' внутри скобок -> TriviaNL (вне скобок это конец логической строки, его разбирает Next)
func (lx *Lexer) collectLeadingTrivia() {
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		switch {
		case b == ' ' || b == '\t' || b == '\f':
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\f' {
					break
				}
				lx.cursor.Bump()
			}
			lx.holdTrivia(token.TriviaSpace, start)

		case b == '#':
			lx.scanComment()

		case b == '\n' && len(lx.brackets) > 0:
			lx.cursor.Bump()
			lx.holdTrivia(token.TriviaNL, start)

		case b == '\\':
			b0, b1, ok := lx.cursor.Peek2()
			if ok && b0 == '\\' && b1 == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.holdTrivia(token.TriviaContinuation, start)
				lx.continued = true
				continue
			}
			if !ok {
				// '\' последним байтом файла
				lx.cursor.Bump()
				lx.errLex(diag.LexUnexpectedEOF, lx.emptySpan(), "unexpected EOF while parsing")
				continue
			}
			// '\' перед чем-то кроме перевода строки - это уже ошибка токена
			return

		default:
			return
		}
	}
}

// scanComment съедает '#...' до конца строки (без '\n').
func (lx *Lexer) scanComment() {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	lx.holdTrivia(token.TriviaComment, start)
}

func (lx *Lexer) holdTrivia(kind token.TriviaKind, start Mark) {
	sp := lx.cursor.SpanFrom(start)
	lx.hold = append(lx.hold, token.Trivia{
		Kind: kind,
		Span: sp,
		Text: lx.text(sp),
	})
}
