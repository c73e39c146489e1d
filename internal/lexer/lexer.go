package lexer

import (
	"unicode/utf8"

	"pycheck/internal/diag"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

// tabSize is the column a tab advances to the next multiple of.
const tabSize = 8

// indentLevel хранит ширину отступа в двух метриках: col считает таб до
// кратного tabSize, alt считает таб за один столбец. Несогласованность
// метрик означает смешение табов и пробелов.
type indentLevel struct {
	col int
	alt int
}

type openBracket struct {
	ch   byte
	span source.Span
}

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token   // 1 элементный буфер для токена
	hold   []token.Trivia // накопленные leading trivia
	queue  []token.Token  // отложенные структурные токены (INDENT/DEDENT, NEWLINE на EOF)

	indents  []indentLevel
	brackets []openBracket

	lineStart   bool // курсор стоит в начале физической строки вне скобок
	expectBlock bool // предыдущая логическая строка - заголовок блока
	continued   bool // последним был перенос строки через '\'
	done        bool

	// первый и последний значимые токены текущей логической строки
	first, last token.Token
	lineToks    int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:      file,
		cursor:    NewCursor(file),
		opts:      opts,
		indents:   []indentLevel{{}},
		lineStart: true,
	}
}

// Tokenize drains a fresh lexer and returns every token up to and including EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// Next возвращает следующий токен (включая NEWLINE/INDENT/DEDENT) с уже
// собранным Leading. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		if len(lx.queue) > 0 {
			tok := lx.queue[0]
			lx.queue = lx.queue[1:]
			tok.Leading = lx.takeHold()
			return tok
		}
		if lx.done {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}

		if lx.lineStart {
			lx.lineStart = false
			lx.scanIndentation()
			continue
		}

		lx.collectLeadingTrivia()

		if lx.cursor.EOF() {
			lx.finish()
			continue
		}

		if lx.cursor.Peek() == '\n' {
			start := lx.cursor.Mark()
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			lx.lineStart = true
			lx.continued = false
			if lx.lineToks == 0 {
				// логическая строка пуста (например, после переноса через '\')
				lx.hold = append(lx.hold, token.Trivia{Kind: token.TriviaNL, Span: sp, Text: "\n"})
				continue
			}
			lx.endLogicalLine()
			return token.Token{Kind: token.Newline, Span: sp, Text: "\n", Leading: lx.takeHold()}
		}

		tok := lx.scanToken()
		lx.noteToken(tok)
		tok.Leading = lx.takeHold()
		return tok
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

func (lx *Lexer) scanToken() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isIdentStartByte(ch):
		// ASCII буква → идентификатор, ключевое слово или префикс строки
		return lx.scanIdentOrKeyword()

	case ch >= utf8.RuneSelf:
		// Возможный Unicode идентификатор
		if r, _ := lx.cursor.PeekRune(); isIdentStartRune(r) {
			return lx.scanIdentOrKeyword()
		}
		return lx.scanInvalidRune()

	case isDec(ch):
		return lx.scanNumber()

	case ch == '.' && lx.isNumberAfterDot():
		return lx.scanNumber()

	case ch == '"' || ch == '\'':
		return lx.scanString(lx.cursor.Mark())

	case ch == '\\':
		return lx.scanBadContinuation()

	case isControlByte(ch):
		return lx.scanInvalidRune()

	default:
		// операторы, скобки, разделители и прочая ASCII пунктуация
		return lx.scanOperatorOrPunct()
	}
}

func (lx *Lexer) noteToken(tok token.Token) {
	if lx.lineToks == 0 {
		lx.first = tok
	}
	lx.last = tok
	lx.lineToks++
	lx.continued = false
}

// endLogicalLine закрывает логическую строку и запоминает, ждём ли блок.
func (lx *Lexer) endLogicalLine() {
	lx.expectBlock = token.OpensBlock(lx.first.Word()) && lx.last.IsOp(":")
	lx.first, lx.last = token.Token{}, token.Token{}
	lx.lineToks = 0
}

// finish ставит в очередь хвост потока на EOF: NEWLINE, DEDENT'ы и сообщает
// о незакрытых конструкциях.
func (lx *Lexer) finish() {
	eof := lx.emptySpan()

	if n := len(lx.brackets); n > 0 {
		open := lx.brackets[n-1]
		lx.errLexNote(diag.LexUnexpectedEOF, eof, "unexpected EOF while parsing",
			open.span, "'"+string(open.ch)+"' was never closed")
		lx.brackets = nil
	} else if lx.continued {
		lx.errLex(diag.LexUnexpectedEOF, eof, "unexpected EOF while parsing")
	}

	if lx.lineToks > 0 {
		lx.queue = append(lx.queue, token.Token{Kind: token.Newline, Span: eof})
		lx.endLogicalLine()
	}
	if lx.expectBlock {
		lx.expectBlock = false
		lx.errLex(diag.IndExpectedBlock, eof, "expected an indented block")
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: eof})
	}
	lx.done = true
}

func (lx *Lexer) takeHold() []token.Trivia {
	h := lx.hold
	lx.hold = nil
	return h
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
