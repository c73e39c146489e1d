package lexer

import (
	"pycheck/internal/diag"
	"pycheck/internal/source"
	"pycheck/internal/token"
)

// scanIndentation измеряет отступ первой непустой строки и ставит в очередь
// INDENT/DEDENT. Пустые строки и строки из одного комментария пропускаются
// как trivia и на отступы не влияют.
func (lx *Lexer) scanIndentation() {
	for {
		start := lx.cursor.Mark()
		lvl := lx.measureIndent()
		if lx.cursor.Off > uint32(start) {
			lx.holdTrivia(token.TriviaSpace, start)
		}
		if lx.cursor.EOF() {
			return
		}
		if lx.cursor.Peek() == '#' {
			lx.scanComment()
		}
		if lx.cursor.EOF() {
			return
		}
		if lx.cursor.Peek() == '\n' {
			nl := lx.cursor.Mark()
			lx.cursor.Bump()
			lx.holdTrivia(token.TriviaNL, nl)
			continue
		}
		lx.applyIndent(lvl, lx.cursor.SpanFrom(start))
		return
	}
}

func (lx *Lexer) measureIndent() indentLevel {
	var lvl indentLevel
	for {
		switch lx.cursor.Peek() {
		case ' ':
			lvl.col++
			lvl.alt++
		case '\t':
			lvl.col = (lvl.col/tabSize + 1) * tabSize
			lvl.alt++
		case '\f':
			lvl = indentLevel{}
		default:
			return lvl
		}
		lx.cursor.Bump()
	}
}

// applyIndent сравнивает отступ строки с вершиной стека. sp покрывает отступ
// от начала строки до первого значимого символа.
func (lx *Lexer) applyIndent(lvl indentLevel, sp source.Span) {
	top := lx.indents[len(lx.indents)-1]
	expecting := lx.expectBlock
	lx.expectBlock = false

	if expecting && lvl.col <= top.col {
		lx.errLex(diag.IndExpectedBlock, sp, "expected an indented block")
	}

	switch {
	case lvl.col == top.col:
		if lvl.alt != top.alt {
			lx.errTabSpace(sp)
		}

	case lvl.col > top.col:
		if lvl.alt <= top.alt {
			lx.errTabSpace(sp)
		} else if !expecting {
			lx.errLex(diag.IndUnexpectedIndent, sp, "unexpected indent")
		}
		lx.indents = append(lx.indents, lvl)
		lx.queue = append(lx.queue, token.Token{Kind: token.Indent, Span: sp, Text: lx.text(sp)})

	default:
		for len(lx.indents) > 1 && lvl.col < top.col {
			lx.indents = lx.indents[:len(lx.indents)-1]
			top = lx.indents[len(lx.indents)-1]
			lx.queue = append(lx.queue, token.Token{Kind: token.Dedent, Span: sp.Tail()})
		}
		switch {
		case lvl.col != top.col:
			lx.errLex(diag.IndUnindentMismatch, sp, "unindent does not match any outer indentation level")
		case lvl.alt != top.alt:
			lx.errTabSpace(sp)
		}
	}
}

func (lx *Lexer) errTabSpace(sp source.Span) {
	lx.errLex(diag.IndTabSpaceMix, sp, "inconsistent use of tabs and spaces in indentation")
}
