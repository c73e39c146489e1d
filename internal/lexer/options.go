package lexer

import (
	"pycheck/internal/diag"
	"pycheck/internal/source"
)

type Options struct {
	Reporter diag.Reporter // может быть nil - тогда ошибки игнорируем (но продолжаем лексить)
}

// errLex сообщает об ошибке лексера; форматирует diag внешний слой.
func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

// errLexNote сообщает об ошибке с дополнительной заметкой (например, где открыта скобка).
func (lx *Lexer) errLexNote(code diag.Code, sp source.Span, msg string, noteSpan source.Span, note string) {
	diag.ReportError(lx.opts.Reporter, code, sp, msg).
		WithNote(noteSpan, note).
		Emit()
}
