package driver

import (
	"strings"
	"unicode"

	"pycheck/internal/diag"
	"pycheck/internal/source"
)

// earliest picks the finding on the lower line; on the same line the
// tokenizer's finding wins.
func earliest(file *source.File, lexDefect, synDefect *diag.Diagnostic) *diag.Diagnostic {
	switch {
	case lexDefect == nil:
		return synDefect
	case synDefect == nil:
		return lexDefect
	}
	if file.Position(synDefect.Primary.Start).Line < file.Position(lexDefect.Primary.Start).Line {
		return synDefect
	}
	return lexDefect
}

// KindOf maps a diagnostic code to the failure kind it is reported as.
func KindOf(code diag.Code) Kind {
	switch code.Class() {
	case diag.ClassIndentation:
		return KindIndentation
	case diag.ClassLexical, diag.ClassGrammar:
		return KindSyntax
	default:
		return KindGeneric
	}
}

func failureFrom(file *source.File, d *diag.Diagnostic) *Failure {
	pos := file.Position(d.Primary.Start)
	raw := file.GetLine(pos.Line)
	body := strings.TrimLeftFunc(raw, unicode.IsSpace)
	f := &Failure{
		Kind:       KindOf(d.Code),
		Code:       d.Code,
		Line:       int(pos.Line),
		Column:     int(pos.Col),
		Message:    d.Message,
		Text:       strings.TrimRightFunc(body, unicode.IsSpace),
		TextColumn: len(raw) - len(body) + 1,
	}
	for _, n := range d.Notes {
		np := file.Position(n.Span.Start)
		f.Notes = append(f.Notes, Note{Line: int(np.Line), Column: int(np.Col), Message: n.Msg})
	}
	return f
}

func genericFailure(err *source.DecodeError) *Failure {
	code := diag.EncDecodeFailed
	switch err.Reason {
	case source.DecodeNullBytes:
		code = diag.EncNullBytes
	case source.DecodeInvalidUTF8:
		code = diag.EncInvalidUTF8
	case source.DecodeUnknownEncoding:
		code = diag.EncUnknownEncoding
	}
	return &Failure{
		Kind:    KindGeneric,
		Code:    code,
		Line:    NoLine,
		Message: err.Msg,
	}
}
