package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedTripleString Code = 1003
	LexBadContinuation          Code = 1004
	LexUnexpectedEOF            Code = 1005
	LexUnmatchedBracket         Code = 1006
	LexMismatchedBracket        Code = 1007

	// Отступы
	IndInfo             Code = 2000
	IndExpectedBlock    Code = 2001
	IndUnexpectedIndent Code = 2002
	IndUnindentMismatch Code = 2003
	IndTabSpaceMix      Code = 2004

	// Грамматика
	SynInfo             Code = 3000
	SynInvalidSyntax    Code = 3001
	SynMissingToken     Code = 3002
	SynUnexpectedEOF    Code = 3003
	SynInvalidTarget    Code = 3004
	SynInvalidArguments Code = 3005
	SynInvalidParams    Code = 3006
	SynInvalidLiteral   Code = 3007
	SynTooDeep          Code = 3008

	// Кодировка исходника
	EncInfo            Code = 4000
	EncNullBytes       Code = 4001
	EncInvalidUTF8     Code = 4002
	EncUnknownEncoding Code = 4003
	EncDecodeFailed    Code = 4004
)

// Class groups codes by the stage that produced them.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassLexical
	ClassIndentation
	ClassGrammar
	ClassEncoding
)

func (c Class) String() string {
	switch c {
	case ClassLexical:
		return "lexical"
	case ClassIndentation:
		return "indentation"
	case ClassGrammar:
		return "grammar"
	case ClassEncoding:
		return "encoding"
	}
	return "unknown"
}

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedTripleString: "Unterminated triple-quoted string literal",
		LexBadContinuation:          "Bad line continuation",
		LexUnexpectedEOF:            "Unexpected end of file",
		LexUnmatchedBracket:         "Unmatched closing bracket",
		LexMismatchedBracket:        "Mismatched closing bracket",
		IndInfo:                     "Indentation information",
		IndExpectedBlock:            "Expected an indented block",
		IndUnexpectedIndent:         "Unexpected indent",
		IndUnindentMismatch:         "Unindent does not match outer level",
		IndTabSpaceMix:              "Inconsistent tabs and spaces",
		SynInfo:                     "Syntax information",
		SynInvalidSyntax:            "Invalid syntax",
		SynMissingToken:             "Missing token",
		SynUnexpectedEOF:            "Unexpected end of input",
		SynInvalidTarget:            "Invalid assignment target",
		SynInvalidArguments:         "Invalid call arguments",
		SynInvalidParams:            "Invalid parameter list",
		SynInvalidLiteral:           "Invalid literal",
		SynTooDeep:                  "Nesting too deep",
		EncInfo:                     "Encoding information",
		EncNullBytes:                "Null bytes in source",
		EncInvalidUTF8:              "Invalid UTF-8",
		EncUnknownEncoding:          "Unknown source encoding",
		EncDecodeFailed:             "Source decoding failed",
	}
)

func (c Code) Class() Class {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return ClassLexical
	case ic >= 2000 && ic < 3000:
		return ClassIndentation
	case ic >= 3000 && ic < 4000:
		return ClassGrammar
	case ic >= 4000 && ic < 5000:
		return ClassEncoding
	}
	return ClassUnknown
}

func (c Code) ID() string {
	ic := int(c)
	switch c.Class() {
	case ClassLexical:
		return fmt.Sprintf("LEX%04d", ic)
	case ClassIndentation:
		return fmt.Sprintf("IND%04d", ic)
	case ClassGrammar:
		return fmt.Sprintf("SYN%04d", ic)
	case ClassEncoding:
		return fmt.Sprintf("ENC%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
