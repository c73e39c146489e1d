package source

import "fmt"

// Span is a half-open byte range [Start, End) of one file's decoded content.
// Tokens, diagnostics and notes all point into the file through spans.
type Span struct {
	File  FileID
	Start uint32
	End   uint32
}

// Empty: нулевая ширина (INDENT/DEDENT, синтетический NEWLINE, EOF).
func (s Span) Empty() bool {
	return s.Start == s.End
}

// Tail returns the empty span at the end of s.
func (s Span) Tail() Span {
	return Span{File: s.File, Start: s.End, End: s.End}
}

// Before reports whether s starts strictly before other; spans of different
// files order by file ID.
func (s Span) Before(other Span) bool {
	if s.File != other.File {
		return s.File < other.File
	}
	return s.Start < other.Start
}

// Overlaps reports whether s and other share at least one byte.
func (s Span) Overlaps(other Span) bool {
	return s.File == other.File && s.Start < other.End && other.Start < s.End
}

func (s Span) String() string {
	return fmt.Sprintf("#%d[%d:%d)", s.File, s.Start, s.End)
}
