package driver

import "pycheck/internal/diag"

// Kind is the category of a failed check.
type Kind uint8

const (
	KindIndentation Kind = iota + 1
	KindSyntax
	KindGeneric
)

// String returns the exception-style name of the kind.
func (k Kind) String() string {
	switch k {
	case KindIndentation:
		return "IndentationError"
	case KindSyntax:
		return "SyntaxError"
	case KindGeneric:
		return "GenericError"
	default:
		return "UnknownError"
	}
}

// Text returns the label printed on the first output line.
func (k Kind) Text() string {
	switch k {
	case KindIndentation:
		return "indentation error"
	case KindSyntax:
		return "syntax error"
	default:
		return "error"
	}
}

// NoLine is the line number of failures that concern the file as a whole.
const NoLine = -1

// Note points at a secondary location of a failure.
type Note struct {
	Line    int
	Column  int
	Message string
}

// Failure describes why a file does not parse.
type Failure struct {
	Kind       Kind
	Code       diag.Code
	Line       int // 1-based; NoLine for generic failures
	Column     int // 1-based byte column; 0 when unknown
	Message    string
	Text       string // offending line, surrounding whitespace trimmed
	TextColumn int    // byte column where Text starts in the line
	Notes      []Note
}

// LineNumber returns the 1-based line of the failure or NoLine.
func (f *Failure) LineNumber() int {
	if f == nil {
		return NoLine
	}
	return f.Line
}

// SourceLine returns the trimmed offending line; empty for generic failures.
func (f *Failure) SourceLine() string {
	if f == nil {
		return ""
	}
	return f.Text
}

// CheckResult is the verdict for one file: Ok when Failure is nil.
type CheckResult struct {
	Path    string
	Failure *Failure
}

// OK reports whether the file parsed.
func (r *CheckResult) OK() bool {
	return r != nil && r.Failure == nil
}
