package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Name represents an identifier (including soft keywords).
	Name
	// Keyword represents a reserved word such as 'if' or 'def'.
	Keyword
	// Number represents any numeric literal.
	Number
	// String represents a string or bytes literal, prefix included.
	String
	// Op represents an operator, delimiter or bracket.
	Op

	// Newline ends a logical line.
	Newline
	// Indent opens a deeper indentation level.
	Indent
	// Dedent closes an indentation level.
	Dedent
)

var kindNames = [...]string{
	Invalid: "INVALID",
	EOF:     "EOF",
	Name:    "NAME",
	Keyword: "KEYWORD",
	Number:  "NUMBER",
	String:  "STRING",
	Op:      "OP",
	Newline: "NEWLINE",
	Indent:  "INDENT",
	Dedent:  "DEDENT",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}
