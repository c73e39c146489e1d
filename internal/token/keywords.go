package token

// Python 3 reserved words plus the Python 2 statements the grammar still
// accepts (print, exec).
var keywords = map[string]struct{}{
	"False": {}, "None": {}, "True": {},
	"and": {}, "as": {}, "assert": {}, "async": {}, "await": {},
	"break": {}, "class": {}, "continue": {}, "def": {}, "del": {},
	"elif": {}, "else": {}, "except": {}, "finally": {}, "for": {},
	"from": {}, "global": {}, "if": {}, "import": {}, "in": {}, "is": {},
	"lambda": {}, "nonlocal": {}, "not": {}, "or": {}, "pass": {},
	"raise": {}, "return": {}, "try": {}, "while": {}, "with": {}, "yield": {},
	"print": {}, "exec": {},
}

// compound statements whose header ends with ':' and owns an indented suite.
var blockOpeners = map[string]struct{}{
	"if": {}, "elif": {}, "else": {}, "while": {}, "for": {},
	"try": {}, "except": {}, "finally": {}, "with": {},
	"def": {}, "class": {}, "async": {},
	"match": {}, "case": {},
}

// IsKeyword reports whether ident is reserved.
// Ключевые слова регистрозависимые.
func IsKeyword(ident string) bool {
	_, ok := keywords[ident]
	return ok
}

// OpensBlock reports whether a logical line starting with word and ending
// in ':' must be followed by an indented block.
func OpensBlock(word string) bool {
	_, ok := blockOpeners[word]
	return ok
}
