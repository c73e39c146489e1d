// Package token defines lexical token kinds and trivia for Python source.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span.
//   - Newline, Indent and Dedent are structural tokens; Indent/Dedent and the
//     Newline synthesised at EOF are zero-width.
//   - Comments, blank lines, whitespace and backslash continuations are
//     leading Trivia and never appear in the main token stream.
//   - Keywords are Names with Kind Keyword; soft keywords (match, case, _)
//     stay Names.
package token
