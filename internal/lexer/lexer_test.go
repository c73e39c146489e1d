package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"pycheck/internal/diag"
	"pycheck/internal/lexer"
	"pycheck/internal/source"
	"pycheck/internal/testkit"
	"pycheck/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

// Report реализует интерфейс diag.Reporter
func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

// ErrorMessages возвращает список сообщений об ошибках
func (r *testReporter) ErrorMessages() []string {
	messages := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		messages = append(messages, fmt.Sprintf("[%s] %s: %s", d.Code.ID(), d.Severity, d.Message))
	}
	return messages
}

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *source.File, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	file := fs.Get(fileID)

	reporter := &testReporter{}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	return lx, file, reporter
}

// collectAllTokens собирает все токены до EOF
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	tokens := make([]token.Token, 0)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens
}

func kindsOf(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func assertKinds(t *testing.T, input string, want ...token.Kind) []token.Token {
	t.Helper()
	lx, _, rep := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("%q: unexpected diagnostics: %v", input, rep.ErrorMessages())
	}
	got := kindsOf(tokens)
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Fatalf("%q:\n got  %v\n want %v", input, got, want)
	}
	return tokens
}

func TestSimpleStatement(t *testing.T) {
	tokens := assertKinds(t, "x = 1\n",
		token.Name, token.Op, token.Number, token.Newline, token.EOF)
	if tokens[1].Text != "=" || tokens[2].Text != "1" {
		t.Fatalf("unexpected texts: %q %q", tokens[1].Text, tokens[2].Text)
	}
	if len(tokens[1].Leading) != 1 || tokens[1].Leading[0].Kind != token.TriviaSpace {
		t.Fatalf("expected one leading space before '=', got %+v", tokens[1].Leading)
	}
}

func TestIndentDedent(t *testing.T) {
	assertKinds(t, "if x:\n    y\nz\n",
		token.Keyword, token.Name, token.Op, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Dedent, token.Name, token.Newline,
		token.EOF)
}

func TestDedentsAtEOF(t *testing.T) {
	assertKinds(t, "def f():\n    if x:\n        return 1\n",
		token.Keyword, token.Name, token.Op, token.Op, token.Op, token.Newline,
		token.Indent, token.Keyword, token.Name, token.Op, token.Newline,
		token.Indent, token.Keyword, token.Number, token.Newline,
		token.Dedent, token.Dedent, token.EOF)
}

func TestMissingFinalNewline(t *testing.T) {
	tokens := assertKinds(t, "x", token.Name, token.Newline, token.EOF)
	if !tokens[1].Span.Empty() {
		t.Fatalf("synthesised NEWLINE must be zero-width, got %v", tokens[1].Span)
	}
}

func TestBlankAndCommentLinesAreTrivia(t *testing.T) {
	tokens := assertKinds(t, "if x:\n\n    # note\n    y\n",
		token.Keyword, token.Name, token.Op, token.Newline,
		token.Indent, token.Name, token.Newline,
		token.Dedent, token.EOF)

	var sawComment bool
	for _, tr := range tokens[4].Leading {
		if tr.Kind == token.TriviaComment && tr.Text == "# note" {
			sawComment = true
		}
	}
	if !sawComment {
		t.Fatalf("comment should be leading trivia of INDENT, got %+v", tokens[4].Leading)
	}
}

func TestNewlinesInsideBrackets(t *testing.T) {
	assertKinds(t, "f(a,\n  b)\n",
		token.Name, token.Op, token.Name, token.Op, token.Name, token.Op, token.Newline, token.EOF)
}

func TestContinuationLine(t *testing.T) {
	tokens := assertKinds(t, "x = 1 + \\\n    2\n",
		token.Name, token.Op, token.Number, token.Op, token.Number, token.Newline, token.EOF)
	var sawCont bool
	for _, tr := range tokens[4].Leading {
		if tr.Kind == token.TriviaContinuation {
			sawCont = true
		}
	}
	if !sawCont {
		t.Fatalf("expected continuation trivia before '2', got %+v", tokens[4].Leading)
	}
}

func TestStringPrefixes(t *testing.T) {
	lx, _, rep := makeTestLexer("a = b'x' + Rb\"y\" + f'{z}' + u'w'\nbr = 1\n")
	tokens := collectAllTokens(lx)
	if len(rep.diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", rep.ErrorMessages())
	}
	var strs []string
	for _, tok := range tokens {
		if tok.Kind == token.String {
			strs = append(strs, tok.Text)
		}
	}
	want := []string{"b'x'", "Rb\"y\"", "f'{z}'", "u'w'"}
	if strings.Join(strs, " ") != strings.Join(want, " ") {
		t.Fatalf("strings = %q, want %q", strs, want)
	}
	// "br" без кавычки - обычное имя
	var sawName bool
	for _, tok := range tokens {
		if tok.Kind == token.Name && tok.Text == "br" {
			sawName = true
		}
	}
	if !sawName {
		t.Fatal("expected Name token 'br'")
	}
}

func TestOperatorsGreedy(t *testing.T) {
	lx, _, _ := makeTestLexer("a **= b // c ... d <> e -> f := g\n")
	var ops []string
	for _, tok := range collectAllTokens(lx) {
		if tok.Kind == token.Op {
			ops = append(ops, tok.Text)
		}
	}
	want := "**= // ... <> -> :="
	if got := strings.Join(ops, " "); got != want {
		t.Fatalf("ops = %q, want %q", got, want)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _, _ := makeTestLexer("a b\n")
	p := lx.Peek()
	n := lx.Next()
	if p.Text != "a" || n.Text != "a" {
		t.Fatalf("Peek/Next mismatch: %q vs %q", p.Text, n.Text)
	}
	if next := lx.Next(); next.Text != "b" {
		t.Fatalf("expected 'b' after peeked token, got %q", next.Text)
	}
}

func TestEOFIsSticky(t *testing.T) {
	lx, _, _ := makeTestLexer("")
	for i := 0; i < 3; i++ {
		if tok := lx.Next(); tok.Kind != token.EOF {
			t.Fatalf("call %d: expected EOF, got %v", i, tok.Kind)
		}
	}
}

func TestValidSourcesProduceNoDiagnostics(t *testing.T) {
	inputs := []string{
		"",
		"# only comment",
		"x = 1",
		"def f(a, b=1, *args, **kw):\n    \"\"\"doc\n    string\"\"\"\n    return a\n",
		"class A(object):\n    def m(self):\n        pass\n\n    x = 1\n",
		"if x: pass\nelif y: pass\nelse:\n    z = 1\n",
		"x = [1,\n     2,  # comment\n  3]\n",
		"s = 'a\\'b' + \"c\\\"d\" + r'\\d'\n",
		"@decorator\ndef g():\n\treturn {'a': [1, (2, 3)]}\n",
		"try:\n    pass\nexcept Exception as e:\n    raise\nfinally:\n    pass\n",
		"x = 1\n\f\ny = 2\n",
		"print 'hello'\n",
		"while True:\n    # only comment\n    break\n",
		"x = 1e-5 + 0x1F - .5j\n",
		"with open(p) as f:\n    data = f.read()\n",
		"lambda_ = lambda: 0\n",
		"π = 3.14\n",
		"async def f():\n    await g()\n",
		"s = '''a\n'b'\n'''\n",
		"if x:\n    y = 1\n# dedented comment\n    z = 2\n",
		"x = 1 \\\n\ny = 2\n",
		"match command:\n    case 1:\n        pass\n",
	}
	for _, input := range inputs {
		lx, file, rep := makeTestLexer(input)
		tokens := collectAllTokens(lx)
		if len(rep.diagnostics) != 0 {
			t.Errorf("%q: unexpected diagnostics: %v", input, rep.ErrorMessages())
		}
		if err := testkit.CheckTokenSpans(tokens, file); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}

// Ошибочный ввод не должен ломать структуру потока токенов.
func TestBrokenSourcesKeepSpanInvariants(t *testing.T) {
	inputs := []string{
		"if True:\nprint(\"x\")\n",
		"def f(:\n    pass\n",
		"x = (1,\n",
		"s = 'abc\n",
		"s = '''abc\n",
		"x = 1)\n",
		"x = (1]\n",
		"x = 1 \\ y\n",
		"x = 1\\",
		"if x:\n\ta = 1\n        b = 2\n",
		"if x:\n        a = 1\n    b = 2\n",
		"  x = 1\n",
		"x = \x01\n",
		"if x:",
	}
	for _, input := range inputs {
		lx, file, rep := makeTestLexer(input)
		tokens := collectAllTokens(lx)
		if len(rep.diagnostics) == 0 {
			t.Errorf("%q: expected at least one diagnostic", input)
		}
		if err := testkit.CheckTokenSpans(tokens, file); err != nil {
			t.Errorf("%q: %v", input, err)
		}
	}
}

func TestDiagnostics(t *testing.T) {
	tests := []struct {
		name  string
		input string
		code  diag.Code
		msg   string
		line  uint32
	}{
		{"expected block", "if True:\nprint(\"x\")\n", diag.IndExpectedBlock, "expected an indented block", 2},
		{"expected block at EOF", "if True:\n", diag.IndExpectedBlock, "expected an indented block", 2},
		{"expected block on dedent", "def f():\n    if x:\n    y\n", diag.IndExpectedBlock, "expected an indented block", 3},
		{"unexpected indent", "x = 1\n    y = 2\n", diag.IndUnexpectedIndent, "unexpected indent", 2},
		{"unindent mismatch", "if x:\n    a\n  b\n", diag.IndUnindentMismatch, "unindent does not match any outer indentation level", 3},
		{"tab then spaces", "if x:\n\ta\n        b\n", diag.IndTabSpaceMix, "inconsistent use of tabs and spaces in indentation", 3},
		{"spaces then tab", "if x:\n        a\n\tb\n", diag.IndTabSpaceMix, "inconsistent use of tabs and spaces in indentation", 3},
		{"eol in string", "s = 'abc\nt = 1\n", diag.LexUnterminatedString, "EOL while scanning string literal", 1},
		{"eof in triple string", "x = 1\ns = \"\"\"abc\n\ndef\n", diag.LexUnterminatedTripleString, "EOF while scanning triple-quoted string literal", 2},
		{"bad continuation", "x = 1 \\ y\n", diag.LexBadContinuation, "unexpected character after line continuation character", 1},
		{"eof in brackets", "x = (1,\n2\n", diag.LexUnexpectedEOF, "unexpected EOF while parsing", 3},
		{"eof after continuation", "x = 1 + \\\n", diag.LexUnexpectedEOF, "unexpected EOF while parsing", 2},
		{"backslash at eof", "x = 1 + \\", diag.LexUnexpectedEOF, "unexpected EOF while parsing", 1},
		{"unmatched", "x = 1)\n", diag.LexUnmatchedBracket, "unmatched ')'", 1},
		{"mismatched", "x = (1]\n", diag.LexMismatchedBracket, "closing parenthesis ']' does not match opening parenthesis '('", 1},
		{"mismatched across lines", "x = (1,\n2]\n", diag.LexMismatchedBracket, "closing parenthesis ']' does not match opening parenthesis '(' on line 1", 2},
		{"invalid character", "x = 1 €\n", diag.LexUnknownChar, "invalid character '€' (U+20AC)", 1},
		{"non-printable", "x = 1\x01\n", diag.LexUnknownChar, "invalid non-printable character U+0001", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, file, rep := makeTestLexer(tt.input)
			collectAllTokens(lx)
			if len(rep.diagnostics) == 0 {
				t.Fatalf("expected diagnostic %s, got none", tt.code.ID())
			}
			d := rep.diagnostics[0]
			if d.Code != tt.code {
				t.Fatalf("code = %s, want %s (all: %v)", d.Code.ID(), tt.code.ID(), rep.ErrorMessages())
			}
			if d.Message != tt.msg {
				t.Fatalf("message = %q, want %q", d.Message, tt.msg)
			}
			if d.Severity != diag.SevError {
				t.Fatalf("severity = %s, want error", d.Severity)
			}
			if line := file.Position(d.Primary.Start).Line; line != tt.line {
				t.Fatalf("line = %d, want %d", line, tt.line)
			}
		})
	}
}

func TestUnclosedBracketNotePointsAtOpener(t *testing.T) {
	lx, file, rep := makeTestLexer("foo(\n  1,\n")
	collectAllTokens(lx)
	if len(rep.diagnostics) != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", rep.ErrorMessages())
	}
	d := rep.diagnostics[0]
	if len(d.Notes) != 1 {
		t.Fatalf("expected a note, got %+v", d.Notes)
	}
	if pos := file.Position(d.Notes[0].Span.Start); pos.Line != 1 || pos.Col != 4 {
		t.Fatalf("note position = %+v, want 1:4", pos)
	}
	if d.Notes[0].Msg != "'(' was never closed" {
		t.Fatalf("note = %q", d.Notes[0].Msg)
	}
}

func TestTokenizeMatchesNext(t *testing.T) {
	const input = "for i in range(3):\n    print(i)\n"
	lx, file, _ := makeTestLexer(input)
	viaNext := kindsOf(collectAllTokens(lx))
	viaTokenize := kindsOf(lexer.Tokenize(file, lexer.Options{}))
	if fmt.Sprint(viaNext) != fmt.Sprint(viaTokenize) {
		t.Fatalf("Tokenize = %v, Next = %v", viaTokenize, viaNext)
	}
}
