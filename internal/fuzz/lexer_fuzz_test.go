package fuzztests

import (
	"errors"
	"testing"

	"pycheck/internal/diag"
	"pycheck/internal/lexer"
	"pycheck/internal/source"
	"pycheck/internal/testkit"
)

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID, err := fs.LoadBytes("fuzz.py", input)
		if err != nil {
			var decErr *source.DecodeError
			if !errors.As(err, &decErr) {
				t.Fatalf("LoadBytes returned non-decode error: %v", err)
			}
			return
		}
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
		if err := testkit.CheckTokenSpans(tokens, file); err != nil {
			t.Fatalf("span invariants: %v\ninput: %q", err, truncateForLog(input, 200))
		}
	})
}
