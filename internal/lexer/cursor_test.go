package lexer

import (
	"testing"

	"pycheck/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("test.py", []byte(content)))
}

// TestBumpWalksBytes: "if\n" читается побайтно, на EOF Peek/Bump дают 0.
func TestBumpWalksBytes(t *testing.T) {
	cursor := NewCursor(createFile("if\n"))
	for _, want := range []byte("if\n") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() || cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatalf("expected EOF with zero bytes, off %d", cursor.Off)
	}
}

func TestPeek2(t *testing.T) {
	cursor := NewCursor(createFile("**="))
	tests := []struct {
		b0, b1 byte
		ok     bool
	}{
		{'*', '*', true},
		{'*', '=', true},
		{0, 0, false},
	}
	for i, tt := range tests {
		b0, b1, ok := cursor.Peek2()
		if b0 != tt.b0 || b1 != tt.b1 || ok != tt.ok {
			t.Fatalf("step %d: Peek2 = (%q, %q, %v), want (%q, %q, %v)", i, b0, b1, ok, tt.b0, tt.b1, tt.ok)
		}
		cursor.Bump()
	}
}

// TestSpanFromResolve: колонки байтовые, '\n' принадлежит своей строке.
func TestSpanFromResolve(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.py", []byte("α\nβ")))
	cursor := NewCursor(file)

	mark := cursor.Mark()
	cursor.BumpRune()
	span := cursor.SpanFrom(mark)
	if span.Start != 0 || span.End != 2 || span.File != file.ID {
		t.Fatalf("span = %+v, want 0..2 in file %d", span, file.ID)
	}
	start, end := fs.Resolve(span)
	if start != (source.LineCol{Line: 1, Col: 1}) || end != (source.LineCol{Line: 1, Col: 3}) {
		t.Fatalf("resolve = %+v..%+v", start, end)
	}

	mark = cursor.Mark()
	cursor.Bump()
	start, end = fs.Resolve(cursor.SpanFrom(mark))
	if start != (source.LineCol{Line: 1, Col: 3}) || end != (source.LineCol{Line: 2, Col: 1}) {
		t.Fatalf("newline resolve = %+v..%+v", start, end)
	}
}

func TestEat(t *testing.T) {
	cursor := NewCursor(createFile(":\n"))
	if cursor.Eat('=') {
		t.Fatal("Eat('=') matched ':'")
	}
	if cursor.Off != 0 {
		t.Fatalf("failed Eat moved the cursor to %d", cursor.Off)
	}
	if !cursor.Eat(':') || !cursor.Eat('\n') {
		t.Fatalf("Eat failed at off %d", cursor.Off)
	}
	if cursor.Eat('\n') {
		t.Fatal("Eat succeeded at EOF")
	}
}

func TestMarkReset(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	first := cursor.Mark()
	cursor.Bump()
	second := cursor.Mark()
	cursor.Bump()

	cursor.Reset(second)
	if cursor.Peek() != 'b' {
		t.Fatalf("after Reset(second) Peek = %q", cursor.Peek())
	}
	cursor.Reset(first)
	if cursor.Peek() != 'a' {
		t.Fatalf("after Reset(first) Peek = %q", cursor.Peek())
	}
}


// TestRunes проверяет PeekRune/BumpRune на многобайтовых символах
func TestRunes(t *testing.T) {
	file := createFile("πx")
	cursor := NewCursor(file)

	r, size := cursor.PeekRune()
	if r != 'π' || size != 2 {
		t.Fatalf("PeekRune = %q/%d, want 'π'/2", r, size)
	}
	if got := cursor.BumpRune(); got != 'π' || cursor.Off != 2 {
		t.Fatalf("BumpRune = %q, off %d", got, cursor.Off)
	}
	if got := cursor.BumpRune(); got != 'x' || !cursor.EOF() {
		t.Fatalf("BumpRune = %q, EOF %v", got, cursor.EOF())
	}
	if _, size := cursor.PeekRune(); size != 0 {
		t.Fatalf("PeekRune at EOF size = %d", size)
	}
	cursor.BumpRune() // на EOF ничего не делает
	if cursor.Off != 3 {
		t.Fatalf("offset moved past EOF: %d", cursor.Off)
	}
}

// TestEatSeq проверяет жадный матч многобайтовых операторов и кавычек
func TestEatSeq(t *testing.T) {
	file := createFile(`**= ""`)
	cursor := NewCursor(file)

	if cursor.EatSeq("//") {
		t.Fatal("EatSeq matched a different operator")
	}
	if !cursor.EatSeq("**=") || cursor.Off != 3 {
		t.Fatalf("EatSeq(**=) failed, off %d", cursor.Off)
	}
	cursor.Bump()
	if cursor.EatSeq(`"""`) {
		t.Fatal("EatSeq must not match past the end of input")
	}
	if !cursor.EatSeq(`""`) || !cursor.EOF() {
		t.Fatalf("EatSeq(\"\") failed, off %d", cursor.Off)
	}
}
