package lexer

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"pycheck/internal/source"
)

// Cursor - позиция чтения в декодированном (UTF-8, только '\n') исходнике.
type Cursor struct {
	File *source.File
	Off  uint32
	end  uint32
}

// NewCursor creates a cursor at the start of f.
func NewCursor(f *source.File) Cursor {
	end, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, end: end}
}

// EOF проверяет, достигнут ли конец файла
func (c *Cursor) EOF() bool {
	return c.Off >= c.end
}

// Peek читает текущий байт, если есть, иначе возвращает 0
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// Peek2 читает текущий и следующий байт, если есть, иначе возвращает 0, 0, false
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.Off+1 >= c.end {
		return 0, 0, false
	}
	return c.File.Content[c.Off], c.File.Content[c.Off+1], true
}

// PeekRune декодирует руну в текущей позиции; size == 0 на EOF.
func (c *Cursor) PeekRune() (r rune, size int) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	if b := c.File.Content[c.Off]; b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(c.File.Content[c.Off:c.end])
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// BumpRune skips the rune under the cursor and returns it.
func (c *Cursor) BumpRune() rune {
	r, size := c.PeekRune()
	c.Off += uint32(size) // size <= utf8.UTFMax
	return r
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatSeq consumes s if the input continues with it.
func (c *Cursor) EatSeq(s string) bool {
	rest := c.File.Content[c.Off:c.end]
	if len(rest) < len(s) || string(rest[:len(s)]) != s {
		return false
	}
	c.Off += uint32(len(s)) // операторы и кавычки не длиннее трёх байт
	return true
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента
type Mark uint32

// Mark сохраняет текущую позицию курсора
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset возвращает курсор назад к метке
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
