package trace

import (
	"bufio"
	"io"
	"sync"
)

// Writer is a buffered tracer over an io.Writer. Events are numbered in the
// order they are written. A failing sink never affects the check: the first
// write error is kept and returned by Close.
type Writer struct {
	mu     sync.Mutex
	buf    *bufio.Writer
	owned  io.Closer // файл, открытый Open; чужие writer'ы не закрываем
	level  Level
	format Format
	seq    uint64
	err    error
}

// NewWriter returns a tracer writing to w. Output is buffered until Close.
func NewWriter(w io.Writer, level Level, format Format) *Writer {
	return &Writer{
		buf:    bufio.NewWriter(w),
		level:  level,
		format: format,
	}
}

func (t *Writer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Kind, ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	ev.Seq = t.seq
	if _, err := t.buf.Write(FormatEvent(ev, t.format)); err != nil && t.err == nil {
		t.err = err
	}
}

func (t *Writer) Level() Level { return t.level }

// Close flushes buffered events and closes the file opened by Open.
// Calling it twice is safe.
func (t *Writer) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.buf.Flush(); err != nil && t.err == nil {
		t.err = err
	}
	if t.owned != nil {
		if err := t.owned.Close(); err != nil && t.err == nil {
			t.err = err
		}
		t.owned = nil
	}
	return t.err
}
