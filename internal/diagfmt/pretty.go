package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pycheck/internal/driver"
)

type palette struct {
	path    *color.Color
	kind    *color.Color
	message *color.Color
	gutter  *color.Color
	caret   *color.Color
	note    *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		path:    color.New(color.Bold),
		kind:    color.New(color.FgRed, color.Bold),
		message: color.New(color.Bold),
		gutter:  color.New(color.FgBlue, color.Bold),
		caret:   color.New(color.FgRed, color.Bold),
		note:    color.New(color.FgCyan, color.Bold),
	}
	for _, c := range []*color.Color{p.path, p.kind, p.message, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// Pretty форматирует результат в человекочитаемый вид:
//
//	<path>:<line>:<col>: <kind>: <message>
//	   2 | print("x")
//	     | ^
//
// затем заметки. Для generic-ошибок позиция и строка опускаются.
// Успешная проверка ничего не печатает.
func Pretty(w io.Writer, result *driver.CheckResult, opts PrettyOpts) error {
	if result == nil || result.Failure == nil {
		return nil
	}
	f := result.Failure
	p := newPalette(opts.Color)
	bw := bufio.NewWriter(w)

	loc := result.Path
	if f.Line != driver.NoLine {
		loc = fmt.Sprintf("%s:%d:%d", result.Path, f.Line, max(f.Column, 1))
	}
	fmt.Fprintf(bw, "%s: %s: %s\n", p.path.Sprint(loc), p.kind.Sprint(f.Kind.Text()), p.message.Sprint(f.Message))

	if f.Line != driver.NoLine {
		num := strconv.Itoa(f.Line)
		pad := strings.Repeat(" ", len(num))
		fmt.Fprintf(bw, " %s %s %s\n", p.gutter.Sprint(num), p.gutter.Sprint("|"), f.Text)
		fmt.Fprintf(bw, " %s %s %s%s\n", pad, p.gutter.Sprint("|"), strings.Repeat(" ", caretOffset(f)), p.caret.Sprint("^"))
	}

	if opts.ShowNotes {
		for _, n := range f.Notes {
			fmt.Fprintf(bw, "  %s %d:%d: %s\n", p.note.Sprint("note:"), n.Line, n.Column, n.Message)
		}
	}
	return bw.Flush()
}

// caretOffset returns the display width between the start of the trimmed
// line and the failure column.
func caretOffset(f *driver.Failure) int {
	rel := f.Column - max(f.TextColumn, 1)
	if rel <= 0 {
		return 0
	}
	rel = min(rel, len(f.Text))
	prefix := strings.ReplaceAll(f.Text[:rel], "\t", " ")
	return runewidth.StringWidth(prefix)
}
