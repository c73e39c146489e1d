package diagfmt

import (
	"encoding/json"
	"io"

	"pycheck/internal/driver"
	"pycheck/internal/observ"
)

// NoteJSON представляет дополнительную заметку для JSON
type NoteJSON struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Message string `json:"message"`
}

// ResultJSON представляет корневую структуру JSON вывода
type ResultJSON struct {
	OK       bool           `json:"ok"`
	Path     string         `json:"path"`
	Kind     string         `json:"kind,omitempty"`
	KindText string         `json:"kind_text,omitempty"`
	Code     string         `json:"code,omitempty"`
	Line     *int           `json:"line,omitempty"`
	Column   int            `json:"column,omitempty"`
	Message  string         `json:"message,omitempty"`
	Text     *string        `json:"text,omitempty"`
	Notes    []NoteJSON     `json:"notes,omitempty"`
	Timings  *observ.Report `json:"timings,omitempty"`
}

// BuildResultJSON converts a CheckResult into its JSON shape. On failure
// line and text are always present, even when they are -1 and "".
func BuildResultJSON(result *driver.CheckResult, opts JSONOpts) ResultJSON {
	out := ResultJSON{Timings: opts.Timings}
	if result == nil {
		return out
	}
	out.OK = result.OK()
	out.Path = result.Path
	f := result.Failure
	if f == nil {
		return out
	}
	line := f.LineNumber()
	text := f.SourceLine()
	out.Kind = f.Kind.String()
	out.KindText = f.Kind.Text()
	out.Code = f.Code.ID()
	out.Line = &line
	out.Column = f.Column
	out.Message = f.Message
	out.Text = &text
	for _, n := range f.Notes {
		out.Notes = append(out.Notes, NoteJSON(n))
	}
	return out
}

// JSON выводит результат проверки в JSON формате.
func JSON(w io.Writer, result *driver.CheckResult, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	if !opts.Compact {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(BuildResultJSON(result, opts))
}
