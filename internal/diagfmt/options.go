package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"pycheck/internal/driver"
	"pycheck/internal/observ"
)

// Format selects how a CheckResult is rendered on stdout.
type Format uint8

const (
	// FormatPlain is the four-line output; nothing is printed on success.
	FormatPlain Format = iota
	FormatJSON
	FormatPretty
)

func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatJSON:
		return "json"
	case FormatPretty:
		return "pretty"
	default:
		return "unknown"
	}
}

// ParseFormat разбирает значение флага --format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return FormatPlain, nil
	case "json":
		return FormatJSON, nil
	case "pretty":
		return FormatPretty, nil
	default:
		return FormatPlain, fmt.Errorf("unknown format %q (want plain, json or pretty)", s)
	}
}

// PrettyOpts configures pretty-printing of a failure.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool
}

// JSONOpts configures JSON output.
type JSONOpts struct {
	Timings *observ.Report // nil - без таймингов
	Compact bool
}

// Opts bundles the per-format options for Render.
type Opts struct {
	Pretty PrettyOpts
	JSON   JSONOpts
}

// Render writes result in the requested format.
func Render(w io.Writer, format Format, result *driver.CheckResult, opts Opts) error {
	switch format {
	case FormatPlain:
		return Plain(w, result)
	case FormatJSON:
		return JSON(w, result, opts.JSON)
	case FormatPretty:
		return Pretty(w, result, opts.Pretty)
	default:
		return fmt.Errorf("unsupported format %s", format)
	}
}
