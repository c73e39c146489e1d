package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events of one check. Emit must be goroutine-safe; Close
// flushes whatever the tracer buffered and reports the first write failure.
type Tracer interface {
	Emit(ev *Event)
	Level() Level
	Close() error
}

// Enabled reports whether t records anything at all.
func Enabled(t Tracer) bool {
	return t != nil && t.Level() > LevelOff
}

type disabled struct{}

func (disabled) Emit(*Event)  {}
func (disabled) Level() Level { return LevelOff }
func (disabled) Close() error { return nil }

// Disabled drops every event. FromContext returns it when no tracer is set.
var Disabled Tracer = disabled{}

// Config selects level, format and sink of a tracer.
type Config struct {
	Level  Level
	Format Format // FormatAuto: NDJSON for *.ndjson and *.jsonl paths, text otherwise
	// Output wins over Path and is never closed by the tracer.
	Output io.Writer
	// Path is a file to create; "" and "-" mean stderr.
	Path string
}

// Open builds the tracer described by cfg. LevelOff yields Disabled.
func Open(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Disabled, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = formatForPath(cfg.Path)
	}

	switch {
	case cfg.Output != nil:
		return NewWriter(cfg.Output, cfg.Level, format), nil
	case cfg.Path == "" || cfg.Path == "-":
		return NewWriter(os.Stderr, cfg.Level, format), nil
	}
	f, err := os.Create(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	w := NewWriter(f, cfg.Level, format)
	w.owned = f
	return w, nil
}

func formatForPath(path string) Format {
	if strings.HasSuffix(path, ".ndjson") || strings.HasSuffix(path, ".jsonl") {
		return FormatNDJSON
	}
	return FormatText
}
