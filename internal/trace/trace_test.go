package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, name := range []string{"off", "error", "phase", "detail", "debug"} {
		lvl, err := ParseLevel(name)
		if err != nil {
			t.Fatalf("ParseLevel(%q) error: %v", name, err)
		}
		if lvl.String() != name {
			t.Fatalf("round trip %q -> %q", name, lvl.String())
		}
	}
	if lvl, err := ParseLevel("PHASE"); err != nil || lvl != LevelPhase {
		t.Fatalf("ParseLevel is case-insensitive, got %v %v", lvl, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		kind  Kind
		scope Scope
		want  bool
	}{
		{LevelOff, KindError, ScopeDriver, false},
		{LevelError, KindError, ScopeDriver, true},
		{LevelError, KindSpanBegin, ScopeDriver, false},
		{LevelPhase, KindSpanBegin, ScopeStage, true},
		{LevelPhase, KindPoint, ScopeDetail, false},
		{LevelDetail, KindPoint, ScopeDetail, true},
		{LevelDebug, KindPoint, Scope(42), true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.kind, tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s, %s) = %v, want %v", tt.level, tt.kind, tt.scope, got, tt.want)
		}
	}
}

func TestOpenOffIsDisabled(t *testing.T) {
	tr, err := Open(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if Enabled(tr) || tr != Disabled {
		t.Fatal("LevelOff tracer must be Disabled")
	}
	// span выключенного трейсера безопасен
	sp := Begin(tr, ScopeDriver, "check", 0)
	if d := sp.End("done"); d != 0 {
		t.Fatalf("nop span duration = %v", d)
	}
}

func TestWriterText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewWriter(&buf, LevelPhase, FormatText)

	root := Begin(tr, ScopeDriver, "check", 0)
	stage := Begin(tr, ScopeStage, "tokenize", root.ID())
	Point(tr, ScopeDetail, "diagnostic", "hidden at phase level", stage.ID())
	stage.WithExtra("tokens", "12").WithExtra("errors", "0").End("")
	Error(tr, "verdict", "syntax error", root.ID())
	root.End("failed")
	if buf.Len() != 0 {
		t.Fatal("events must stay buffered until Close")
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"\u2192 check", "\u2192 tokenize", "\u2190 tokenize {errors=0, tokens=12}", "\u2716 verdict (syntax error)", "\u2190 check (failed)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("trace output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "hidden at phase level") {
		t.Fatalf("detail event leaked at phase level:\n%s", out)
	}
}

func TestWriterNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewWriter(&buf, LevelDebug, FormatNDJSON)
	Begin(tr, ScopeStage, "parse", 0).End("ok")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	var ev map[string]any
	if err := json.Unmarshal([]byte(lines[1]), &ev); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if ev["kind"] != "end" || ev["name"] != "parse" || ev["scope"] != "stage" || ev["detail"] != "ok" {
		t.Fatalf("unexpected event: %v", ev)
	}
	// нумерация своя у каждого трейсера
	if ev["seq"] != float64(2) {
		t.Fatalf("seq = %v, want 2", ev["seq"])
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWriterKeepsFirstError(t *testing.T) {
	boom := errors.New("disk full")
	tr := NewWriter(failingWriter{boom}, LevelDebug, FormatText)
	Begin(tr, ScopeStage, "parse", 0).End("ok")
	if err := tr.Close(); !errors.Is(err, boom) {
		t.Fatalf("Close = %v, want %v", err, boom)
	}
	// повторный Close возвращает ту же ошибку и не паникует
	if err := tr.Close(); !errors.Is(err, boom) {
		t.Fatalf("second Close = %v", err)
	}
}

func TestOpenAutoFormatFromExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.ndjson")
	tr, err := Open(Config{Level: LevelPhase, Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	Begin(tr, ScopeDriver, "check", 0).End("")
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("{")) {
		t.Fatalf("expected NDJSON output, got %q", data)
	}
}

func TestParseFormat(t *testing.T) {
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat(ndjson) = %v, %v", f, err)
	}
	if f, err := ParseFormat(""); err != nil || f != FormatAuto {
		t.Fatalf("ParseFormat(\"\") = %v, %v", f, err)
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Disabled {
		t.Fatal("empty context must yield Disabled")
	}
	tr := NewWriter(&bytes.Buffer{}, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	if FromContext(ctx) != Tracer(tr) {
		t.Fatal("tracer not propagated through context")
	}
	if FromContext(WithTracer(context.Background(), nil)) != Disabled {
		t.Fatal("nil tracer must not be stored")
	}
	if FromContext(WithTracer(ctx, Disabled)) != Tracer(tr) {
		t.Fatal("a disabled tracer must leave the context unchanged")
	}
}
