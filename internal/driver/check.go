package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"

	"pycheck/internal/diag"
	"pycheck/internal/lexer"
	"pycheck/internal/observ"
	"pycheck/internal/parser"
	"pycheck/internal/source"
	"pycheck/internal/token"
	"pycheck/internal/trace"
)

// Parser is the grammar collaborator: it reports the earliest defect of a
// decoded file, or nil when the file parses. tokens is the tokenizer's full
// stream for file, EOF included; backends that lex on their own may ignore it.
type Parser interface {
	Check(file *source.File, tokens []token.Token) (*diag.Diagnostic, error)
}

// Options carries CLI settings into Check.
type Options struct {
	// Parser defaults to the native grammar (parser.NewGrammar).
	Parser Parser
	// Timer, when set, records per-stage durations.
	Timer *observ.Timer
	// MaxDiagnostics caps the tokenizer's diagnostic bag; 0 means 64.
	MaxDiagnostics int
}

const defaultMaxDiagnostics = 64

// Check loads path and decides whether it parses as Python. Findings are
// reported through the returned CheckResult; the error is reserved for
// faults outside the check itself (unreadable file, broken grammar).
func Check(ctx context.Context, path string, opts Options) (result *CheckResult, err error) {
	tracer := trace.FromContext(ctx)
	root := trace.Begin(tracer, trace.ScopeDriver, "check", 0).WithExtra("path", path)
	defer func() {
		root.End(verdict(result, err))
	}()

	grammar := opts.Parser
	if grammar == nil {
		grammar = parser.NewGrammar(parser.Options{})
	}

	// load
	st := beginStage(tracer, opts.Timer, "load", root.ID())
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		st.end("read failed")
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	st.end(strconv.Itoa(len(raw)) + " bytes")

	// decode
	st = beginStage(tracer, opts.Timer, "decode", root.ID())
	fs := source.NewFileSet()
	fileID, err := fs.LoadBytes(path, raw)
	if err != nil {
		var decErr *source.DecodeError
		if !errors.As(err, &decErr) {
			st.end("failed")
			return nil, fmt.Errorf("failed to decode %s: %w", path, err)
		}
		st.end(decErr.Msg)
		failure := genericFailure(decErr)
		trace.Error(tracer, "verdict", failure.Kind.String()+": "+failure.Message, root.ID())
		return &CheckResult{Path: path, Failure: failure}, nil
	}
	file := fs.Get(fileID)
	st.end(file.Encoding)

	// tokenize
	st = beginStage(tracer, opts.Timer, "tokenize", root.ID())
	tokens, lexDefect := tokenize(tracer, file, opts.maxDiagnostics(), st.id())
	st.end(describe(lexDefect))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// parse
	st = beginStage(tracer, opts.Timer, "parse", root.ID())
	synDefect, err := grammar.Check(file, tokens)
	if err != nil {
		st.end("failed")
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	st.end(describe(synDefect))

	// classify
	st = beginStage(tracer, opts.Timer, "classify", root.ID())
	result = &CheckResult{Path: file.Path}
	if winner := earliest(file, lexDefect, synDefect); winner != nil {
		result.Failure = failureFrom(file, winner)
		trace.Error(tracer, "verdict", result.Failure.Kind.String()+": "+result.Failure.Message, root.ID())
	}
	st.end(verdict(result, nil))
	return result, nil
}

// tokenize runs the tokenizer to EOF and returns the stream with its
// earliest finding.
func tokenize(tracer trace.Tracer, file *source.File, maxDiagnostics int, parent uint64) ([]token.Token, *diag.Diagnostic) {
	bag := diag.NewBag(maxDiagnostics)
	tokens := lexer.Tokenize(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	if tracer.Level() >= trace.LevelDetail {
		trace.Point(tracer, trace.ScopeDetail, "tokens", strconv.Itoa(countSignificant(tokens)), parent)
		for _, d := range bag.Items() {
			pos := file.Position(d.Primary.Start)
			trace.Point(tracer, trace.ScopeDetail, d.Code.ID(), fmt.Sprintf("%d:%d %s", pos.Line, pos.Col, d.Message), parent)
		}
		if n := bag.Dropped(); n > 0 {
			trace.Point(tracer, trace.ScopeDetail, "dropped", strconv.Itoa(n), parent)
		}
	}
	return tokens, bag.First()
}

func countSignificant(tokens []token.Token) int {
	n := 0
	for _, tok := range tokens {
		if !tok.IsStructural() {
			n++
		}
	}
	return n
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return defaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

type stage struct {
	span  *trace.Span
	timer *observ.Timer
	idx   int
}

func beginStage(tracer trace.Tracer, timer *observ.Timer, name string, parent uint64) stage {
	return stage{
		span:  trace.Begin(tracer, trace.ScopeStage, name, parent),
		timer: timer,
		idx:   timer.Begin(name),
	}
}

func (s stage) end(note string) {
	s.span.End(note)
	s.timer.End(s.idx, note)
}

func (s stage) id() uint64 { return s.span.ID() }

func describe(d *diag.Diagnostic) string {
	if d == nil {
		return "clean"
	}
	return d.Code.ID()
}

func verdict(result *CheckResult, err error) string {
	switch {
	case err != nil:
		return "fault: " + err.Error()
	case result == nil:
		return ""
	case result.OK():
		return "ok"
	default:
		return result.Failure.Kind.String()
	}
}
