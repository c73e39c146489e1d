package trace

import (
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span is an open begin/end pair. A disabled span is still safe to use:
// every method is a no-op on it.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

func emits(t Tracer, kind Kind, scope Scope) bool {
	return Enabled(t) && t.Level().ShouldEmit(kind, scope)
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !emits(t, KindSpanBegin, scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(s.event(KindSpanBegin, s.started, ""))
	return s
}

func (s *Span) event(kind Kind, at time.Time, detail string) *Event {
	return &Event{
		Time:     at,
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
	}
}

// End closes the span with an optional detail and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.tracer == nil {
		return 0
	}
	now := time.Now()
	ev := s.event(KindSpanEnd, now, detail)
	ev.Elapsed = now.Sub(s.started)
	ev.Extra = s.extra
	s.tracer.Emit(ev)
	return ev.Elapsed
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if s == nil || s.tracer == nil {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 1)
	}
	s.extra[key] = value
	return s
}

// ID is 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if !emits(t, KindPoint, scope) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: scope, ParentID: parent, Name: name, Detail: detail})
}

// Error emits the failure verdict; it passes every level except off.
func Error(t Tracer, name, detail string, parent uint64) {
	if !emits(t, KindError, ScopeDriver) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: KindError, Scope: ScopeDriver, ParentID: parent, Name: name, Detail: detail})
}
