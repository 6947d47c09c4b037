package trace

import (
	"sync/atomic"
	"time"
)

var spanIDs atomic.Uint64

// Span is an open Begin/End pair. A span from a disabled tracer is inert and
// has ID 0.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  SpanContext
	scope   Scope
	name    string
	started time.Time
	fields  []Field
}

// Begin starts a span under parent and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent SpanContext) *Span {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
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
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent.SpanID,
		Depth:    s.depth(),
		Name:     name,
	})
	return s
}

func (s *Span) depth() int {
	if s.parent.SpanID == 0 {
		return 0
	}
	return s.parent.Depth + 1
}

// Context returns the SpanContext children of s should use.
func (s *Span) Context() SpanContext {
	if s == nil || s.id == 0 {
		return SpanContext{}
	}
	return SpanContext{SpanID: s.id, Depth: s.depth()}
}

// With annotates the end event. Returns s for chaining.
func (s *Span) With(key, value string) *Span {
	if s == nil || s.id == 0 {
		return s
	}
	s.fields = append(s.fields, Field{Key: key, Value: value})
	return s
}

// End emits the end event and returns the span duration; 0 for inert spans.
func (s *Span) End(detail string) time.Duration {
	if s == nil || s.id == 0 {
		return 0
	}
	now := time.Now()
	dur := now.Sub(s.started)
	s.tracer.Emit(&Event{
		Time:     now,
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent.SpanID,
		Depth:    s.depth(),
		Name:     s.name,
		Detail:   detail,
		Elapsed:  dur,
		Fields:   s.fields,
	})
	return dur
}

// ID returns the span ID.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}

// Point emits an instant event under parent.
func Point(t Tracer, scope Scope, name, detail string, parent SpanContext) {
	if t == nil || !t.Enabled() || !t.Level().ShouldEmit(scope) {
		return
	}
	depth := 0
	if parent.SpanID != 0 {
		depth = parent.Depth + 1
	}
	t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindPoint,
		Scope:    scope,
		SpanID:   spanIDs.Add(1),
		ParentID: parent.SpanID,
		Depth:    depth,
		Name:     name,
		Detail:   detail,
	})
}
