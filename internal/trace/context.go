package trace

import "context"

type ctxKey struct{}

// FromContext extracts the Tracer from context, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx == nil {
		return Nop
	}
	if t, ok := ctx.Value(ctxKey{}).(Tracer); ok {
		return t
	}
	return Nop
}

// WithTracer attaches a Tracer to context.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, t)
}

// SpanContext identifies the enclosing span. The zero value means "root".
type SpanContext struct {
	SpanID uint64
	Depth  int
}

type spanCtxKey struct{}

// CurrentSpan returns the span stored by StartSpan, or the zero SpanContext.
func CurrentSpan(ctx context.Context) SpanContext {
	if ctx == nil {
		return SpanContext{}
	}
	sc, _ := ctx.Value(spanCtxKey{}).(SpanContext)
	return sc
}

// StartSpan begins a span under the span stored in ctx and returns a context
// carrying the new span. Inert spans leave ctx unchanged.
func StartSpan(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	sp := Begin(FromContext(ctx), scope, name, CurrentSpan(ctx))
	if sp.ID() == 0 {
		return sp, ctx
	}
	return sp, context.WithValue(ctx, spanCtxKey{}, sp.Context())
}
