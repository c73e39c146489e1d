package trace

import "context"

type tracerKey struct{}

// WithTracer returns ctx carrying t. A disabled or nil tracer leaves ctx
// unchanged.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if !Enabled(t) {
		return ctx
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer attached by WithTracer, or Disabled.
func FromContext(ctx context.Context) Tracer {
	if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
		return t
	}
	return Disabled
}
