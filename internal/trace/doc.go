// Package trace provides stage tracing for pycheck.
//
// A check runs a fixed sequence of stages (load, decode, tokenize, parse,
// classify). The trace package records when each stage starts and ends so a
// slow or surprising verdict can be explained after the fact.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	pycheck --trace=- --trace-level=phase script.py
//
// # Tracers
//
//   - Disabled: drops everything; what FromContext returns by default
//   - Writer: buffered text or NDJSON to a file or stderr, flushed on Close
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: only the failure verdict
//   - LevelPhase: the check and its stages
//   - LevelDetail: plus per-stage findings (every diagnostic, not just the first)
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopeStage, "tokenize", parentID)
//	defer span.End("")
package trace
