// Package diag defines the diagnostic model shared by the checker stages.
//
// # Purpose
//
//   - Provide deterministic data structures that capture the defects found by
//     the decode / tokenize / parse stages.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to storage or formatting.
//
// # Scope
//
// Package diag does not perform any formatting, IO or CLI integration.
// Rendering lives in internal/diagfmt; turning a diagnostic into the
// user-facing failure record is done by internal/driver.
//
// # Data model
//
// Diagnostic is the central record. It contains:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//     The thousand block of a code selects its Class: lexical, indentation,
//     grammar or encoding.
//   - Message – the text printed to the user; CPython wording where one exists.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages (e.g. “block opened here”).
//
// # Emitting diagnostics
//
// Stages use a diag.Reporter. The lexer constructs a ReportBuilder via
// ReportError and chains WithNote before calling Emit; diag.BagReporter
// collects everything into a Bag, whose First method yields the earliest error.
package diag
