package diag

import "pycheck/internal/source"

// Reporter - минимальный контракт получения диагностик от стадий.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReportBuilder collects notes for one diagnostic before Emit.
type ReportBuilder struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// ReportError starts an error diagnostic bound to r.
func ReportError(r Reporter, code Code, primary source.Span, msg string) *ReportBuilder {
	return &ReportBuilder{reporter: r, diag: NewError(code, primary, msg)}
}

// WithNote добавляет вторичный span, например «скобка открыта здесь».
func (b *ReportBuilder) WithNote(sp source.Span, msg string) *ReportBuilder {
	if b != nil {
		b.diag = b.diag.WithNote(sp, msg)
	}
	return b
}

// Emit hands the diagnostic to the reporter; repeated calls do nothing.
func (b *ReportBuilder) Emit() {
	if b == nil || b.emitted {
		return
	}
	b.emitted = true
	if b.reporter != nil {
		d := b.diag
		b.reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes)
	}
}

// BagReporter пишет в *Bag; nil Bag молча всё отбрасывает.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag != nil {
		r.Bag.Add(Diagnostic{Severity: sev, Code: code, Message: msg, Primary: primary, Notes: notes})
	}
}
