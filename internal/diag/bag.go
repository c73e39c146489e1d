package diag

// Bag собирает диагностики одной проверки; всё, что сверх лимита, считается,
// но не хранится.
type Bag struct {
	items   []Diagnostic
	limit   int
	dropped int
}

// NewBag creates a bag that keeps at most limit diagnostics (at least one).
func NewBag(limit int) *Bag {
	limit = max(limit, 1)
	return &Bag{items: make([]Diagnostic, 0, min(limit, 64)), limit: limit}
}

// Add возвращает false, если лимит исчерпан и d отброшена.
func (b *Bag) Add(d Diagnostic) bool {
	if len(b.items) >= b.limit {
		b.dropped++
		return false
	}
	b.items = append(b.items, d)
	return true
}

// HasErrors reports whether any kept diagnostic fails the check.
func (b *Bag) HasErrors() bool {
	for i := range b.items {
		if b.items[i].Severity.IsError() {
			return true
		}
	}
	return false
}

func (b *Bag) Len() int { return len(b.items) }

// Dropped is the number of diagnostics rejected by the limit.
func (b *Bag) Dropped() int { return b.dropped }

// Items возвращает внутренний срез; не модифицировать.
func (b *Bag) Items() []Diagnostic { return b.items }

// First returns the earliest error by primary span, or nil when there is none.
// Ties keep insertion order.
func (b *Bag) First() *Diagnostic {
	var first *Diagnostic
	for i := range b.items {
		d := &b.items[i]
		if !d.Severity.IsError() {
			continue
		}
		if first == nil || d.Primary.Before(first.Primary) {
			first = d
		}
	}
	return first
}
