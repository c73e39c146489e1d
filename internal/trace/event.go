package trace

import "time"

// Kind различает события трассы.
type Kind uint8

const (
	KindSpanBegin Kind = iota + 1
	KindSpanEnd
	KindPoint
	KindError // вердикт проверки
)

var kindNames = [...]string{
	KindSpanBegin: "begin",
	KindSpanEnd:   "end",
	KindPoint:     "point",
	KindError:     "error",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; smaller is coarser.
type Scope uint8

const (
	ScopeDriver Scope = iota + 1 // проверка одного файла целиком
	ScopeStage                   // load, decode, tokenize, parse, classify
	ScopeDetail                  // отдельная находка внутри стадии
)

var scopeNames = [...]string{
	ScopeDriver: "driver",
	ScopeStage:  "stage",
	ScopeDetail: "detail",
}

func (s Scope) String() string {
	if s > 0 && int(s) < len(scopeNames) {
		return scopeNames[s]
	}
	return "unknown"
}

// Event is one trace record. Seq is assigned by the tracer that writes it.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64 // 0 для корня
	Name     string
	Detail   string
	Elapsed  time.Duration // только для KindSpanEnd
	Extra    map[string]string
}
