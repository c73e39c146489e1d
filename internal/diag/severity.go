package diag

// Severity ранжирует диагностики; к вердикту приводят только ошибки.
type Severity uint8

const (
	SevInfo    Severity = iota // пояснение без влияния на результат
	SevWarning                 // то, что CPython выдал бы как SyntaxWarning
	SevError
)

// IsError reports whether a diagnostic of this severity fails the check.
func (s Severity) IsError() bool { return s >= SevError }

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}
