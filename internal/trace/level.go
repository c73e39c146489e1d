package trace

import (
	"fmt"
	"strings"
)

// Level задаёт подробность трассировки одной проверки.
type Level uint8

const (
	LevelOff    Level = iota // трассировка выключена
	LevelError               // только вердикт
	LevelPhase               // check и границы стадий
	LevelDetail              // находки внутри стадий
	LevelDebug               // всё подряд
)

var levelNames = [...]string{
	LevelOff:    "off",
	LevelError:  "error",
	LevelPhase:  "phase",
	LevelDetail: "detail",
	LevelDebug:  "debug",
}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel accepts a level name in any case.
func ParseLevel(s string) (Level, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil // #nosec G115 -- i < len(levelNames)
		}
	}
	return LevelOff, fmt.Errorf("unknown level %q (want %s)", s, strings.Join(levelNames[:], ", "))
}

// ShouldEmit reports whether an event of kind and scope passes l.
// Ошибки проходят на любом уровне, кроме off.
func (l Level) ShouldEmit(kind Kind, scope Scope) bool {
	switch {
	case l == LevelOff:
		return false
	case kind == KindError:
		return true
	case l >= LevelDebug:
		return true
	case l == LevelDetail:
		return scope <= ScopeDetail
	case l == LevelPhase:
		return scope <= ScopeStage
	default:
		return false
	}
}
