package observ

import (
	"fmt"
	"strings"
	"time"
)

// Stage records the duration and outcome of one check stage.
type Stage struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer tracks the execution time of the stages of a check.
type Timer struct {
	stages []Stage
}

// NewTimer creates a new empty Timer.
func NewTimer() *Timer { return &Timer{stages: make([]Stage, 0, 5)} }

// Begin starts a new stage and returns its index. A nil Timer ignores calls.
func (t *Timer) Begin(name string) int {
	if t == nil {
		return -1
	}
	t.stages = append(t.stages, Stage{Name: name, Start: time.Now()})
	return len(t.stages) - 1
}

// End finishes a stage by its index.
func (t *Timer) End(idx int, note string) {
	if t == nil || idx < 0 || idx >= len(t.stages) {
		return
	}
	s := &t.stages[idx]
	s.Dur = time.Since(s.Start)
	s.Note = note
}

// Summary returns a human-readable table of all tracked stages.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, s := range report.Stages {
		fmt.Fprintf(&sb, "  %-10s %8.3f ms", s.Name, s.DurationMS)
		if s.Note != "" {
			sb.WriteString("  // " + s.Note)
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "  %-10s %8.3f ms\n", "total", report.TotalMS)
	return sb.String()
}

// StageReport представляет сжатую информацию о стадии для сериализации.
type StageReport struct {
	Name       string  `json:"name"`
	DurationMS float64 `json:"duration_ms"`
	Note       string  `json:"note,omitempty"`
}

// Report описывает агрегированные данные таймера.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Stages  []StageReport `json:"stages"`
}

// Report формирует срез стадий и общую длительность в миллисекундах.
func (t *Timer) Report() Report {
	if t == nil || len(t.stages) == 0 {
		return Report{}
	}
	report := Report{
		Stages: make([]StageReport, len(t.stages)),
	}
	var total time.Duration
	for i, stage := range t.stages {
		total += stage.Dur
		report.Stages[i] = StageReport{
			Name:       stage.Name,
			DurationMS: durationToMillis(stage.Dur),
			Note:       stage.Note,
		}
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
