package observ

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// Phase is one measured pass.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
}

// Timer collects phases from any number of goroutines. A nil *Timer is
// valid for Track and records nothing.
type Timer struct {
	mu     sync.Mutex
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin opens a phase and returns the index End expects.
func (t *Timer) Begin(name string) int {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phases = append(t.phases, Phase{Name: name, Start: now})
	return len(t.phases) - 1
}

// End closes phase idx; unknown indexes are ignored.
func (t *Timer) End(idx int, note string) {
	now := time.Now()
	t.mu.Lock()
	defer t.mu.Unlock()
	if idx >= 0 && idx < len(t.phases) {
		p := &t.phases[idx]
		p.Dur, p.Note = now.Sub(p.Start), note
	}
}

// Track opens a phase and returns its closer:
//
//	done := timer.Track("parse")
//	defer done("")
func (t *Timer) Track(name string) func(note string) {
	if t == nil {
		return func(string) {}
	}
	idx := t.Begin(name)
	return func(note string) { t.End(idx, note) }
}

func (t *Timer) Phases() []Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.phases)
}

// PhaseReport: фаза в виде для JSON и msgpack.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"duration_ms"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report is the serializable form of a Timer. TotalMS sums the phases, so
// phases that ran in parallel count in full.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

func (t *Timer) Report() Report {
	var r Report
	var total time.Duration
	for _, p := range t.Phases() {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: ms(p.Dur), Note: p.Note})
	}
	r.TotalMS = ms(total)
	return r
}

// Summary renders Report as an aligned table for a terminal.
func (t *Timer) Summary() string {
	r := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	row := func(name string, v float64, note string) {
		fmt.Fprintf(&sb, "  %-20s %7.2f ms", name, v)
		if note != "" {
			sb.WriteString("  // " + note)
		}
		sb.WriteByte('\n')
	}
	for _, p := range r.Phases {
		row(p.Name, p.DurationMS, p.Note)
	}
	row("total", r.TotalMS, "")
	return sb.String()
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
