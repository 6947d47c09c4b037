package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"grammarsmith/internal/driver"
)

// rowState is the display state of one file in the check list.
type rowState uint8

const (
	rowQueued rowState = iota
	rowRunning
	rowOK
	rowFailed
)

func (s rowState) terminal() bool { return s == rowOK || s == rowFailed }

// stageWeight is the share of a file counted as finished once it enters the
// stage.
var stageWeight = map[driver.Stage]float64{
	driver.StageLoad:  0.05,
	driver.StageLex:   0.2,
	driver.StageParse: 0.5,
	driver.StageEval:  0.8,
}

var stageVerb = map[driver.Stage]string{
	driver.StageLoad:  "loading",
	driver.StageLex:   "lexing",
	driver.StageParse: "parsing",
	driver.StageEval:  "evaluating",
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	stateStyles  = [...]lipgloss.Style{
		rowQueued:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		rowRunning: lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		rowOK:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		rowFailed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	}
)

type row struct {
	name    string
	state   rowState
	stage   driver.Stage
	elapsed time.Duration
}

// label is the text in the status column.
func (r *row) label() string {
	switch r.state {
	case rowOK:
		return "done"
	case rowFailed:
		return "error"
	case rowRunning:
		return stageVerb[r.stage]
	}
	return "queued"
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spin    spinner.Model
	bar     progress.Model
	rows    []row
	byPath  map[string]int
	phase   string
	width   int
	done    bool
	settled int
	failed  int
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel builds the Bubble Tea model behind `check --ui`. Files are
// listed relative to baseDir when they live under it; the model quits once
// events is closed.
func NewProgressModel(title, baseDir string, files []string, events <-chan driver.Event) tea.Model {
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = stateStyles[rowRunning]

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	m := &progressModel{
		title:  title,
		events: events,
		spin:   spin,
		bar:    bar,
		rows:   make([]row, len(files)),
		byPath: make(map[string]int, len(files)),
		width:  80,
	}
	for i, path := range files {
		m.rows[i] = row{name: relativeTo(baseDir, path)}
		m.byPath[path] = i
	}
	return m
}

func relativeTo(base, path string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.next())
}

// next blocks on the event channel; a closed channel ends the program.
func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		if ev, ok := <-m.events; ok {
			return eventMsg(ev)
		}
		return doneMsg{}
	}
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
	case progress.FrameMsg:
		updated, cmd := m.bar.Update(msg)
		m.bar = updated.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		// событие уровня всего прогона
		if ev.Status == driver.StatusWorking {
			m.phase = stageVerb[ev.Stage]
		}
		return nil
	}
	i, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	r := &m.rows[i]
	if ev.Elapsed > 0 {
		r.elapsed = ev.Elapsed
	}
	if r.state.terminal() {
		return nil
	}
	switch ev.Status {
	case driver.StatusWorking:
		r.state, r.stage = rowRunning, ev.Stage
	case driver.StatusDone:
		r.state = rowOK
		m.settled++
	case driver.StatusError:
		r.state = rowFailed
		m.settled++
		m.failed++
	default:
		return nil
	}
	return m.bar.SetPercent(m.fraction())
}

// fraction is the overall completion in [0, 1].
func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 1
	}
	var sum float64
	for i := range m.rows {
		if m.rows[i].state.terminal() {
			sum++
		} else {
			sum += stageWeight[m.rows[i].stage]
		}
	}
	return sum / float64(len(m.rows))
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(m.header()))
	b.WriteString("\n\n")
	m.writeRows(&b)
	b.WriteByte('\n')
	if m.done {
		b.WriteString(m.bar.ViewAs(1))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteByte('\n')
	return b.String()
}

func (m *progressModel) header() string {
	title := m.title
	if m.phase != "" {
		title += " (" + m.phase + ")"
	}
	counts := fmt.Sprintf("%d/%d", m.settled, len(m.rows))
	if m.failed > 0 {
		counts += fmt.Sprintf(", %d with errors", m.failed)
	}
	line := title + " [" + counts + "]"
	if m.done {
		return "done: " + line
	}
	return m.spin.View() + " " + line
}

func (m *progressModel) writeRows(b *strings.Builder) {
	const stateCol, timeCol = 12, 10
	nameCol := max(m.width-stateCol-timeCol-6, 20)
	for i := range m.rows {
		r := &m.rows[i]
		name := clip(r.name, nameCol)
		fmt.Fprintf(b, "  %s %s", stateStyles[r.state].Render(fmt.Sprintf("%*s", stateCol, r.label())), name)
		if r.elapsed > 0 {
			b.WriteString(strings.Repeat(" ", max(nameCol-runewidth.StringWidth(name), 0)+1))
			b.WriteString(elapsedStyle.Render(fmt.Sprintf("%*s", timeCol, r.elapsed.Round(time.Microsecond))))
		}
		b.WriteByte('\n')
	}
}

// clip shortens s to width display cells, marking the cut with "...".
func clip(s string, width int) string {
	switch {
	case width <= 0 || runewidth.StringWidth(s) <= width:
		return s
	case width <= 3:
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width-3, "...")
}
