package viz

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lyapunov/internal/analysis"
)

const (
	leadCapacity = 240
	tickInterval = 100 * time.Millisecond
	sendInterval = 50 * time.Millisecond
)

// ProgressMsg carries the running estimate after a window.
type ProgressMsg struct {
	Window   int
	Total    int
	Estimate []float64
}

// DoneMsg ends the progress view.
type DoneMsg struct {
	Result *analysis.Result
	Err    error
}

type TickMsg time.Time

// ProgressModel is a Bubble Tea model that follows an estimation run.
type ProgressModel struct {
	styles   Styles
	title    string
	cancel   context.CancelFunc
	started  time.Time
	window   int
	total    int
	estimate []float64
	lead     []float64
	frame    int
	done     bool
	canceled bool
	result   *analysis.Result
	err      error
}

// NewProgressModel returns a view titled title. cancel is called when the
// user quits before the run finishes; it may be nil.
func NewProgressModel(styles Styles, title string, cancel context.CancelFunc) ProgressModel {
	return ProgressModel{
		styles:  styles,
		title:   title,
		cancel:  cancel,
		started: time.Now(),
		lead:    make([]float64, 0, leadCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m ProgressModel) Init() tea.Cmd {
	return tick()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if !m.done && m.cancel != nil {
				m.cancel()
			}
			m.canceled = !m.done
			return m, tea.Quit
		}
	case ProgressMsg:
		m.window, m.total = msg.Window, msg.Total
		m.estimate = msg.Estimate
		if len(msg.Estimate) > 0 {
			if len(m.lead) == leadCapacity {
				m.lead = append(m.lead[:0], m.lead[1:]...)
			}
			m.lead = append(m.lead, msg.Estimate[0])
		}
	case DoneMsg:
		m.done = true
		m.result, m.err = msg.Result, msg.Err
		return m, tea.Quit
	case TickMsg:
		m.frame++
		return m, tick()
	}
	return m, nil
}

func (m ProgressModel) View() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Header.Render(strings.ToUpper(m.title)) + "\n")

	fraction := 0.0
	if m.total > 0 {
		fraction = float64(m.window) / float64(m.total)
	}
	status := Spinner(m.frame)
	switch {
	case m.err != nil:
		status = s.Chaotic.Render("failed")
	case m.done:
		status = s.Stable.Render("done")
	case m.canceled:
		status = s.Neutral.Render("canceled")
	}
	b.WriteString(fmt.Sprintf("%s %s %5.1f%%\n\n", status, s.ProgressBar(fraction, 40), 100*fraction))

	b.WriteString(s.Label.Render("Window") + s.Value.Render(fmt.Sprintf("%d / %d", m.window, m.total)) + "\n")
	b.WriteString(s.Label.Render("Elapsed") + s.Value.Render(time.Since(m.started).Round(time.Second).String()) + "\n")
	for i, l := range m.estimate {
		b.WriteString(s.Label.Render(fmt.Sprintf("λ%d", i+1)) + s.Exponent(l).Render(fmt.Sprintf("%+.6f", l)) + "\n")
	}

	if len(m.lead) > 1 {
		chart := asciigraph.Plot(m.lead, asciigraph.Height(6), asciigraph.Width(50), asciigraph.Caption("λ1"))
		b.WriteString(s.Graph.Render(chart) + "\n")
	}
	if m.err != nil {
		b.WriteString(s.Chaotic.Render(m.err.Error()) + "\n")
	}
	b.WriteString(s.Muted.Render("q: cancel") + "\n")
	return b.String()
}

// Result returns what DoneMsg delivered.
func (m ProgressModel) Result() (*analysis.Result, error) {
	return m.result, m.err
}

// Canceled reports whether the user quit before the run finished.
func (m ProgressModel) Canceled() bool { return m.canceled }

// ProgramSink forwards estimator progress to a running program, at most
// once per sendInterval apart from the final window.
type ProgramSink struct {
	p *tea.Program

	mu   sync.Mutex
	last time.Time
}

func NewProgramSink(p *tea.Program) *ProgramSink {
	return &ProgramSink{p: p}
}

func (s *ProgramSink) Advance(window, total int, estimate []float64) {
	s.mu.Lock()
	now := time.Now()
	if window != total && now.Sub(s.last) < sendInterval {
		s.mu.Unlock()
		return
	}
	s.last = now
	s.mu.Unlock()

	s.p.Send(ProgressMsg{Window: window, Total: total, Estimate: estimate})
}
