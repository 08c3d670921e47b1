package viz

import (
	"errors"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/lyapunov/internal/analysis"
	"gonum.org/v1/gonum/mat"
)

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		theme, ok := GetTheme(name)
		if !ok || theme.Name != name {
			t.Errorf("GetTheme(%q) = %v, %v", name, theme.Name, ok)
		}
	}
	if theme, ok := GetTheme("neon"); ok || theme.Name != "default" {
		t.Errorf("unknown theme should fall back to default, got %q", theme.Name)
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0.9, "expanding"},
		{0.001, "neutral"},
		{-0.005, "neutral"},
		{-14.5, "contracting"},
		{math.NaN(), "clamped"},
	}
	for _, tt := range tests {
		if got := Kind(tt.v); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestSparkline(t *testing.T) {
	got := Sparkline([]float64{0, 0.5, 1}, 3)
	if got != "▁▄█" {
		t.Errorf("got %q", got)
	}
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("empty sparkline = %q", got)
	}
	if n := len([]rune(Sparkline(make([]float64, 100), 10))); n != 10 {
		t.Errorf("sparkline has %d runes, want 10", n)
	}
}

func TestSpectrum(t *testing.T) {
	s := NewStyles(ThemeMinimal)
	res := &analysis.Result{
		Spectrum:  []float64{0.9056, 0.0001, -14.5723, math.NaN()},
		Method:    analysis.FullModel,
		Clamped:   true,
		Completed: 1000,
	}

	out := s.Spectrum(res, 2.0621)
	for _, want := range []string{"λ1", "+0.905600", "expanding", "neutral", "contracting", "n/a", "full-model", "2.0621", "1000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHistoryPlot(t *testing.T) {
	if HistoryPlot(nil, 40, 5) != "" {
		t.Error("nil history should render nothing")
	}

	h := mat.NewDense(3, 20, nil)
	for j := 0; j < 20; j++ {
		h.Set(0, j, 1/float64(j+1))
		h.Set(1, j, math.NaN())
		h.Set(2, j, -1)
	}
	h.Set(2, 1, math.Inf(-1))
	out := HistoryPlot(h, 40, 5)
	if !strings.Contains(out, "λ1") || strings.Contains(out, "λ2") || strings.Contains(out, "λ3") {
		t.Errorf("unexpected legend:\n%s", out)
	}
}

func TestSweepOutput(t *testing.T) {
	points := []analysis.SweepPoint{
		{Param: 20, Spectrum: []float64{-0.2, -1}, Dimension: 0},
		{Param: 28, Spectrum: []float64{0.9, -14}, Dimension: 2.06},
	}
	if out := SweepPlot("rho", points, 30, 6); !strings.Contains(out, "rho from 20 to 28") {
		t.Errorf("missing caption:\n%s", out)
	}
	if out := SweepPlot("rho", points[:1], 30, 6); out != "" {
		t.Errorf("single point should render nothing, got %q", out)
	}

	table := NewStyles(ThemeDefault).SweepTable("rho", points)
	for _, want := range []string{"RHO", "28", "+0.900000", "2.0600"} {
		if !strings.Contains(table, want) {
			t.Errorf("table missing %q:\n%s", want, table)
		}
	}
}

func TestProgressModel(t *testing.T) {
	canceled := false
	m := NewProgressModel(NewStyles(ThemeMinimal), "lorenz", func() { canceled = true })

	for w := 1; w <= leadCapacity+10; w++ {
		next, _ := m.Update(ProgressMsg{Window: w, Total: 1000, Estimate: []float64{float64(w), -1}})
		m = next.(ProgressModel)
	}
	if len(m.lead) != leadCapacity || m.lead[leadCapacity-1] != leadCapacity+10 {
		t.Errorf("lead history len %d, last %v", len(m.lead), m.lead[len(m.lead)-1])
	}

	view := m.View()
	for _, want := range []string{"LORENZ", "250 / 1000", "λ2", "-1.000000"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(ProgressModel)
	if !canceled || !m.Canceled() || cmd == nil {
		t.Error("q should cancel the run and quit")
	}
}

func TestProgressModelDone(t *testing.T) {
	m := NewProgressModel(NewStyles(ThemeDefault), "run", nil)

	boom := errors.New("window 3 failed")
	next, cmd := m.Update(DoneMsg{Result: &analysis.Result{Completed: 2}, Err: boom})
	m = next.(ProgressModel)
	if cmd == nil {
		t.Error("DoneMsg should quit")
	}

	res, err := m.Result()
	if res.Completed != 2 || !errors.Is(err, boom) {
		t.Errorf("Result() = %+v, %v", res, err)
	}
	if !strings.Contains(m.View(), "window 3 failed") {
		t.Error("view does not show the error")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if next.(ProgressModel).Canceled() {
		t.Error("quitting after completion is not a cancellation")
	}
}
