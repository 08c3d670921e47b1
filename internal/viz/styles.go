package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ZeroBand is the magnitude below which an exponent is shown as neutral.
const ZeroBand = 1e-2

// Styles is the set of lipgloss styles used by every renderer in the package.
type Styles struct {
	Header  lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Muted   lipgloss.Style
	Graph   lipgloss.Style
	Panel   lipgloss.Style
	Chaotic lipgloss.Style
	Neutral lipgloss.Style
	Stable  lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Header: lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		Label:  lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		Value:  lipgloss.NewStyle().Foreground(t.Text),
		Muted:  lipgloss.NewStyle().Foreground(t.Muted),
		Graph:  lipgloss.NewStyle().Foreground(t.Primary).Padding(1, 0),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(1, 2),
		Chaotic: lipgloss.NewStyle().Foreground(t.Chaotic).Bold(true),
		Neutral: lipgloss.NewStyle().Foreground(t.Neutral),
		Stable:  lipgloss.NewStyle().Foreground(t.Stable),
	}
}

// Exponent picks the style for an exponent by its sign.
func (s Styles) Exponent(v float64) lipgloss.Style {
	switch {
	case math.IsNaN(v):
		return s.Muted
	case v > ZeroBand:
		return s.Chaotic
	case v < -ZeroBand:
		return s.Stable
	default:
		return s.Neutral
	}
}

// Kind names the behaviour an exponent indicates along its direction.
func Kind(v float64) string {
	switch {
	case math.IsNaN(v):
		return "clamped"
	case v > ZeroBand:
		return "expanding"
	case v < -ZeroBand:
		return "contracting"
	default:
		return "neutral"
	}
}

// Spinner returns one frame of a braille spinner.
func Spinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders fraction (0..1) as a bar of the given width.
func (s Styles) ProgressBar(fraction float64, width int) string {
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.Value.Render(strings.Repeat("█", filled)) + s.Muted.Render(strings.Repeat("░", width-filled))
}

// Sparkline renders values as a one-line chart at most width runes wide.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var b strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / span
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		b.WriteRune(chars[idx])
	}
	return b.String()
}
