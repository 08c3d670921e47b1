package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lyapunov/internal/analysis"
	"gonum.org/v1/gonum/mat"
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Red,
	asciigraph.Yellow,
	asciigraph.Green,
	asciigraph.Cyan,
	asciigraph.Blue,
	asciigraph.Magenta,
}

// Spectrum renders the exponents of res as a table followed by the
// Kaplan-Yorke dimension.
func (s Styles) Spectrum(res *analysis.Result, dimension float64) string {
	rows := make([][]string, len(res.Spectrum))
	for i, l := range res.Spectrum {
		value := "n/a"
		if !math.IsNaN(l) {
			value = fmt.Sprintf("%+.6f", l)
		}
		rows[i] = []string{fmt.Sprintf("λ%d", i+1), value, Kind(l)}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Muted).
		Headers("EXPONENT", "VALUE", "DIRECTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return cell.Inherit(s.Header.UnsetMarginBottom())
			case col == 0:
				return cell.Inherit(s.Value)
			default:
				return cell.Inherit(s.Exponent(res.Spectrum[row]))
			}
		})

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Method") + s.Value.Render(res.Method.String()) + "\n")
	b.WriteString(s.Label.Render("Windows") + s.Value.Render(fmt.Sprintf("%d", res.Completed)) + "\n")
	b.WriteString(s.Label.Render("D_KY") + s.Value.Render(fmt.Sprintf("%.4f", dimension)) + "\n")
	if res.Clamped {
		b.WriteString(s.Muted.Render("more exponents requested than state dimensions; extra entries are n/a") + "\n")
	}
	return b.String()
}

// HistoryPlot charts every live row of a convergence history (exponents ×
// windows). Rows holding NaN or ±Inf, such as clamped exponents or a
// collapsed direction, are skipped.
func HistoryPlot(history *mat.Dense, width, height int) string {
	if history == nil {
		return ""
	}
	rows, cols := history.Dims()
	if cols < 2 {
		return ""
	}

	var series [][]float64
	var colors []asciigraph.AnsiColor
	var legend []string
	for i := 0; i < rows; i++ {
		row := mat.Row(nil, i, history)
		if !finite(row) {
			continue
		}
		series = append(series, row)
		colors = append(colors, seriesColors[i%len(seriesColors)])
		legend = append(legend, fmt.Sprintf("λ%d", i+1))
	}
	if len(series) == 0 {
		return ""
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption("running estimate per window: "+strings.Join(legend, " ")),
	)
}

func finite(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// SweepPlot charts the largest exponent and the Kaplan-Yorke dimension
// against the swept parameter.
func SweepPlot(param string, points []analysis.SweepPoint, width, height int) string {
	if len(points) < 2 {
		return ""
	}

	lead := make([]float64, len(points))
	dims := make([]float64, len(points))
	for i, p := range points {
		lead[i] = p.Spectrum[0]
		dims[i] = p.Dimension
	}
	span := fmt.Sprintf("%s from %g to %g", param, points[0].Param, points[len(points)-1].Param)

	top := asciigraph.Plot(lead,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Red),
		asciigraph.Caption("λ1, "+span),
	)
	bottom := asciigraph.Plot(dims,
		asciigraph.Height(height/2+1),
		asciigraph.Width(width),
		asciigraph.SeriesColors(asciigraph.Cyan),
		asciigraph.Caption("D_KY, "+span),
	)
	return top + "\n\n" + bottom
}

// SweepTable lists one line per sweep point.
func (s Styles) SweepTable(param string, points []analysis.SweepPoint) string {
	rows := make([][]string, len(points))
	for i, p := range points {
		rows[i] = []string{
			fmt.Sprintf("%g", p.Param),
			fmt.Sprintf("%+.6f", p.Spectrum[0]),
			fmt.Sprintf("%.4f", p.Dimension),
		}
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Muted).
		Headers(strings.ToUpper(param), "λ1", "D_KY").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			cell := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return cell.Inherit(s.Header.UnsetMarginBottom())
			case col == 1:
				return cell.Inherit(s.Exponent(points[row].Spectrum[0]))
			default:
				return cell.Inherit(s.Value)
			}
		}).
		Render()
}
