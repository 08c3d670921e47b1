// Package viz renders estimation results and progress in the terminal.
//
//   - [Styles]: lipgloss styles built from a [Theme], with exponents coloured
//     by sign
//   - [Styles.Spectrum]: exponent table with the Kaplan-Yorke dimension
//   - [HistoryPlot], [SweepPlot]: asciigraph charts of the running estimate
//     and of a parameter sweep
//   - [ProgressModel]: Bubble Tea view fed by [ProgramSink] while an
//     estimation runs
//
// # Key Bindings
//
//	q, Ctrl+C - cancel the run and quit
package viz
