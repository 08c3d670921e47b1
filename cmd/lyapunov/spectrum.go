package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/san-kum/lyapunov/internal/analysis"
	"github.com/san-kum/lyapunov/internal/config"
	"github.com/san-kum/lyapunov/internal/integrators"
	"github.com/san-kum/lyapunov/internal/physics"
	"github.com/san-kum/lyapunov/internal/sim"
	"github.com/san-kum/lyapunov/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"
)

var (
	spectrumParams []string
	withHistory    bool
	plotHistory    bool
	jsonOut        bool
	tuiMode        bool
	plotWidth      int
	plotHeight     int
)

func newSpectrumCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spectrum [model]",
		Short: "estimate the lyapunov spectrum of a model",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSpectrum,
	}
	addRunFlags(cmd)
	cmd.Flags().StringArrayVarP(&spectrumParams, "param", "p", nil, "model parameter name=value (repeatable)")
	cmd.Flags().BoolVar(&withHistory, "history", false, "record the running estimate after every window")
	cmd.Flags().BoolVar(&plotHistory, "plot", false, "plot the convergence history")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	cmd.Flags().BoolVar(&tuiMode, "tui", false, "show a live progress view")
	cmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")
	cmd.MarkFlagsMutuallyExclusive("json", "tui")
	return cmd
}

// runner is a configured model ready for estimation.
type runner struct {
	cfg    *config.Config
	flow   *sim.Flow
	x0     []float64
	est    analysis.Config
	id     uuid.UUID
	logger *slog.Logger
}

func newRunner(cfg *config.Config) (*runner, error) {
	model, err := physics.New(cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, physics.Names())
	}
	stepper, err := integrators.New(cfg.Integrator)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, integrators.Names())
	}
	x0, err := cfg.InitialState(model.DefaultState())
	if err != nil {
		return nil, err
	}
	est, err := cfg.ToAnalysis()
	if err != nil {
		return nil, err
	}

	simCfg := sim.DefaultConfig()
	simCfg.Adaptive = cfg.Adaptive
	if cfg.Tolerance > 0 {
		simCfg.Tolerance = cfg.Tolerance
	}

	id := uuid.New()
	return &runner{
		cfg:    cfg,
		flow:   sim.New(model, stepper, simCfg),
		x0:     x0,
		est:    est,
		id:     id,
		logger: slog.Default().With("run", id.String(), "model", cfg.Model),
	}, nil
}

func (r *runner) options() []analysis.Option {
	opts := []analysis.Option{
		analysis.WithJacobian(r.flow),
		analysis.WithParams(r.cfg.Params),
		analysis.WithLogger(r.logger),
		analysis.WithWorkers(r.cfg.Workers),
	}
	if r.cfg.Seed != 0 {
		opts = append(opts, analysis.WithSeed(r.cfg.Seed))
	}
	return opts
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args, spectrumParams)
	if err != nil {
		return err
	}
	r, err := newRunner(cfg)
	if err != nil {
		return err
	}
	if withHistory || plotHistory {
		r.est.History = true
	}

	r.logger.Info("estimating spectrum",
		"method", r.est.Method(),
		"exponents", r.est.Exponents,
		"windows", r.est.Windows,
		"window", r.est.Window,
	)

	start := time.Now()
	var res *analysis.Result
	if tuiMode {
		res, err = r.estimateWithTUI(cmd.Context())
	} else {
		res, err = analysis.Estimate(cmd.Context(), r.flow, r.x0, r.est, r.options()...)
	}
	elapsed := time.Since(start)
	if err != nil {
		if res == nil || res.Spectrum == nil {
			return err
		}
		r.logger.Warn("estimation stopped early, reporting completed windows",
			"completed", res.Completed, "of", r.est.Windows, "err", err)
		return errors.Join(err, r.report(cmd.OutOrStdout(), res, elapsed, jsonOut))
	}

	r.logger.Info("estimation finished", "elapsed", elapsed.Round(time.Millisecond))
	return r.report(cmd.OutOrStdout(), res, elapsed, jsonOut)
}

// report prints a finished or partial result.
func (r *runner) report(out io.Writer, res *analysis.Result, elapsed time.Duration, asJSON bool) error {
	dimension := analysis.KaplanYorke(res.Spectrum, false)
	if asJSON {
		return writeJSON(out, newSpectrumReport(r, res, dimension, elapsed))
	}

	styles := currentStyles()
	header := r.cfg.Model + "  " + formatParams(r.cfg.Params)
	if res.Completed < r.est.Windows {
		header += fmt.Sprintf("  (stopped after %d of %d windows)", res.Completed, r.est.Windows)
	}
	fmt.Fprintln(out, styles.Header.Render(header))
	fmt.Fprint(out, styles.Spectrum(res, dimension))
	if plotHistory && res.Completed > 0 {
		fmt.Fprintln(out, styles.Graph.Render(viz.HistoryPlot(completedHistory(res), plotWidth, plotHeight)))
	}
	return nil
}

// completedHistory drops the columns of windows that never ran.
func completedHistory(res *analysis.Result) *mat.Dense {
	if !res.HasHistory() {
		return nil
	}
	rows, cols := res.History.Dims()
	if res.Completed >= cols || res.Completed == 0 {
		return res.History
	}
	return res.History.Slice(0, rows, 0, res.Completed).(*mat.Dense)
}

// estimateWithTUI runs the estimator behind a Bubble Tea progress view.
// Quitting the view cancels the run; the estimator's own result, partial or
// not, is returned either way.
func (r *runner) estimateWithTUI(ctx context.Context) (*analysis.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	title := fmt.Sprintf("%s (%s)", r.cfg.Model, r.est.Method())
	p := tea.NewProgram(viz.NewProgressModel(currentStyles(), title, cancel), tea.WithOutput(os.Stderr))

	type outcome struct {
		res *analysis.Result
		err error
	}
	done := make(chan outcome, 1)

	est := r.est
	est.Verbose = true
	opts := append(r.options(), analysis.WithProgress(viz.NewProgramSink(p)))
	go func() {
		res, err := analysis.Estimate(ctx, r.flow, r.x0, est, opts...)
		done <- outcome{res, err}
		p.Send(viz.DoneMsg{Result: res, Err: err})
	}()

	final, runErr := p.Run()
	cancel()
	o := <-done
	if runErr != nil {
		return o.res, runErr
	}
	if m, ok := final.(viz.ProgressModel); ok && m.Canceled() {
		r.logger.Info("run canceled from the progress view")
	}
	return o.res, o.err
}

type spectrumReport struct {
	RunID     string             `json:"run_id"`
	Model     string             `json:"model"`
	Params    map[string]float64 `json:"params,omitempty"`
	Method    string             `json:"method"`
	Spectrum  []*float64         `json:"spectrum"`
	Dimension float64            `json:"kaplan_yorke_dimension"`
	Windows   int                `json:"windows"`
	Clamped   bool               `json:"clamped"`
	Elapsed   float64            `json:"elapsed_seconds"`
	History   [][]*float64       `json:"history,omitempty"`
}

func newSpectrumReport(r *runner, res *analysis.Result, dimension float64, elapsed time.Duration) spectrumReport {
	rep := spectrumReport{
		RunID:     r.id.String(),
		Model:     r.cfg.Model,
		Params:    r.cfg.Params,
		Method:    res.Method.String(),
		Spectrum:  nullable(res.Spectrum),
		Dimension: dimension,
		Windows:   res.Completed,
		Clamped:   res.Clamped,
		Elapsed:   elapsed.Seconds(),
	}
	if history := completedHistory(res); history != nil {
		rows, _ := history.Dims()
		rep.History = make([][]*float64, rows)
		for i := range rep.History {
			rep.History[i] = nullable(mat.Row(nil, i, history))
		}
	}
	return rep
}

// nullable maps NaN and ±Inf, which JSON cannot encode, to null.
func nullable(xs []float64) []*float64 {
	out := make([]*float64, len(xs))
	for i := range xs {
		if !math.IsNaN(xs[i]) && !math.IsInf(xs[i], 0) {
			out[i] = &xs[i]
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
