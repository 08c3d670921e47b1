package main

import (
	"fmt"
	"time"

	"github.com/san-kum/lyapunov/internal/analysis"
	"github.com/san-kum/lyapunov/internal/dynamo"
	"github.com/san-kum/lyapunov/internal/viz"
	"github.com/spf13/cobra"
)

var (
	sweepParam  string
	sweepFrom   float64
	sweepTo     float64
	sweepSteps  int
	sweepFixed  []string
	sweepJSON   bool
	sweepNoPlot bool
)

func newSweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "largest exponent and Kaplan-Yorke dimension across a parameter range",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(cmd)
	cmd.Flags().StringVar(&sweepParam, "param", "rho", "parameter to sweep")
	cmd.Flags().Float64Var(&sweepFrom, "from", 20, "first parameter value")
	cmd.Flags().Float64Var(&sweepTo, "to", 30, "last parameter value")
	cmd.Flags().IntVar(&sweepSteps, "steps", 11, "number of parameter values")
	cmd.Flags().StringArrayVar(&sweepFixed, "set", nil, "fixed model parameter name=value (repeatable)")
	cmd.Flags().BoolVar(&sweepJSON, "json", false, "print the points as JSON")
	cmd.Flags().BoolVar(&sweepNoPlot, "no-plot", false, "print the table only")
	cmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")
	cmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")
	return cmd
}

func runSweep(cmd *cobra.Command, args []string) error {
	if sweepSteps < 1 {
		return fmt.Errorf("--steps must be at least 1, got %d", sweepSteps)
	}
	cfg, err := resolveConfig(cmd, args, sweepFixed)
	if err != nil {
		return err
	}
	r, err := newRunner(cfg)
	if err != nil {
		return err
	}
	if tunable, ok := r.flow.System().(dynamo.Configurable); ok {
		if _, known := tunable.GetParams()[sweepParam]; !known {
			return fmt.Errorf("model %s has no parameter %q", cfg.Model, sweepParam)
		}
	}

	values := analysis.Linspace(sweepFrom, sweepTo, sweepSteps)
	r.logger.Info("sweeping", "param", sweepParam, "from", sweepFrom, "to", sweepTo, "points", len(values))

	start := time.Now()
	points, err := analysis.Sweep(cmd.Context(), r.flow, r.x0, r.est, sweepParam, values, r.options()...)
	if err != nil {
		return err
	}
	r.logger.Info("sweep finished", "elapsed", time.Since(start).Round(time.Millisecond))

	out := cmd.OutOrStdout()
	if sweepJSON {
		return writeJSON(out, newSweepReport(r, points))
	}

	styles := currentStyles()
	fmt.Fprintln(out, styles.SweepTable(sweepParam, points))
	if !sweepNoPlot {
		fmt.Fprintln(out, styles.Graph.Render(viz.SweepPlot(sweepParam, points, plotWidth, plotHeight)))
	}
	return nil
}

type sweepPointReport struct {
	Value     float64    `json:"value"`
	Spectrum  []*float64 `json:"spectrum"`
	Dimension float64    `json:"kaplan_yorke_dimension"`
}

type sweepReport struct {
	RunID  string             `json:"run_id"`
	Model  string             `json:"model"`
	Param  string             `json:"param"`
	Points []sweepPointReport `json:"points"`
}

func newSweepReport(r *runner, points []analysis.SweepPoint) sweepReport {
	rep := sweepReport{
		RunID:  r.id.String(),
		Model:  r.cfg.Model,
		Param:  sweepParam,
		Points: make([]sweepPointReport, len(points)),
	}
	for i, p := range points {
		rep.Points[i] = sweepPointReport{Value: p.Param, Spectrum: nullable(p.Spectrum), Dimension: p.Dimension}
	}
	return rep
}
