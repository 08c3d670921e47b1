package analysis

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"golang.org/x/sync/errgroup"
)

// SweepPoint is the spectrum estimated at one parameter value.
type SweepPoint struct {
	Param     float64
	Spectrum  []float64
	Dimension float64
}

// Linspace returns steps evenly spaced values from lo to hi inclusive. A
// single step yields just lo; zero or fewer yield nil.
func Linspace(lo, hi float64, steps int) []float64 {
	switch {
	case steps <= 0:
		return nil
	case steps == 1:
		return []float64{lo}
	}
	step := (hi - lo) / float64(steps-1)
	values := make([]float64, steps)
	for i := range values {
		values[i] = lo + float64(i)*step
	}
	values[steps-1] = hi
	return values
}

// Sweep estimates the spectrum for each value of the named parameter. This
// is the Lyapunov analogue of a bifurcation diagram: the sign of the largest
// exponent marks the transitions to chaos. Points are computed concurrently
// (bounded by WithWorkers) and returned in the order of values; each point
// runs its own estimator with a single perturbation worker and a seed drawn
// from the configured random source.
func Sweep(ctx context.Context, integ Integrator, x0 []float64, cfg Config, param string, values []float64, opts ...Option) ([]SweepPoint, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if param == "" {
		return nil, &ConfigError{Field: "sweep parameter", Reason: "name must not be empty"}
	}

	o := newOptions(opts)
	seeds := make([]int64, len(values))
	for i := range seeds {
		seeds[i] = o.rng.Int63()
	}

	pointCfg := cfg
	pointCfg.Verbose = false
	pointCfg.History = false

	points := make([]SweepPoint, len(values))
	var mu sync.Mutex
	completed := 0
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, v := range values {
		g.Go(func() error {
			params := maps.Clone(o.params)
			if params == nil {
				params = make(map[string]float64, 1)
			}
			params[param] = v

			res, err := Estimate(gctx, integ, x0, pointCfg,
				WithJacobian(o.jacobian),
				WithParams(params),
				WithLogger(o.logger),
				WithSeed(seeds[i]),
				WithWorkers(1),
			)
			if err != nil {
				return fmt.Errorf("sweep %s=%g: %w", param, v, err)
			}
			points[i] = SweepPoint{
				Param:     v,
				Spectrum:  res.Spectrum,
				Dimension: KaplanYorke(res.Spectrum, false),
			}
			if !cfg.Verbose {
				return nil
			}
			mu.Lock()
			defer mu.Unlock()
			completed++
			if o.progress != nil {
				o.progress.Advance(completed, len(values), res.Spectrum)
			} else {
				o.logger.Info("sweep point complete", "param", param, "value", v, "spectrum", res.Spectrum)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}
