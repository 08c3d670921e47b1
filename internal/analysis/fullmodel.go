package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// fullModel is the Benettin estimator with finite-difference tangents: every
// direction is propagated as a separate perturbed trajectory of the full
// nonlinear system.
func (r *run) fullModel(ctx context.Context, x0 []float64) (*Result, error) {
	prev, err := r.burnIn(x0)
	if err != nil {
		return r.partial(r.cfg.Window), err
	}

	q, err := seedBasis(r.nx, r.m, r.cfg.Init, r.opts.rng)
	if err != nil {
		return r.partial(r.cfg.Window), err
	}

	eps := r.cfg.Epsilon
	t := r.cfg.BurnIn
	for j := 1; j <= r.cfg.Windows; j++ {
		if err := ctx.Err(); err != nil {
			return r.partial(r.cfg.Window), err
		}

		ts := timeGrid(t, t+r.cfg.Window, r.cfg.Dt)
		traj, err := r.integ.Integrate(ts, prev, r.opts.params)
		if err != nil {
			return r.partial(r.cfg.Window), &WindowError{Window: j, Time: t, Stage: "integrate reference", Wrapped: err}
		}
		uj, err := finalState(traj, r.nx)
		if err != nil {
			return r.partial(r.cfg.Window), &WindowError{Window: j, Time: t, Stage: "integrate reference", Wrapped: err}
		}

		// Each worker writes only column i of tangents.
		basis := q
		tangents := mat.NewDense(r.nx, r.m, nil)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.opts.workers)
		for i := 0; i < r.m; i++ {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				xp := make([]float64, r.nx)
				for k := range xp {
					xp[k] = prev[k] + eps*basis.At(k, i)
				}
				ptraj, err := r.integ.Integrate(ts, xp, r.opts.params)
				if err != nil {
					return err
				}
				up, err := finalState(ptraj, r.nx)
				if err != nil {
					return err
				}
				for k := range up {
					tangents.Set(k, i, (up[k]-uj[k])/eps)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return r.partial(r.cfg.Window), &WindowError{Window: j, Time: t, Stage: "integrate perturbation", Wrapped: err}
		}

		var growth *mat.Dense
		q, growth, err = orthonormalize(tangents, r.m)
		if err != nil {
			return r.partial(r.cfg.Window), &WindowError{Window: j, Time: t, Stage: "orthonormalize", Wrapped: err}
		}
		r.record(j, growth, r.cfg.Window)

		t += r.cfg.Window
		prev = uj
	}

	r.opts.logger.Debug("estimation finished", "method", FullModel, "windows", r.cfg.Windows)
	return r.result(r.cfg.Window), nil
}
