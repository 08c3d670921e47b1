package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/lyapunov/internal/tangent"
	"gonum.org/v1/gonum/mat"
)

// tangentMap propagates the basis with the linearized flow instead of
// perturbed trajectories. The Jacobian is evaluated once per window at the
// current reference state and the basis takes a single scheme step of Dt,
// so results are only meaningful when Window is Dt or a small multiple of it.
func (r *run) tangentMap(ctx context.Context, x0 []float64) (*Result, error) {
	scheme, err := tangent.Lookup(r.cfg.Scheme)
	if err != nil {
		return nil, &ConfigError{Field: "scheme", Reason: err.Error()}
	}

	u, err := r.burnIn(x0)
	if err != nil {
		return r.partial(r.cfg.Dt), err
	}

	q, err := seedBasis(r.nx, r.m, r.cfg.Init, r.opts.rng)
	if err != nil {
		return r.partial(r.cfg.Dt), err
	}

	t := r.cfg.BurnIn
	for j := 1; j <= r.cfg.Windows; j++ {
		if err := ctx.Err(); err != nil {
			return r.partial(r.cfg.Dt), err
		}

		jac, err := r.opts.jacobian.Jacobian(u, r.opts.params)
		if err == nil {
			err = checkSquare(jac, r.nx)
		}
		if err != nil {
			return r.partial(r.cfg.Dt), &WindowError{Window: j, Time: t, Stage: "jacobian", Wrapped: err}
		}
		propagated := scheme(jac, q, r.cfg.Dt)

		ts := timeGrid(t, t+r.cfg.Window, r.cfg.Dt)
		traj, err := r.integ.Integrate(ts, u, r.opts.params)
		if err != nil {
			return r.partial(r.cfg.Dt), &WindowError{Window: j, Time: t, Stage: "integrate reference", Wrapped: err}
		}
		u, err = finalState(traj, r.nx)
		if err != nil {
			return r.partial(r.cfg.Dt), &WindowError{Window: j, Time: t, Stage: "integrate reference", Wrapped: err}
		}

		var growth *mat.Dense
		q, growth, err = orthonormalize(propagated, r.m)
		if err != nil {
			return r.partial(r.cfg.Dt), &WindowError{Window: j, Time: t, Stage: "orthonormalize", Wrapped: err}
		}
		r.record(j, growth, r.cfg.Dt)

		t += r.cfg.Window
	}

	r.opts.logger.Debug("estimation finished", "method", TangentMap, "windows", r.cfg.Windows)
	return r.result(r.cfg.Dt), nil
}

func checkSquare(j *mat.Dense, n int) error {
	if j == nil {
		return fmt.Errorf("%w: jacobian supplier returned nil", ErrDimensionMismatch)
	}
	if r, c := j.Dims(); r != n || c != n {
		return fmt.Errorf("%w: jacobian is %d×%d, want %d×%d", ErrDimensionMismatch, r, c, n, n)
	}
	return nil
}
