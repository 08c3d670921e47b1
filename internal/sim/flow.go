package sim

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/lyapunov/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

type Config struct {
	Tolerance     float64
	MaxDt         float64
	MinDt         float64
	Adaptive      bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Tolerance:     1e-6,
		MaxDt:         0.1,
		MinDt:         1e-8,
		Adaptive:      false,
		ValidateState: true,
	}
}

// Flow integrates a model over a time grid. It satisfies both
// analysis.Integrator and analysis.Jacobian, and is safe for concurrent use
// as long as its integrator is.
type Flow struct {
	dyn        dynamo.System
	integrator dynamo.Integrator
	cfg        Config
}

func New(dyn dynamo.System, integrator dynamo.Integrator, cfg Config) *Flow {
	return &Flow{dyn: dyn, integrator: integrator, cfg: cfg}
}

func (f *Flow) System() dynamo.System { return f.dyn }

// Integrate returns a StateDim×len(ts) trajectory. Between consecutive grid
// points the stepper takes a single step of the grid spacing, or adaptive
// substeps when Config.Adaptive is set.
func (f *Flow) Integrate(ts []float64, x0 []float64, params map[string]float64) (*mat.Dense, error) {
	if err := f.validate(ts); err != nil {
		return nil, err
	}
	n := f.dyn.StateDim()
	if len(x0) != n {
		return nil, fmt.Errorf("x0 has %d entries, system has %d: %w", len(x0), n, dynamo.ErrDimensionMismatch)
	}

	dyn, err := dynamo.WithParams(f.dyn, params)
	if err != nil {
		return nil, err
	}

	traj := mat.NewDense(n, len(ts), nil)
	x := dynamo.State(x0).Clone()
	traj.SetCol(0, x)

	for i := 1; i < len(ts); i++ {
		t, dt := ts[i-1], ts[i]-ts[i-1]
		if f.cfg.Adaptive {
			x, err = f.advance(dyn, x, t, dt)
			if err != nil {
				return nil, &dynamo.SimulationError{Step: i, Time: t, State: x, Wrapped: err}
			}
		} else {
			x = f.integrator.Step(dyn, x, t, dt)
		}

		if f.cfg.ValidateState && !x.IsValid() {
			return nil, &dynamo.SimulationError{Step: i, Time: ts[i], State: x, Wrapped: dynamo.ErrInvalidState}
		}
		traj.SetCol(i, x)
	}

	return traj, nil
}

// Jacobian evaluates the model's analytic Jacobian with params applied.
func (f *Flow) Jacobian(x []float64, params map[string]float64) (*mat.Dense, error) {
	dyn, err := dynamo.WithParams(f.dyn, params)
	if err != nil {
		return nil, err
	}
	lin, ok := dyn.(dynamo.Linearizable)
	if !ok {
		return nil, fmt.Errorf("%T has no analytic jacobian", dyn)
	}
	return lin.Jacobian(dynamo.State(x)), nil
}

func (f *Flow) validate(ts []float64) error {
	if len(ts) == 0 {
		return fmt.Errorf("empty time grid")
	}
	for i := 1; i < len(ts); i++ {
		if !(ts[i] > ts[i-1]) {
			return fmt.Errorf("time grid not strictly increasing at index %d (%g after %g)", i, ts[i], ts[i-1])
		}
	}
	if f.cfg.Adaptive && f.cfg.Tolerance <= 0 {
		return fmt.Errorf("tolerance must be positive for adaptive stepping")
	}
	return nil
}

// advance covers [t, t+span] with adaptive substeps.
func (f *Flow) advance(dyn dynamo.System, x dynamo.State, t, span float64) (dynamo.State, error) {
	end := t + span
	dt := span
	if f.cfg.MaxDt > 0 {
		dt = math.Min(span, f.cfg.MaxDt)
	}
	for t < end {
		if t+dt > end {
			dt = end - t
		}
		newX, next, err := f.adaptiveStep(dyn, x, t, dt)
		if err != nil {
			return x, err
		}
		x = newX
		t += next.taken
		dt = next.suggested
		if f.cfg.MaxDt > 0 {
			dt = math.Min(dt, f.cfg.MaxDt)
		}
		if end-t <= 1e-12*math.Max(1, math.Abs(end)) {
			break
		}
	}
	return x, nil
}

type stepSizes struct {
	taken, suggested float64
}

func (f *Flow) adaptiveStep(dyn dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, stepSizes, error) {
	if adaptive, ok := f.integrator.(dynamo.AdaptiveIntegrator); ok {
		for {
			newX, dtNew, err := adaptive.StepAdaptive(dyn, x, t, dt, f.cfg.Tolerance)
			if err == nil {
				return newX, stepSizes{taken: dt, suggested: dtNew}, nil
			}
			if !errors.Is(err, dynamo.ErrStepRejected) {
				return x, stepSizes{}, err
			}
			if dtNew < f.cfg.MinDt {
				return x, stepSizes{}, dynamo.ErrStepTooSmall
			}
			dt = dtNew
		}
	}

	// Step doubling for fixed-step integrators.
	for {
		x1 := f.integrator.Step(dyn, x, t, dt)
		xHalf := f.integrator.Step(dyn, x, t, dt/2)
		x2 := f.integrator.Step(dyn, xHalf, t+dt/2, dt/2)

		err := x1.Sub(x2).Norm()
		if err > f.cfg.Tolerance {
			if dt/2 < f.cfg.MinDt {
				return x, stepSizes{}, dynamo.ErrStepTooSmall
			}
			dt /= 2
			continue
		}

		next := dt
		if err < f.cfg.Tolerance/10 {
			next = dt * 2
		}
		return x2, stepSizes{taken: dt, suggested: next}, nil
	}
}
