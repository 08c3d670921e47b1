package dynamo

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Add(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] + other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

func (s State) Scale(factor float64) State {
	result := make(State, len(s))
	for i := range s {
		result[i] = s[i] * factor
	}
	return result
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is an autonomous or time-dependent vector field dX/dt = f(X, t).
type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

// Linearizable systems expose the Jacobian of their vector field.
type Linearizable interface {
	Jacobian(x State) *mat.Dense
}

// Integrator advances a state by one step. Implementations must not keep
// per-call scratch state so one value can be shared across goroutines.
type Integrator interface {
	Step(dyn System, x State, t float64, dt float64) State
}

type AdaptiveIntegrator interface {
	Integrator
	StepAdaptive(dyn System, x State, t, dt, tol float64) (State, float64, error)
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Cloner returns an independent copy of a system, used to apply
// per-run parameter overrides without touching shared models.
type Cloner interface {
	Clone() System
}

// WithParams returns dyn with the given parameters applied. The input system
// is never mutated: a clone is taken first.
func WithParams(dyn System, params map[string]float64) (System, error) {
	if len(params) == 0 {
		return dyn, nil
	}
	c, ok := dyn.(Cloner)
	if !ok {
		return nil, ErrNotConfigurable
	}
	clone := c.Clone()
	tunable, ok := clone.(Configurable)
	if !ok {
		return nil, ErrNotConfigurable
	}
	for name, v := range params {
		if err := tunable.SetParam(name, v); err != nil {
			return nil, err
		}
	}
	return clone, nil
}
