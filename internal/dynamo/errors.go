package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidState indicates a state vector with invalid dimensions or values.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrUnknownParameter indicates a parameter name the system does not define.
	ErrUnknownParameter = errors.New("dynamo: unknown parameter")

	// ErrNotConfigurable indicates parameter overrides were given for a system
	// that cannot be cloned and reconfigured.
	ErrNotConfigurable = errors.New("dynamo: system does not accept parameters")

	// ErrStepRejected indicates an adaptive step exceeded its error tolerance
	// and must be retried with the suggested smaller step.
	ErrStepRejected = errors.New("dynamo: adaptive step rejected")

	// ErrStepTooSmall indicates adaptive timestep became too small.
	ErrStepTooSmall = errors.New("dynamo: adaptive timestep below minimum")

	// ErrDimensionMismatch indicates mismatched state dimensions.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch between state and system")
)

// SimulationError wraps an error with simulation context.
type SimulationError struct {
	Step    int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}

// UnknownParam reports name as undefined for the given model.
func UnknownParam(model, name string) error {
	return fmt.Errorf("%s: %q: %w", model, name, ErrUnknownParameter)
}
