package analysis

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig is matched by every *ConfigError.
	ErrInvalidConfig = errors.New("analysis: invalid configuration")

	// ErrMissingJacobian indicates the tangent-map method was selected but no
	// Jacobian supplier was passed to Estimate.
	ErrMissingJacobian = errors.New("analysis: jacobian method selected without a jacobian supplier")

	// ErrDimensionMismatch indicates operands or integrator output whose shape
	// does not match the state dimension.
	ErrDimensionMismatch = errors.New("analysis: dimension mismatch")

	// ErrEmptyState indicates a zero-length initial condition.
	ErrEmptyState = errors.New("analysis: empty initial condition")
)

// ConfigError reports one rejected configuration field. It matches
// ErrInvalidConfig with errors.Is, and Err when set.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("analysis: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfig, e.Err}
	}
	return []error{ErrInvalidConfig}
}

// WindowError records where an estimation run failed.
type WindowError struct {
	Window  int // 1-based; 0 means burn-in
	Time    float64
	Stage   string
	Wrapped error
}

func (e *WindowError) Error() string {
	if e.Window == 0 {
		return fmt.Sprintf("burn-in (t=%.4f) %s: %v", e.Time, e.Stage, e.Wrapped)
	}
	return fmt.Sprintf("window %d (t=%.4f) %s: %v", e.Window, e.Time, e.Stage, e.Wrapped)
}

func (e *WindowError) Unwrap() error {
	return e.Wrapped
}
