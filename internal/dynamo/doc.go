// Package dynamo provides core simulation primitives for dynamical systems.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, t))
//   - [Linearizable]: systems with an analytic Jacobian
//   - [Integrator]: single-step numerical integrator interface
//   - [Configurable] and [Cloner]: runtime parameter overrides
//
// # Example
//
//	dyn := physics.NewLorenz()
//	tuned, err := dynamo.WithParams(dyn, map[string]float64{"rho": 24})
//
// # Thread Safety
//
// Systems are read-only during integration and integrators keep no scratch
// state, so a single model and stepper may be shared by concurrent runs.
// [WithParams] never mutates its input.
package dynamo
