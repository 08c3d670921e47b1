// Package physics provides dynamical system models for Lyapunov analysis.
//
// Each model implements [dynamo.System] and [dynamo.Linearizable], so it can
// drive both the finite-difference and the tangent-map estimators:
//
//   - [Lorenz]: butterfly attractor
//   - [Rossler]: single-scroll attractor
//   - [Duffing]: forced nonlinear oscillator (phase carried as a state)
//   - [VanDerPol]: relaxation oscillator with a stable limit cycle
//   - [Pendulum]: damped pendulum under a periodic drive torque
//   - [Linear]: dX/dt = A·X, whose exponents are known in closed form
//
// All models implement [dynamo.Configurable] and [dynamo.Cloner] so runs can
// override parameters without sharing mutable state:
//
//	dyn, _ := physics.New("lorenz")
//	tuned, err := dynamo.WithParams(dyn, map[string]float64{"rho": 24})
package physics
