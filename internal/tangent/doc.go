// Package tangent advances perturbation matrices under a linear operator.
//
// Every [Scheme] approximates one step of dQ/dt = J·Q, that is
// exp(J·dt)·Q, with an explicit Runge-Kutta method:
//
//   - [Euler]: 1 stage, order 1
//   - [RK2]: explicit midpoint, 2 stages, order 2
//   - [SSPRK3]: Shu-Osher strong-stability-preserving, 3 stages, order 3
//   - [RK4]: classical, 4 stages, order 4 (the default)
//   - [Ralston4]: Ralston's minimum-error method, 4 stages, order 4
//
// For a constant J each scheme reproduces the Taylor expansion of
// exp(J·dt) up to its order. Schemes are pure and safe for concurrent use.
package tangent
