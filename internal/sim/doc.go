// Package sim turns a model and a single-step integrator into the
// trajectory integrator consumed by the Lyapunov estimators.
//
//	flow := sim.New(physics.NewLorenz(), integrators.NewRK4(), sim.DefaultConfig())
//	res, err := analysis.Estimate(ctx, flow, x0, cfg, analysis.WithJacobian(flow))
package sim
