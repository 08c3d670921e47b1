// Package analysis estimates Lyapunov spectra.
//
// [Estimate] implements the Benettin / Shimada-Nagashima method: a set of
// perturbation directions is propagated alongside a reference trajectory and
// re-orthonormalized by QR decomposition after every window; the logarithms
// of the diagonal of R accumulate into the exponents. Two variants share the
// orthonormalization core:
//
//   - full model: each direction is a finite-difference perturbed trajectory
//     of the nonlinear system, integrated in parallel
//   - tangent map: directions are advanced by a [tangent.Scheme] applied to
//     the Jacobian at the current reference state
//
// The package does not integrate anything itself; callers plug in an
// [Integrator] (and a [Jacobian] for the tangent map). [KaplanYorke] turns a
// spectrum into a fractal dimension and [Sweep] repeats the estimate across a
// parameter range.
//
// # Example
//
//	cfg := analysis.DefaultConfig()
//	cfg.Exponents = 3
//	res, err := analysis.Estimate(ctx, flow, x0, cfg, analysis.WithSeed(1))
//	if err != nil {
//	    return err
//	}
//	dim := analysis.KaplanYorke(res.Spectrum, false)
//
// # Normalization
//
// The full-model estimate is λ/(N·T); the tangent-map estimate is λ/(N·Δt)
// because the basis only advances by one Δt step per window. The two agree
// when Window equals Dt, which is the recommended setting for the tangent map.
package analysis
