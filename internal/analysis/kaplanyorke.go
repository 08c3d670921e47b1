package analysis

import (
	"math"
	"slices"
)

// KaplanYorke returns the Kaplan-Yorke (Lyapunov) dimension of a spectrum.
// If sorted is false a descending copy is sorted first; the caller's slice
// is never modified. NaN entries, such as the padding of a clamped run, are
// ignored.
//
// With j the shortest prefix whose sum is negative, the dimension is
//
//	D = (j-1) + (λ_1 + ... + λ_{j-1}) / |λ_j|
//
// It is 0 when the largest exponent alone is negative and len(spectrum)
// when no prefix sum is negative.
func KaplanYorke(spectrum []float64, sorted bool) float64 {
	lambdas := spectrum
	if !sorted || hasNaN(spectrum) {
		lambdas = make([]float64, 0, len(spectrum))
		for _, l := range spectrum {
			if !math.IsNaN(l) {
				lambdas = append(lambdas, l)
			}
		}
	}
	if !sorted {
		slices.Sort(lambdas)
		slices.Reverse(lambdas)
	}

	sum := 0.0
	for j, l := range lambdas {
		if sum+l < 0 {
			if j == 0 {
				return 0
			}
			return float64(j) + sum/math.Abs(l)
		}
		sum += l
	}
	return float64(len(lambdas))
}

func hasNaN(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}
