package analysis

import (
	"math"
	"testing"
)

func TestKaplanYorke(t *testing.T) {
	tests := []struct {
		name     string
		spectrum []float64
		sorted   bool
		want     float64
	}{
		{"partial sums never negative", []float64{0.5, 0.25, -0.25, -0.25}, true, 4},
		{"partial sums end at zero", []float64{0.5, 0.1, -0.2, -0.4}, true, 4},
		{"all negative", []float64{-0.1, -0.2}, true, 0},
		{"single positive", []float64{0.3}, true, 1},
		{"single negative", []float64{-0.3}, true, 0},
		{"empty", nil, true, 0},
		{"lorenz", []float64{0.9056, 0, -14.5723}, true, 2 + 0.9056/14.5723},
		{"crossing at third", []float64{1, 0.5, -3}, true, 2 + 1.5/3},
		{"crossing at second", []float64{0.2, -0.4, -1}, true, 1 + 0.2/0.4},
		{"unsorted input", []float64{-3, 1, 0.5}, false, 2 + 1.5/3},
		{"zero exponents", []float64{0, 0}, true, 2},
		{"nan padding ignored", []float64{0.2, -0.4, math.NaN()}, true, 1 + 0.2/0.4},
		{"nan padding ignored unsorted", []float64{-0.4, 0.2, math.NaN()}, false, 1 + 0.2/0.4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := KaplanYorke(tt.spectrum, tt.sorted)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("KaplanYorke(%v) = %v, want %v", tt.spectrum, got, tt.want)
			}
		})
	}
}

func TestKaplanYorkeDoesNotMutate(t *testing.T) {
	spectrum := []float64{-0.4, 0.1, 0.5, -0.2}
	KaplanYorke(spectrum, false)

	want := []float64{-0.4, 0.1, 0.5, -0.2}
	for i := range spectrum {
		if spectrum[i] != want[i] {
			t.Fatalf("spectrum modified: %v", spectrum)
		}
	}
}
