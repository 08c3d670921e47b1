package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// gridTol absorbs round-off when deciding whether end lies on the grid.
const gridTol = 1e-9

// timeGrid returns start, start+step, ... up to end. end itself is the last
// point when (end-start)/step is integral within gridTol; otherwise the grid
// stops at the last point not beyond end.
func timeGrid(start, end, step float64) []float64 {
	span := (end - start) / step
	n := int(math.Floor(span + gridTol))
	if n < 0 {
		n = 0
	}
	ts := make([]float64, n+1)
	for k := range ts {
		ts[k] = start + float64(k)*step
	}
	if n > 0 && math.Abs(span-float64(n)) <= gridTol*math.Max(1, span) {
		ts[n] = end
	}
	return ts
}

// finalState extracts the last column of an integrator trajectory.
func finalState(traj *mat.Dense, nx int) ([]float64, error) {
	if traj == nil {
		return nil, fmt.Errorf("%w: integrator returned no trajectory", ErrDimensionMismatch)
	}
	r, c := traj.Dims()
	if r != nx || c == 0 {
		return nil, fmt.Errorf("%w: trajectory is %d×%d, want %d rows", ErrDimensionMismatch, r, c, nx)
	}
	return mat.Col(nil, c-1, traj), nil
}
