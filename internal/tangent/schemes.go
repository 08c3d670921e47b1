package tangent

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Scheme advances q by dt under dQ/dt = j·q. j must be n×n and q n×m.
type Scheme func(j, q mat.Matrix, dt float64) *mat.Dense

// Default is the scheme used when none is configured.
const Default = "rk4"

var sqrt5 = math.Sqrt(5)

// Butcher tableaux. a holds the strictly lower triangle row by row.
var (
	euler = tableau{
		a: [][]float64{{}},
		b: []float64{1},
	}

	midpoint = tableau{
		a: [][]float64{{}, {0.5}},
		b: []float64{0, 1},
	}

	ssprk3 = tableau{
		a: [][]float64{{}, {1}, {0.25, 0.25}},
		b: []float64{1.0 / 6.0, 1.0 / 6.0, 2.0 / 3.0},
	}

	classic = tableau{
		a: [][]float64{{}, {0.5}, {0, 0.5}, {0, 0, 1}},
		b: []float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
	}

	ralston = tableau{
		a: [][]float64{
			{},
			{0.4},
			{(-2889 + 1428*sqrt5) / 1024, (3785 - 1620*sqrt5) / 1024},
			{(-3365 + 2094*sqrt5) / 6040, (-975 - 3046*sqrt5) / 2552, (467040 + 203968*sqrt5) / 240845},
		},
		b: []float64{
			(263 + 24*sqrt5) / 1812,
			(125 - 1000*sqrt5) / 3828,
			(3426304 + 1661952*sqrt5) / 5924787,
			(30 - 4*sqrt5) / 123,
		},
	}
)

type tableau struct {
	a [][]float64
	b []float64
}

// step evaluates the explicit stages k_s = j·(q + dt·Σ a_sp·k_p) and
// returns q + dt·Σ b_s·k_s.
func (tb tableau) step(j, q mat.Matrix, dt float64) *mat.Dense {
	n, m := q.Dims()
	if jr, jc := j.Dims(); jr != n || jc != n {
		panic(mat.ErrShape)
	}

	k := make([]*mat.Dense, len(tb.b))
	stage := mat.NewDense(n, m, nil)
	var scaled mat.Dense
	for s := range tb.b {
		stage.Copy(q)
		for p, a := range tb.a[s] {
			if a == 0 {
				continue
			}
			scaled.Scale(dt*a, k[p])
			stage.Add(stage, &scaled)
		}
		k[s] = mat.NewDense(n, m, nil)
		k[s].Mul(j, stage)
	}

	out := mat.DenseCopyOf(q)
	for s, b := range tb.b {
		if b == 0 {
			continue
		}
		scaled.Scale(dt*b, k[s])
		out.Add(out, &scaled)
	}
	return out
}

func Euler(j, q mat.Matrix, dt float64) *mat.Dense    { return euler.step(j, q, dt) }
func RK2(j, q mat.Matrix, dt float64) *mat.Dense      { return midpoint.step(j, q, dt) }
func SSPRK3(j, q mat.Matrix, dt float64) *mat.Dense   { return ssprk3.step(j, q, dt) }
func RK4(j, q mat.Matrix, dt float64) *mat.Dense      { return classic.step(j, q, dt) }
func Ralston4(j, q mat.Matrix, dt float64) *mat.Dense { return ralston.step(j, q, dt) }

var schemes = map[string]struct {
	fn    Scheme
	order int
}{
	"euler":    {Euler, 1},
	"rk2":      {RK2, 2},
	"ssprk3":   {SSPRK3, 3},
	"rk4":      {RK4, 4},
	"ralston4": {Ralston4, 4},
}

// Lookup returns the named scheme. The empty name selects Default.
func Lookup(name string) (Scheme, error) {
	if name == "" {
		name = Default
	}
	s, ok := schemes[name]
	if !ok {
		return nil, fmt.Errorf("unknown perturbation scheme: %s", name)
	}
	return s.fn, nil
}

// Order returns the nominal order of accuracy of the named scheme, or 0 if
// the name is unknown.
func Order(name string) int {
	if name == "" {
		name = Default
	}
	return schemes[name].order
}

func Names() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
