package physics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/lyapunov/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// Linear is the time-invariant system dX/dt = A·X. Its Lyapunov exponents
// are the real parts of the eigenvalues of A, which makes it the reference
// case for checking estimators.
type Linear struct {
	a *mat.Dense
}

// NewLinear builds a diagonal system with the given growth rates.
func NewLinear(rates ...float64) *Linear {
	if len(rates) == 0 {
		rates = []float64{-1}
	}
	n := len(rates)
	a := mat.NewDense(n, n, nil)
	for i, r := range rates {
		a.Set(i, i, r)
	}
	return &Linear{a: a}
}

// NewLinearMatrix wraps an arbitrary square matrix. It panics if a is not
// square.
func NewLinearMatrix(a mat.Matrix) *Linear {
	r, c := a.Dims()
	if r != c {
		panic(mat.ErrShape)
	}
	return &Linear{a: mat.DenseCopyOf(a)}
}

func (l *Linear) StateDim() int { r, _ := l.a.Dims(); return r }

func (l *Linear) Clone() dynamo.System { return &Linear{a: mat.DenseCopyOf(l.a)} }

func (l *Linear) Derive(s dynamo.State, _ float64) dynamo.State {
	out := mat.NewVecDense(l.StateDim(), nil)
	out.MulVec(l.a, mat.NewVecDense(len(s), s))
	return dynamo.State(out.RawVector().Data)
}

func (l *Linear) Jacobian(_ dynamo.State) *mat.Dense { return mat.DenseCopyOf(l.a) }

func (l *Linear) DefaultState() dynamo.State {
	x := make(dynamo.State, l.StateDim())
	for i := range x {
		x[i] = 1
	}
	return x
}

// GetParams exposes the diagonal of A as a0, a1, ...
func (l *Linear) GetParams() map[string]float64 {
	params := make(map[string]float64, l.StateDim())
	for i := 0; i < l.StateDim(); i++ {
		params[fmt.Sprintf("a%d", i)] = l.a.At(i, i)
	}
	return params
}

func (l *Linear) SetParam(n string, v float64) error {
	idx, err := strconv.Atoi(strings.TrimPrefix(n, "a"))
	if !strings.HasPrefix(n, "a") || err != nil {
		return dynamo.UnknownParam("linear", n)
	}
	if idx < 0 || idx >= l.StateDim() {
		return fmt.Errorf("linear: %q: %w", n, dynamo.ErrParameterBounds)
	}
	l.a.Set(idx, idx, v)
	return nil
}
