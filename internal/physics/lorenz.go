package physics

import (
	"github.com/san-kum/lyapunov/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz() *Lorenz               { return &Lorenz{10.0, 28.0, 8.0 / 3.0} }
func (l *Lorenz) StateDim() int        { return 3 }
func (l *Lorenz) Clone() dynamo.System { c := *l; return &c }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{l.sigma * (s[1] - s[0]), s[0]*(l.rho-s[2]) - s[1], s[0]*s[1] - l.beta*s[2]}
}

func (l *Lorenz) Jacobian(s dynamo.State) *mat.Dense {
	return mat.NewDense(3, 3, []float64{
		-l.sigma, l.sigma, 0,
		l.rho - s[2], -1, -s[0],
		s[1], s[0], -l.beta,
	})
}

// Divergence is the constant trace of the Jacobian; the full spectrum sums to it.
func (l *Lorenz) Divergence() float64 { return -(l.sigma + 1 + l.beta) }

func (l *Lorenz) DefaultState() dynamo.State { return dynamo.State{1.0, 1.0, 1.0} }
func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}
func (l *Lorenz) SetParam(n string, v float64) error {
	switch n {
	case "sigma":
		l.sigma = v
	case "rho":
		l.rho = v
	case "beta":
		l.beta = v
	default:
		return dynamo.UnknownParam("lorenz", n)
	}
	return nil
}
