package physics

import (
	"math"

	"github.com/san-kum/lyapunov/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// Duffing implements a nonlinear forced oscillator. The forcing phase is
// carried as a third state variable so the system is autonomous.
type Duffing struct {
	Alpha, Beta, Delta, Gamma, Omega float64
}

func NewDuffing() *Duffing {
	return &Duffing{-1.0, 1.0, 0.3, 0.5, 1.2}
}

func (d *Duffing) StateDim() int        { return 3 }
func (d *Duffing) Clone() dynamo.System { c := *d; return &c }

func (d *Duffing) Derive(s dynamo.State, _ float64) dynamo.State {
	if len(s) < 3 {
		return make(dynamo.State, 3)
	}
	x, v, phi := s[0], s[1], s[2]
	return dynamo.State{v, -d.Delta*v - d.Alpha*x - d.Beta*x*x*x + d.Gamma*math.Cos(phi), d.Omega}
}

func (d *Duffing) Jacobian(s dynamo.State) *mat.Dense {
	x, phi := s[0], s[2]
	return mat.NewDense(3, 3, []float64{
		0, 1, 0,
		-d.Alpha - 3*d.Beta*x*x, -d.Delta, -d.Gamma * math.Sin(phi),
		0, 0, 0,
	})
}

// Divergence is -delta everywhere, so the exponents sum to -delta.
func (d *Duffing) Divergence() float64 { return -d.Delta }

func (d *Duffing) DefaultState() dynamo.State { return dynamo.State{1.0, 0.0, 0.0} }

func (d *Duffing) GetParams() map[string]float64 {
	return map[string]float64{"alpha": d.Alpha, "beta": d.Beta, "delta": d.Delta, "gamma": d.Gamma, "omega": d.Omega}
}

func (d *Duffing) SetParam(n string, v float64) error {
	switch n {
	case "alpha":
		d.Alpha = v
	case "beta":
		d.Beta = v
	case "delta":
		d.Delta = v
	case "gamma":
		d.Gamma = v
	case "omega":
		d.Omega = v
	default:
		return dynamo.UnknownParam("duffing", n)
	}
	return nil
}
