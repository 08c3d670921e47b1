package physics

import (
	"math"

	"github.com/san-kum/lyapunov/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// Pendulum is a damped pendulum driven by a periodic torque. As with
// Duffing, the drive phase is the third state variable.
type Pendulum struct {
	Mass      float64
	Length    float64
	Damping   float64
	Gravity   float64
	Drive     float64
	Frequency float64
}

// NewPendulum returns the chaotic regime θ'' + θ'/2 + sin θ = 1.5 cos(2t/3).
func NewPendulum() *Pendulum {
	return &Pendulum{
		Mass:      1.0,
		Length:    1.0,
		Damping:   0.5,
		Gravity:   1.0,
		Drive:     1.5,
		Frequency: 2.0 / 3.0,
	}
}

func (p *Pendulum) StateDim() int {
	return 3
}

func (p *Pendulum) Clone() dynamo.System {
	c := *p
	return &c
}

func (p *Pendulum) inertia() float64 {
	return p.Mass * p.Length * p.Length
}

func (p *Pendulum) Derive(x dynamo.State, _ float64) dynamo.State {
	theta, omega, phi := x[0], x[1], x[2]
	alpha := (-p.Damping*omega - p.Mass*p.Gravity*p.Length*math.Sin(theta) + p.Drive*math.Cos(phi)) / p.inertia()
	return dynamo.State{omega, alpha, p.Frequency}
}

func (p *Pendulum) Jacobian(x dynamo.State) *mat.Dense {
	theta, phi := x[0], x[2]
	i := p.inertia()
	return mat.NewDense(3, 3, []float64{
		0, 1, 0,
		-p.Mass * p.Gravity * p.Length * math.Cos(theta) / i, -p.Damping / i, -p.Drive * math.Sin(phi) / i,
		0, 0, 0,
	})
}

func (p *Pendulum) Divergence() float64 {
	return -p.Damping / p.inertia()
}

func (p *Pendulum) DefaultState() dynamo.State {
	return dynamo.State{0.2, 0.0, 0.0}
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"mass":      p.Mass,
		"length":    p.Length,
		"damping":   p.Damping,
		"gravity":   p.Gravity,
		"drive":     p.Drive,
		"frequency": p.Frequency,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "length":
		p.Length = value
	case "damping":
		p.Damping = value
	case "gravity":
		p.Gravity = value
	case "drive":
		p.Drive = value
	case "frequency":
		p.Frequency = value
	default:
		return dynamo.UnknownParam("pendulum", name)
	}
	return nil
}
