package physics

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/lyapunov/internal/dynamo"
	"gonum.org/v1/gonum/mat"
)

// numericJacobian differentiates Derive by central differences.
func numericJacobian(dyn dynamo.System, x dynamo.State) *mat.Dense {
	n := len(x)
	const h = 1e-6
	j := mat.NewDense(n, n, nil)
	for c := 0; c < n; c++ {
		xp, xm := x.Clone(), x.Clone()
		xp[c] += h
		xm[c] -= h
		fp, fm := dyn.Derive(xp, 0), dyn.Derive(xm, 0)
		for r := 0; r < n; r++ {
			j.Set(r, c, (fp[r]-fm[r])/(2*h))
		}
	}
	return j
}

func TestJacobianMatchesDerive(t *testing.T) {
	points := map[string]dynamo.State{
		"lorenz":    {1.2, -0.7, 20.5},
		"rossler":   {0.3, -2.1, 0.8},
		"duffing":   {0.9, -0.4, 1.3},
		"vanderpol": {1.5, 0.2},
		"pendulum":  {0.7, -0.3, 2.1},
		"linear":    {0.5},
	}

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			dyn, err := New(name)
			if err != nil {
				t.Fatalf("New(%q): %v", name, err)
			}
			x := points[name]
			if len(x) != dyn.StateDim() {
				t.Fatalf("test point has dim %d, model wants %d", len(x), dyn.StateDim())
			}
			got := dyn.Jacobian(x)
			want := numericJacobian(dyn, x)
			if !mat.EqualApprox(got, want, 1e-5) {
				t.Errorf("Jacobian mismatch\ngot  %v\nwant %v", mat.Formatted(got), mat.Formatted(want))
			}
		})
	}
}

func TestDivergenceIsJacobianTrace(t *testing.T) {
	l := NewLorenz()
	if got, want := mat.Trace(l.Jacobian(dynamo.State{3, 4, 5})), l.Divergence(); math.Abs(got-want) > 1e-12 {
		t.Errorf("lorenz trace %v, want %v", got, want)
	}
	d := NewDuffing()
	if got, want := mat.Trace(d.Jacobian(dynamo.State{3, 4, 5})), d.Divergence(); math.Abs(got-want) > 1e-12 {
		t.Errorf("duffing trace %v, want %v", got, want)
	}
	p := NewPendulum()
	p.Length = 2
	if got, want := mat.Trace(p.Jacobian(dynamo.State{3, 4, 5})), p.Divergence(); math.Abs(got-want) > 1e-12 {
		t.Errorf("pendulum trace %v, want %v", got, want)
	}
}

func TestSetParamUnknown(t *testing.T) {
	for _, name := range Names() {
		dyn, _ := New(name)
		if err := dyn.SetParam("no_such_param", 1); !errors.Is(err, dynamo.ErrUnknownParameter) {
			t.Errorf("%s: got %v, want ErrUnknownParameter", name, err)
		}
	}
}

func TestWithParamsDoesNotMutate(t *testing.T) {
	base := NewLorenz()
	tuned, err := dynamo.WithParams(base, map[string]float64{"rho": 24})
	if err != nil {
		t.Fatalf("WithParams: %v", err)
	}
	if base.GetParams()["rho"] != 28 {
		t.Errorf("base rho changed to %v", base.GetParams()["rho"])
	}
	if got := tuned.(*Lorenz).GetParams()["rho"]; got != 24 {
		t.Errorf("tuned rho = %v, want 24", got)
	}
}

func TestLinearParams(t *testing.T) {
	l := NewLinear(-1, 2)
	if err := l.SetParam("a1", 0.5); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if got := l.GetParams()["a1"]; got != 0.5 {
		t.Errorf("a1 = %v, want 0.5", got)
	}
	if err := l.SetParam("a7", 1); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("got %v, want ErrParameterBounds", err)
	}
	dx := l.Derive(dynamo.State{2, 4}, 0)
	if dx[0] != -2 || dx[1] != 2 {
		t.Errorf("Derive = %v, want [-2 2]", dx)
	}
}

func TestUnknownModel(t *testing.T) {
	if _, err := New("cartpole"); err == nil {
		t.Error("expected error for unregistered model")
	}
}
