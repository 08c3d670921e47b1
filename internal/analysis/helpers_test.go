package analysis

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// exactLinear integrates dx_i/dt = rates[i]·x_i in closed form.
func exactLinear(rates ...float64) IntegratorFunc {
	return func(ts []float64, x0 []float64, _ map[string]float64) (*mat.Dense, error) {
		traj := mat.NewDense(len(x0), len(ts), nil)
		for c, t := range ts {
			for i, x := range x0 {
				traj.Set(i, c, x*math.Exp(rates[i]*(t-ts[0])))
			}
		}
		return traj, nil
	}
}

func diagJacobian(rates ...float64) JacobianFunc {
	return func(_ []float64, _ map[string]float64) (*mat.Dense, error) {
		j := mat.NewDense(len(rates), len(rates), nil)
		for i, r := range rates {
			j.Set(i, i, r)
		}
		return j, nil
	}
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.BurnIn = 1
	cfg.BurnInDt = 0.1
	cfg.Dt = 0.1
	cfg.Window = 0.5
	cfg.Windows = 50
	return cfg
}
