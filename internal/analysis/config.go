package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/lyapunov/internal/tangent"
)

// Init selects how the perturbation directions are seeded.
type Init string

const (
	InitRandom Init = "random"
	InitUnit   Init = "unit"
)

const (
	DefaultExponents = 1
	DefaultBurnIn    = 10.0
	DefaultDt        = 0.01
	DefaultWindow    = 1.0
	DefaultWindows   = 1000
	DefaultEpsilon   = 1e-6
)

// Config holds the estimator parameters. Build it with DefaultConfig or a
// literal and pass it through NewConfig; Estimate validates it again.
type Config struct {
	Exponents   int     // m, number of exponents to compute
	T0          float64 // τ0, start time
	BurnIn      float64 // τ, time at which burn-in ends and measurement starts
	Dt          float64 // Δt, integration step during measurement
	BurnInDt    float64 // Δτ, integration step during burn-in
	Window      float64 // T, time between re-orthonormalizations
	Windows     int     // N, number of measurement windows
	Epsilon     float64 // ϵ, finite-difference perturbation (full model only)
	Verbose     bool
	History     bool
	Scheme      string // perturbation scheme (tangent map only); "" means tangent.Default
	UseJacobian bool
	Init        Init
}

func DefaultConfig() Config {
	return Config{
		Exponents: DefaultExponents,
		T0:        0,
		BurnIn:    DefaultBurnIn,
		Dt:        DefaultDt,
		BurnInDt:  DefaultDt,
		Window:    DefaultWindow,
		Windows:   DefaultWindows,
		Epsilon:   DefaultEpsilon,
		Scheme:    tangent.Default,
		Init:      InitRandom,
	}
}

// NewConfig returns c if it is valid and a *ConfigError otherwise.
func NewConfig(c Config) (Config, error) {
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	invalid := func(field, format string, args ...any) error {
		return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
	}

	switch {
	case c.Exponents <= 0:
		return invalid("exponents", "must be positive, got %d", c.Exponents)
	case c.Windows <= 0:
		return invalid("windows", "must be positive, got %d", c.Windows)
	case !positive(c.Dt):
		return invalid("dt", "must be positive, got %g", c.Dt)
	case !positive(c.BurnInDt):
		return invalid("burn-in dt", "must be positive, got %g", c.BurnInDt)
	case !positive(c.Window):
		return invalid("window", "must be positive, got %g", c.Window)
	case c.Dt > c.Window:
		return invalid("dt", "dt (%g) must not exceed the window length (%g)", c.Dt, c.Window)
	case math.IsNaN(c.T0) || math.IsNaN(c.BurnIn) || c.BurnIn < c.T0:
		return invalid("burn-in", "burn-in end (%g) must not precede the start time (%g)", c.BurnIn, c.T0)
	}

	switch c.Init {
	case InitRandom, InitUnit:
	default:
		return invalid("init", "must be %q or %q, got %q", InitRandom, InitUnit, c.Init)
	}

	if c.UseJacobian {
		if _, err := tangent.Lookup(c.Scheme); err != nil {
			return &ConfigError{Field: "scheme", Reason: err.Error()}
		}
	} else if !positive(c.Epsilon) {
		return invalid("epsilon", "must be positive, got %g", c.Epsilon)
	}

	return nil
}

// Method reports which estimator the configuration selects.
func (c Config) Method() Method {
	if c.UseJacobian {
		return TangentMap
	}
	return FullModel
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
