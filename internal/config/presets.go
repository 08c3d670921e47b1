package config

import "sort"

// Presets holds ready-made runs keyed by model and preset name.
var Presets = map[string]map[string]*Config{
	"lorenz": {
		"standard": {
			Model: "lorenz", Integrator: "rk4", Seed: 1,
			Estimator: EstimatorConfig{
				Exponents: 3, BurnIn: 10, Dt: 0.01, BurnInDt: 0.01,
				Window: 0.1, Windows: 10000, Epsilon: 1e-6, Scheme: "rk4", Init: "random",
			},
		},
		"jacobian": {
			Model: "lorenz", Integrator: "rk4", Seed: 1,
			Estimator: EstimatorConfig{
				Exponents: 3, BurnIn: 10, Dt: 0.01, BurnInDt: 0.01,
				Window: 0.01, Windows: 100000, Epsilon: 1e-6,
				Jacobian: true, Scheme: "rk4", Init: "random",
			},
		},
	},
	"rossler": {
		"standard": {
			Model: "rossler", Integrator: "rk4", Seed: 1,
			Estimator: EstimatorConfig{
				Exponents: 3, BurnIn: 50, Dt: 0.01, BurnInDt: 0.01,
				Window: 0.5, Windows: 4000, Epsilon: 1e-6, Scheme: "rk4", Init: "random",
			},
		},
	},
	"duffing": {
		"chaotic": {
			Model: "duffing", Integrator: "rk4", Seed: 1,
			Params:    map[string]float64{"alpha": -1, "beta": 1, "delta": 0.3, "gamma": 0.5, "omega": 1.2},
			Estimator: EstimatorConfig{
				Exponents: 3, BurnIn: 100, Dt: 0.01, BurnInDt: 0.01,
				Window: 0.5, Windows: 4000, Epsilon: 1e-6, Scheme: "rk4", Init: "random",
			},
		},
	},
	"vanderpol": {
		"limit_cycle": {
			Model: "vanderpol", Integrator: "rk4", Seed: 1,
			Params:    map[string]float64{"mu": 1},
			Estimator: EstimatorConfig{
				Exponents: 2, BurnIn: 20, Dt: 0.01, BurnInDt: 0.01,
				Window: 0.5, Windows: 2000, Epsilon: 1e-6, Scheme: "rk4", Init: "random",
			},
		},
	},
	"pendulum": {
		"chaotic": {
			Model: "pendulum", Integrator: "rk4", Seed: 1,
			Estimator: EstimatorConfig{
				Exponents: 3, BurnIn: 100, Dt: 0.01, BurnInDt: 0.01,
				Window: 0.5, Windows: 4000, Epsilon: 1e-6, Scheme: "rk4", Init: "random",
			},
		},
	},
	"linear": {
		"decay": {
			Model: "linear", Integrator: "rk4",
			Params:    map[string]float64{"a0": -0.5},
			InitState: []float64{1},
			Estimator: EstimatorConfig{
				Exponents: 1, Dt: 0.01, BurnInDt: 0.01,
				Window: 1, Windows: 100, Epsilon: 1e-6, Scheme: "rk4", Init: "unit",
			},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Models() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
