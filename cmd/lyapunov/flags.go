package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/lyapunov/internal/analysis"
	"github.com/san-kum/lyapunov/internal/config"
	"github.com/spf13/cobra"
)

// Flags shared by spectrum and sweep. Only flags the user set override the
// run file or preset.
var (
	configFile string
	preset     string
	savePath   string
	integrator string
	adaptive   bool
	tolerance  float64
	seed       int64
	workers    int
	initState  []float64

	exponents   int
	t0          float64
	burnIn      float64
	dt          float64
	burnInDt    float64
	window      float64
	windows     int
	epsilon     float64
	scheme      string
	useJacobian bool
	initMode    string
	verbose     bool
)

func addRunFlags(cmd *cobra.Command) {
	d := analysis.DefaultConfig()
	f := cmd.Flags()

	f.StringVar(&configFile, "config", "", "run file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
	f.StringVar(&savePath, "save", "", "write the effective run file to this path")
	f.StringVar(&integrator, "integrator", config.DefaultIntegrator, "state integrator (euler, rk4, rk45)")
	f.BoolVar(&adaptive, "adaptive", false, "adaptive substeps between grid points")
	f.Float64Var(&tolerance, "tol", config.DefaultTolerance, "adaptive step tolerance")
	f.Int64Var(&seed, "seed", 0, "random seed for the initial directions (0: from the clock)")
	f.IntVar(&workers, "workers", 0, "parallel integrations (0: GOMAXPROCS)")
	f.Float64SliceVar(&initState, "state", nil, "initial state, comma separated")

	f.IntVarP(&exponents, "exponents", "m", d.Exponents, "number of exponents")
	f.Float64Var(&t0, "t0", d.T0, "start time")
	f.Float64Var(&burnIn, "burn", d.BurnIn, "time at which burn-in ends")
	f.Float64Var(&dt, "dt", d.Dt, "integration step during measurement")
	f.Float64Var(&burnInDt, "dtau", d.BurnInDt, "integration step during burn-in")
	f.Float64VarP(&window, "window", "T", d.Window, "time between re-orthonormalizations")
	f.IntVarP(&windows, "windows", "N", d.Windows, "number of windows")
	f.Float64Var(&epsilon, "eps", d.Epsilon, "finite-difference perturbation")
	f.StringVar(&scheme, "scheme", d.Scheme, "perturbation scheme for --jacobian")
	f.BoolVar(&useJacobian, "jacobian", false, "propagate directions with the Jacobian")
	f.StringVar(&initMode, "init", string(d.Init), "initial directions (random, unit)")
	f.BoolVarP(&verbose, "verbose", "v", false, "report progress per window")

	cmd.MarkFlagsMutuallyExclusive("config", "preset")
}

// resolveConfig builds the run from defaults, a preset or run file, the
// model argument and finally the flags that were set. params are name=value
// pairs merged over the file's parameters.
func resolveConfig(cmd *cobra.Command, args []string, params []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Model = args[0]
	}

	switch {
	case preset != "":
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
		}
		cfg = p
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Model = args[0]
		}
	}

	f := cmd.Flags()
	e := &cfg.Estimator
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if f.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
	if f.Changed("state") {
		cfg.InitState = initState
	}
	if f.Changed("exponents") {
		e.Exponents = exponents
	}
	if f.Changed("t0") {
		e.T0 = t0
	}
	if f.Changed("burn") {
		e.BurnIn = burnIn
	}
	if f.Changed("dt") {
		e.Dt = dt
	}
	if f.Changed("dtau") {
		e.BurnInDt = burnInDt
	}
	if f.Changed("window") {
		e.Window = window
	}
	if f.Changed("windows") {
		e.Windows = windows
	}
	if f.Changed("eps") {
		e.Epsilon = epsilon
	}
	if f.Changed("scheme") {
		e.Scheme = scheme
	}
	if f.Changed("jacobian") {
		e.Jacobian = useJacobian
	}
	if f.Changed("init") {
		e.Init = initMode
	}
	if f.Changed("verbose") {
		e.Verbose = verbose
	}
	if err := mergeParams(cfg, params); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if savePath != "" {
		if err := config.Save(savePath, cfg); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
	}
	return cfg, nil
}

// parseParams reads name=value pairs.
func parseParams(pairs []string) (map[string]float64, error) {
	params := make(map[string]float64, len(pairs))
	for _, kv := range pairs {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid parameter %q: %w", kv, err)
		}
		params[name] = v
	}
	return params, nil
}

func mergeParams(cfg *config.Config, pairs []string) error {
	params, err := parseParams(pairs)
	if err != nil {
		return err
	}
	if cfg.Params == nil {
		cfg.Params = make(map[string]float64, len(params))
	}
	for k, v := range params {
		cfg.Params[k] = v
	}
	return nil
}
