package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/san-kum/lyapunov/internal/analysis"
	"github.com/san-kum/lyapunov/internal/tangent"
	"gopkg.in/yaml.v3"
)

const (
	DefaultModel      = "lorenz"
	DefaultIntegrator = "rk4"
	DefaultTolerance  = 1e-6
)

var (
	ErrNoModel        = errors.New("config: model must be set")
	ErrStateDimension = errors.New("config: init_state does not match the model dimension")
)

// Config is a run file: which system to analyse, how to integrate it, and
// the estimator settings.
type Config struct {
	Model      string             `yaml:"model"`
	Integrator string             `yaml:"integrator"`
	Adaptive   bool               `yaml:"adaptive,omitempty"`
	Tolerance  float64            `yaml:"tolerance,omitempty"`
	Params     map[string]float64 `yaml:"params,omitempty"`
	InitState  []float64          `yaml:"init_state,omitempty"`
	Seed       int64              `yaml:"seed,omitempty"` // 0 draws a seed from the clock
	Workers    int                `yaml:"workers,omitempty"`
	Estimator  EstimatorConfig    `yaml:"estimator"`
}

// EstimatorConfig mirrors analysis.Config with YAML names.
type EstimatorConfig struct {
	Exponents int     `yaml:"exponents"`
	T0        float64 `yaml:"t0"`
	BurnIn    float64 `yaml:"burn_in"`
	Dt        float64 `yaml:"dt"`
	BurnInDt  float64 `yaml:"burn_in_dt"`
	Window    float64 `yaml:"window"`
	Windows   int     `yaml:"windows"`
	Epsilon   float64 `yaml:"epsilon"`
	Jacobian  bool    `yaml:"jacobian"`
	Scheme    string  `yaml:"scheme"`
	Init      string  `yaml:"init"`
	History   bool    `yaml:"history,omitempty"`
	Verbose   bool    `yaml:"verbose,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      DefaultModel,
		Integrator: DefaultIntegrator,
		Tolerance:  DefaultTolerance,
		Estimator:  FromAnalysis(analysis.DefaultConfig()),
	}
}

// FromAnalysis converts estimator settings to their file form. An empty
// scheme is written out as tangent.Default.
func FromAnalysis(a analysis.Config) EstimatorConfig {
	if a.Scheme == "" {
		a.Scheme = tangent.Default
	}
	return EstimatorConfig{
		Exponents: a.Exponents,
		T0:        a.T0,
		BurnIn:    a.BurnIn,
		Dt:        a.Dt,
		BurnInDt:  a.BurnInDt,
		Window:    a.Window,
		Windows:   a.Windows,
		Epsilon:   a.Epsilon,
		Jacobian:  a.UseJacobian,
		Scheme:    a.Scheme,
		Init:      string(a.Init),
		History:   a.History,
		Verbose:   a.Verbose,
	}
}

// ToAnalysis returns the validated estimator configuration.
func (c *Config) ToAnalysis() (analysis.Config, error) {
	e := c.Estimator
	return analysis.NewConfig(analysis.Config{
		Exponents:   e.Exponents,
		T0:          e.T0,
		BurnIn:      e.BurnIn,
		Dt:          e.Dt,
		BurnInDt:    e.BurnInDt,
		Window:      e.Window,
		Windows:     e.Windows,
		Epsilon:     e.Epsilon,
		UseJacobian: e.Jacobian,
		Scheme:      e.Scheme,
		Init:        analysis.Init(e.Init),
		History:     e.History,
		Verbose:     e.Verbose,
	})
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return ErrNoModel
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	_, err := c.ToAnalysis()
	return err
}

// InitialState returns init_state, or a copy of fallback when the file does
// not set one.
func (c *Config) InitialState(fallback []float64) ([]float64, error) {
	if len(c.InitState) == 0 {
		return slices.Clone(fallback), nil
	}
	if len(c.InitState) != len(fallback) {
		return nil, fmt.Errorf("%w: got %d values, %s has %d", ErrStateDimension, len(c.InitState), c.Model, len(fallback))
	}
	return slices.Clone(c.InitState), nil
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	out.InitState = slices.Clone(c.InitState)
	return &out
}

// Load reads a run file on top of DefaultConfig. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.Estimator.Scheme == "" {
		cfg.Estimator.Scheme = tangent.Default
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
