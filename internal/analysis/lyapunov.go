package analysis

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"runtime"
	"time"

	"gonum.org/v1/gonum/mat"
)

// Integrator advances a state over a strictly increasing time grid and
// returns the trajectory with one column per grid point. The estimators
// only read the last column. Implementations must be safe for concurrent
// calls: the full-model estimator integrates perturbed states in parallel.
type Integrator interface {
	Integrate(ts []float64, x0 []float64, params map[string]float64) (*mat.Dense, error)
}

type IntegratorFunc func(ts []float64, x0 []float64, params map[string]float64) (*mat.Dense, error)

func (f IntegratorFunc) Integrate(ts []float64, x0 []float64, params map[string]float64) (*mat.Dense, error) {
	return f(ts, x0, params)
}

// Jacobian returns the linearization of the vector field at x.
type Jacobian interface {
	Jacobian(x []float64, params map[string]float64) (*mat.Dense, error)
}

type JacobianFunc func(x []float64, params map[string]float64) (*mat.Dense, error)

func (f JacobianFunc) Jacobian(x []float64, params map[string]float64) (*mat.Dense, error) {
	return f(x, params)
}

// ProgressSink is advanced once per completed window when Config.Verbose
// is set. estimate is a fresh copy of the running normalized spectrum.
type ProgressSink interface {
	Advance(window, total int, estimate []float64)
}

type ProgressFunc func(window, total int, estimate []float64)

func (f ProgressFunc) Advance(window, total int, estimate []float64) { f(window, total, estimate) }

type logProgress struct {
	logger *slog.Logger
}

func (p logProgress) Advance(window, total int, estimate []float64) {
	p.logger.Info("window complete", "window", window, "of", total, "estimate", estimate)
}

// Method identifies the estimator variant.
type Method int

const (
	FullModel Method = iota
	TangentMap
)

func (m Method) String() string {
	switch m {
	case FullModel:
		return "full-model"
	case TangentMap:
		return "jacobian"
	default:
		return "unknown"
	}
}

// Result is the outcome of an estimation run.
type Result struct {
	// Spectrum has one entry per requested exponent. Entries beyond the state
	// dimension are NaN. A run that stopped early reports the average over
	// its completed windows, or nil if none completed.
	Spectrum []float64
	// History holds the running estimate after every window (exponents ×
	// windows). Nil unless Config.History was set.
	History   *mat.Dense
	Method    Method
	Clamped   bool
	Completed int // windows finished
}

func (r *Result) HasHistory() bool { return r.History != nil }

type options struct {
	jacobian Jacobian
	params   map[string]float64
	progress ProgressSink
	logger   *slog.Logger
	rng      *rand.Rand
	workers  int
}

type Option func(*options)

// WithJacobian supplies the linearization required by Config.UseJacobian.
func WithJacobian(j Jacobian) Option {
	return func(o *options) { o.jacobian = j }
}

// WithParams forwards named parameters to every integrator and Jacobian call.
func WithParams(params map[string]float64) Option {
	return func(o *options) { o.params = params }
}

func WithProgress(p ProgressSink) Option {
	return func(o *options) { o.progress = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRand sets the source for random initial directions. The estimator
// uses it from a single goroutine.
func WithRand(r *rand.Rand) Option {
	return func(o *options) { o.rng = r }
}

func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithWorkers bounds the goroutines propagating perturbed trajectories in
// the full-model estimator. Values below 1 mean GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Estimate computes the Lyapunov spectrum of the system advanced by integ
// from x0. It runs the full-model (finite-difference) estimator unless
// cfg.UseJacobian is set, in which case a Jacobian supplier must be given
// with WithJacobian.
//
// On failure the returned Result, when non-nil, carries the windows completed,
// any history recorded so far and, after at least one window, the spectrum
// averaged over the completed windows.
func Estimate(ctx context.Context, integ Integrator, x0 []float64, cfg Config, opts ...Option) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if integ == nil {
		return nil, &ConfigError{Field: "integrator", Reason: "no state integrator supplied"}
	}
	if len(x0) == 0 {
		return nil, ErrEmptyState
	}

	o := newOptions(opts)
	if cfg.UseJacobian && o.jacobian == nil {
		return nil, &ConfigError{Field: "jacobian", Reason: "required by the jacobian method", Err: ErrMissingJacobian}
	}
	if cfg.Verbose && o.progress == nil {
		o.progress = logProgress{logger: o.logger}
	}

	r := newRun(cfg, integ, len(x0), o)
	if cfg.UseJacobian {
		return r.tangentMap(ctx, x0)
	}
	return r.fullModel(ctx, x0)
}

// run is the state of one estimator call.
type run struct {
	cfg   Config
	integ Integrator
	opts  options

	nx        int
	m         int // live exponents, min(requested, nx)
	requested int

	lambda  []float64
	history *mat.Dense
	done    int
}

func newRun(cfg Config, integ Integrator, nx int, o options) *run {
	r := &run{
		cfg:       cfg,
		integ:     integ,
		opts:      o,
		nx:        nx,
		m:         cfg.Exponents,
		requested: cfg.Exponents,
	}
	if r.m > nx {
		o.logger.Warn("more exponents requested than state dimensions; padding with NaN",
			"requested", r.requested, "state_dim", nx)
		r.m = nx
	}
	r.lambda = make([]float64, r.m)
	if cfg.History {
		r.history = mat.NewDense(r.requested, cfg.Windows, nil)
		for i := r.m; i < r.requested; i++ {
			for j := 0; j < cfg.Windows; j++ {
				r.history.Set(i, j, math.NaN())
			}
		}
	}
	return r
}

// burnIn integrates from T0 to BurnIn at BurnInDt and returns the final state.
func (r *run) burnIn(x0 []float64) ([]float64, error) {
	u := make([]float64, len(x0))
	copy(u, x0)
	if r.cfg.BurnIn == r.cfg.T0 {
		return u, nil
	}

	ts := timeGrid(r.cfg.T0, r.cfg.BurnIn, r.cfg.BurnInDt)
	traj, err := r.integ.Integrate(ts, u, r.opts.params)
	if err != nil {
		return nil, &WindowError{Window: 0, Time: r.cfg.T0, Stage: "integrate", Wrapped: err}
	}
	u, err = finalState(traj, r.nx)
	if err != nil {
		return nil, &WindowError{Window: 0, Time: r.cfg.T0, Stage: "integrate", Wrapped: err}
	}
	return u, nil
}

// record folds one window's growth factors into the accumulator and
// publishes the running estimate normalized by norm.
func (r *run) record(window int, growth *mat.Dense, norm float64) {
	for i := 0; i < r.m; i++ {
		r.lambda[i] += math.Log(growth.At(i, i))
	}
	r.done = window

	if r.history != nil {
		for i := 0; i < r.m; i++ {
			r.history.Set(i, window-1, r.lambda[i]/float64(window)/norm)
		}
	}
	if r.cfg.Verbose && r.opts.progress != nil {
		r.opts.progress.Advance(window, r.cfg.Windows, r.normalized(window, norm))
	}
}

// normalized returns λ/j/norm padded with NaN to the requested length.
func (r *run) normalized(j int, norm float64) []float64 {
	out := make([]float64, r.requested)
	for i := range out {
		if i < r.m {
			out[i] = r.lambda[i] / float64(j) / norm
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

func (r *run) result(norm float64) *Result {
	return &Result{
		Spectrum:  r.normalized(r.cfg.Windows, norm),
		History:   r.history,
		Method:    r.cfg.Method(),
		Clamped:   r.m < r.requested,
		Completed: r.done,
	}
}

// partial is the result of a run that stopped early. Once a window has
// completed, the spectrum is normalized by the windows completed so far.
func (r *run) partial(norm float64) *Result {
	var spectrum []float64
	if r.done > 0 {
		spectrum = r.normalized(r.done, norm)
	}
	return &Result{
		Spectrum:  spectrum,
		History:   r.history,
		Method:    r.cfg.Method(),
		Clamped:   r.m < r.requested,
		Completed: r.done,
	}
}
