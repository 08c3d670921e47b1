package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/lyapunov/internal/analysis"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "lorenz" {
		t.Errorf("expected model lorenz, got %s", cfg.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	a, err := cfg.ToAnalysis()
	if err != nil {
		t.Fatal(err)
	}
	if a != analysis.DefaultConfig() {
		t.Errorf("ToAnalysis() = %+v, want analysis defaults", a)
	}
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(`
model: rossler
params:
  c: 9
init_state: [0.5, 0, 0]
seed: 7
estimator:
  exponents: 3
  window: 0.5
  jacobian: true
  scheme: ralston4
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Model != "rossler" || cfg.Seed != 7 || cfg.Params["c"] != 9 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Integrator != DefaultIntegrator {
		t.Errorf("unset integrator = %q, want default", cfg.Integrator)
	}

	a, err := cfg.ToAnalysis()
	if err != nil {
		t.Fatal(err)
	}
	if a.Exponents != 3 || a.Window != 0.5 || !a.UseJacobian || a.Scheme != "ralston4" {
		t.Errorf("estimator = %+v", a)
	}
	if a.Dt != analysis.DefaultDt || a.Windows != analysis.DefaultWindows {
		t.Errorf("unset estimator fields lost their defaults: %+v", a)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse([]byte("# nothing here\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Model != DefaultModel {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown key", "modle: lorenz\n"},
		{"unknown estimator key", "estimator:\n  windowz: 3\n"},
		{"wrong type", "estimator:\n  exponents: many\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.doc)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = ""
	if err := cfg.Validate(); !errors.Is(err, ErrNoModel) {
		t.Errorf("got %v, want ErrNoModel", err)
	}

	cfg = DefaultConfig()
	cfg.Estimator.Dt = 2
	cfg.Estimator.Window = 1
	if err := cfg.Validate(); !errors.Is(err, analysis.ErrInvalidConfig) {
		t.Errorf("got %v, want ErrInvalidConfig", err)
	}

	cfg = DefaultConfig()
	cfg.Workers = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative workers accepted")
	}
}

func TestInitialState(t *testing.T) {
	cfg := DefaultConfig()
	fallback := []float64{1, 2, 3}

	got, err := cfg.InitialState(fallback)
	if err != nil {
		t.Fatal(err)
	}
	got[0] = 99
	if fallback[0] != 1 {
		t.Error("InitialState returned the fallback slice itself")
	}

	cfg.InitState = []float64{4, 5}
	if _, err := cfg.InitialState(fallback); !errors.Is(err, ErrStateDimension) {
		t.Errorf("got %v, want ErrStateDimension", err)
	}

	cfg.InitState = []float64{4, 5, 6}
	got, err = cfg.InitialState(fallback)
	if err != nil || got[2] != 6 {
		t.Errorf("got %v, %v", got, err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := GetPreset("duffing", "chaotic")
	cfg.Workers = 2
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Model != "duffing" || loaded.Workers != 2 || loaded.Params["gamma"] != 0.5 {
		t.Errorf("loaded %+v", loaded)
	}
	if loaded.Estimator != cfg.Estimator {
		t.Errorf("estimator = %+v, want %+v", loaded.Estimator, cfg.Estimator)
	}
}

func TestSaveLoadPresets(t *testing.T) {
	dir := t.TempDir()
	for _, model := range Models() {
		for _, name := range ListPresets(model) {
			t.Run(model+"/"+name, func(t *testing.T) {
				cfg := GetPreset(model, name)
				path := filepath.Join(dir, model+"-"+name+".yaml")
				if err := Save(path, cfg); err != nil {
					t.Fatal(err)
				}
				loaded, err := Load(path)
				if err != nil {
					t.Fatal(err)
				}
				if loaded.Estimator != cfg.Estimator {
					t.Errorf("estimator = %+v, want %+v", loaded.Estimator, cfg.Estimator)
				}
			})
		}
	}
}

func TestEmptySchemeNormalized(t *testing.T) {
	a := analysis.DefaultConfig()
	a.Scheme = ""
	if got := FromAnalysis(a).Scheme; got != "rk4" {
		t.Errorf("FromAnalysis scheme = %q, want rk4", got)
	}

	cfg, err := Parse([]byte("model: lorenz\nestimator:\n  scheme: \"\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Estimator.Scheme != "rk4" {
		t.Errorf("parsed scheme = %q, want rk4", cfg.Estimator.Scheme)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("got %v, want ErrNotExist", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("lorenz", "standard")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Estimator.Exponents != 3 {
		t.Errorf("expected 3 exponents, got %d", cfg.Estimator.Exponents)
	}

	cfg.Estimator.Windows = 1
	if GetPreset("lorenz", "standard").Estimator.Windows == 1 {
		t.Error("modifying a preset copy changed the preset table")
	}

	vdp := GetPreset("vanderpol", "limit_cycle")
	vdp.Params["mu"] = 3
	if Presets["vanderpol"]["limit_cycle"].Params["mu"] != 1 {
		t.Error("preset params shared with the copy")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	cfg := GetPreset("lorenz", "nonexistent")
	if cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}

	cfg = GetPreset("nonexistent", "standard")
	if cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("lorenz")
	if len(presets) != 2 || presets[0] != "jacobian" || presets[1] != "standard" {
		t.Errorf("lorenz presets = %v", presets)
	}

	presets = ListPresets("nonexistent")
	if presets != nil {
		t.Error("expected nil for nonexistent model")
	}
}
