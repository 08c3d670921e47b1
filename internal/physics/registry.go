package physics

import (
	"fmt"
	"sort"

	"github.com/san-kum/lyapunov/internal/dynamo"
)

// Model is what the registry hands out: a system with a Jacobian, tunable
// parameters and a sensible starting point.
type Model interface {
	dynamo.System
	dynamo.Linearizable
	dynamo.Configurable
	dynamo.Cloner
	DefaultState() dynamo.State
}

var models = map[string]func() Model{
	"lorenz":    func() Model { return NewLorenz() },
	"rossler":   func() Model { return NewRossler() },
	"duffing":   func() Model { return NewDuffing() },
	"vanderpol": func() Model { return NewVanDerPol() },
	"pendulum":  func() Model { return NewPendulum() },
	"linear":    func() Model { return NewLinear(-1) },
}

// New returns a fresh instance of the named model.
func New(name string) (Model, error) {
	fn, ok := models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
