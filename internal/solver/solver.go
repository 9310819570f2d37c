package solver

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/equilib/internal/market"
)

const (
	DefaultTolerance = 1e-9
	DefaultMaxIter   = 100
	DefaultGuess     = 1.0
)

type Config struct {
	Tolerance float64 `yaml:"tolerance"`
	MaxIter   int     `yaml:"max_iter"`
	Guess     float64 `yaml:"guess"`
	Lo        float64 `yaml:"lo"`
	Hi        float64 `yaml:"hi"`
}

func DefaultConfig() Config {
	return Config{
		Tolerance: DefaultTolerance,
		MaxIter:   DefaultMaxIter,
		Guess:     DefaultGuess,
	}
}

func (c Config) withDefaults() Config {
	if c.Tolerance <= 0 {
		c.Tolerance = DefaultTolerance
	}
	if c.MaxIter <= 0 {
		c.MaxIter = DefaultMaxIter
	}
	if c.Guess <= 0 {
		c.Guess = DefaultGuess
	}
	return c
}

// Result is a solved equilibrium with diagnostics.
type Result struct {
	market.Point
	Method     string  `json:"method"`
	Iterations int     `json:"iterations"`
	Residual   float64 `json:"residual"`
}

// Method is an equilibrium solving strategy.
type Method interface {
	Name() string
	Solve(demand, supply market.PriceFunction, cfg Config) (Result, error)
}

var methods = map[string]func() Method{
	"closed": func() Method { return Closed{} },
	"bisect": func() Method { return Bisect{} },
	"newton": func() Method { return Newton{} },
	"auto":   func() Method { return Auto{} },
}

// Get returns the method registered under name.
func Get(name string) (Method, error) {
	fn, ok := methods[name]
	if !ok {
		return nil, fmt.Errorf("unknown method: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

// Names lists registered methods in sorted order.
func Names() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Auto solves linear markets in closed form and everything else by bisection.
type Auto struct{}

func (Auto) Name() string { return "auto" }

func (Auto) Solve(demand, supply market.PriceFunction, cfg Config) (Result, error) {
	if _, _, ok := asLinear(demand, supply); ok {
		return Closed{}.Solve(demand, supply, cfg)
	}
	return Bisect{}.Solve(demand, supply, cfg)
}

func residual(demand, supply market.PriceFunction, p float64) float64 {
	return math.Abs(market.ExcessDemand(demand, supply, p))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
