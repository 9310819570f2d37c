package config

import (
	"sort"

	"github.com/san-kum/equilib/internal/solver"
)

var Presets = map[string]*Config{
	"textbook": {
		Name: "textbook", Method: "closed",
		Demand: CurveConfig{Kind: KindLinear, Intercept: 100, Slope: -2},
		Supply: CurveConfig{Kind: KindLinear, Intercept: 20, Slope: 3},
		Solver: solver.DefaultConfig(), Grid: GridConfig{Max: 50, Points: 101},
	},
	"inelastic": {
		Name: "inelastic", Method: "closed",
		Demand: CurveConfig{Kind: KindLinear, Intercept: 200, Slope: -1},
		Supply: CurveConfig{Kind: KindLinear, Intercept: 20, Slope: 5},
		Solver: solver.DefaultConfig(), Grid: GridConfig{Max: 60, Points: 121},
	},
	"elastic": {
		Name: "elastic", Method: "closed",
		Demand: CurveConfig{Kind: KindLinear, Intercept: 100, Slope: -5},
		Supply: CurveConfig{Kind: KindLinear, Intercept: -20, Slope: 5},
		Solver: solver.DefaultConfig(), Grid: GridConfig{Max: 20, Points: 81},
	},
	"unit": {
		Name: "unit", Method: "newton",
		Demand: CurveConfig{Kind: KindPower, Scale: 1000, Exponent: -1},
		Supply: CurveConfig{Kind: KindLinear, Intercept: 0, Slope: 10},
		Solver: solver.Config{Tolerance: solver.DefaultTolerance, MaxIter: solver.DefaultMaxIter, Guess: 5},
		Grid:   GridConfig{Min: 1, Max: 30, Points: 117},
	},
	"power": {
		Name: "power", Method: "bisect",
		Demand: CurveConfig{Kind: KindPower, Scale: 400, Exponent: -1.5},
		Supply: CurveConfig{Kind: KindPower, Scale: 2, Exponent: 0.8},
		Solver: solver.DefaultConfig(), Grid: GridConfig{Min: 0.5, Max: 30, Points: 119},
	},
}

// GetPreset returns a copy of the named preset, or nil when unknown.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
