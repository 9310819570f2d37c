package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/equilib/internal/market"
	"github.com/san-kum/equilib/internal/solver"
)

const (
	DefaultDemandIntercept = 100.0
	DefaultDemandSlope     = -2.0
	DefaultSupplyIntercept = 20.0
	DefaultSupplySlope     = 3.0
	DefaultGridPoints      = 101
	DefaultMethod          = "auto"

	KindLinear = "linear"
	KindPower  = "power"
)

type Config struct {
	Name   string        `yaml:"name"`
	Method string        `yaml:"method"`
	Demand CurveConfig   `yaml:"demand"`
	Supply CurveConfig   `yaml:"supply"`
	Solver solver.Config `yaml:"solver"`
	Grid   GridConfig    `yaml:"grid"`
}

type CurveConfig struct {
	Kind      string  `yaml:"kind"`
	Intercept float64 `yaml:"intercept"`
	Slope     float64 `yaml:"slope"`
	Scale     float64 `yaml:"scale,omitempty"`
	Exponent  float64 `yaml:"exponent,omitempty"`
}

// GridConfig is the price grid used for sampling. A zero Max means the grid
// is sized around the equilibrium.
type GridConfig struct {
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
	Points int     `yaml:"points"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:   "textbook",
		Method: DefaultMethod,
		Demand: CurveConfig{Kind: KindLinear, Intercept: DefaultDemandIntercept, Slope: DefaultDemandSlope},
		Supply: CurveConfig{Kind: KindLinear, Intercept: DefaultSupplyIntercept, Slope: DefaultSupplySlope},
		Solver: solver.DefaultConfig(),
		Grid:   GridConfig{Points: DefaultGridPoints},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of base. Keys missing from the file keep base values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Func builds the price function described by c.
func (c CurveConfig) Func() (market.PriceFunction, error) {
	switch c.Kind {
	case "", KindLinear:
		return market.Linear{Intercept: c.Intercept, Slope: c.Slope}, nil
	case KindPower:
		if c.Scale <= 0 {
			return nil, fmt.Errorf("power curve needs positive scale, got %g: %w", c.Scale, market.ErrConfiguration)
		}
		return market.Power{Scale: c.Scale, Exponent: c.Exponent}, nil
	default:
		return nil, fmt.Errorf("unknown curve kind: %s", c.Kind)
	}
}

func (c *Config) DemandFunc() (market.PriceFunction, error) {
	fn, err := c.Demand.Func()
	if err != nil {
		return nil, fmt.Errorf("demand: %w", err)
	}
	return fn, nil
}

func (c *Config) SupplyFunc() (market.PriceFunction, error) {
	fn, err := c.Supply.Func()
	if err != nil {
		return nil, fmt.Errorf("supply: %w", err)
	}
	return fn, nil
}

func (c *Config) Validate() error {
	if _, err := solver.Get(c.Method); err != nil {
		return err
	}
	if _, err := c.DemandFunc(); err != nil {
		return err
	}
	if _, err := c.SupplyFunc(); err != nil {
		return err
	}
	if c.Grid.Points < 0 {
		return fmt.Errorf("grid points must be non-negative, got %d", c.Grid.Points)
	}
	if c.Grid.Min < 0 {
		return fmt.Errorf("grid min must be non-negative, got %g", c.Grid.Min)
	}
	if c.Grid.Max != 0 && c.Grid.Max <= c.Grid.Min {
		return fmt.Errorf("grid max %g must exceed min %g", c.Grid.Max, c.Grid.Min)
	}
	return nil
}

// Prices returns the sampling grid, spanning twice the equilibrium price
// when no explicit maximum is configured.
func (g GridConfig) Prices(eq market.Point) []float64 {
	hi := g.Max
	if hi == 0 {
		hi = 2 * eq.Price
		if hi <= g.Min {
			hi = g.Min + 1
		}
	}
	n := g.Points
	if n == 0 {
		n = DefaultGridPoints
	}
	return market.Linspace(g.Min, hi, n)
}
