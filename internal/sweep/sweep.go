// Package sweep re-solves a market while one curve coefficient moves across
// a grid of values (comparative statics).
package sweep

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/equilib/internal/config"
	"github.com/san-kum/equilib/internal/elasticity"
	"github.com/san-kum/equilib/internal/market"
	"github.com/san-kum/equilib/internal/scenario"
)

var params = map[string]func(c *config.Config) *float64{
	"demand.intercept": func(c *config.Config) *float64 { return &c.Demand.Intercept },
	"demand.slope":     func(c *config.Config) *float64 { return &c.Demand.Slope },
	"demand.scale":     func(c *config.Config) *float64 { return &c.Demand.Scale },
	"demand.exponent":  func(c *config.Config) *float64 { return &c.Demand.Exponent },
	"supply.intercept": func(c *config.Config) *float64 { return &c.Supply.Intercept },
	"supply.slope":     func(c *config.Config) *float64 { return &c.Supply.Slope },
	"supply.scale":     func(c *config.Config) *float64 { return &c.Supply.Scale },
	"supply.exponent":  func(c *config.Config) *float64 { return &c.Supply.Exponent },
}

// Params lists the coefficients that can be swept.
func Params() []string {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Set assigns value to the named coefficient of cfg.
func Set(cfg *config.Config, param string, value float64) error {
	fn, ok := params[strings.ToLower(param)]
	if !ok {
		return fmt.Errorf("unknown parameter: %s (available: %s)", param, strings.Join(Params(), ", "))
	}
	*fn(cfg) = value
	return nil
}

// Get returns the current value of the named coefficient of cfg.
func Get(cfg *config.Config, param string) (float64, error) {
	fn, ok := params[strings.ToLower(param)]
	if !ok {
		return 0, fmt.Errorf("unknown parameter: %s", param)
	}
	return *fn(cfg), nil
}

// Row is the equilibrium at one sweep value. Err is set when the market has
// no valid equilibrium at that value.
type Row struct {
	Value      float64
	Point      market.Point
	Elasticity float64
	Class      elasticity.Class
	Err        error
}

type Sweep struct {
	param  string
	values []float64
}

func New(param string, values []float64) (*Sweep, error) {
	if _, ok := params[strings.ToLower(param)]; !ok {
		return nil, fmt.Errorf("unknown parameter: %s (available: %s)", param, strings.Join(Params(), ", "))
	}
	return &Sweep{param: param, values: values}, nil
}

// Run solves base once per value. Per-value failures are recorded on the row;
// only cancellation aborts the sweep.
func (s *Sweep) Run(ctx context.Context, base *config.Config) ([]Row, error) {
	rows := make([]Row, 0, len(s.values))

	for _, v := range s.values {
		if err := ctx.Err(); err != nil {
			return rows, err
		}

		cfg := *base
		if err := Set(&cfg, s.param, v); err != nil {
			return rows, err
		}

		rows = append(rows, solveRow(&cfg, v))
	}

	return rows, nil
}

func solveRow(cfg *config.Config, v float64) Row {
	row := Row{Value: v}

	m, err := scenario.New(cfg)
	if err != nil {
		row.Err = err
		return row
	}

	res, err := m.Solve()
	if err != nil {
		row.Err = err
		return row
	}
	row.Point = res.Point

	e, err := elasticity.At(m.Demand(), res.Point)
	if err != nil {
		row.Err = err
		return row
	}
	row.Elasticity = e
	row.Class = elasticity.Classify(e)
	return row
}
