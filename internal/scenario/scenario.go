package scenario

import (
	"context"
	"fmt"

	"github.com/san-kum/equilib/internal/config"
	"github.com/san-kum/equilib/internal/elasticity"
	"github.com/san-kum/equilib/internal/market"
	"github.com/san-kum/equilib/internal/solver"
)

// Market is a fully resolved market ready to solve.
type Market struct {
	cfg    config.Config
	demand market.PriceFunction
	supply market.PriceFunction
	method solver.Method
}

// Outcome is everything computed for one market.
type Outcome struct {
	Name       string             `json:"name"`
	Demand     config.CurveConfig `json:"demand"`
	Supply     config.CurveConfig `json:"supply"`
	Result     solver.Result      `json:"result"`
	Elasticity elasticity.Report  `json:"elasticity"`
	Welfare    *market.Welfare    `json:"welfare,omitempty"`
	Curves     market.Curves      `json:"curves"`
}

func New(cfg *config.Config) (*Market, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	demand, err := cfg.DemandFunc()
	if err != nil {
		return nil, err
	}
	supply, err := cfg.SupplyFunc()
	if err != nil {
		return nil, err
	}
	method, err := solver.Get(cfg.Method)
	if err != nil {
		return nil, err
	}
	return &Market{cfg: *cfg, demand: demand, supply: supply, method: method}, nil
}

func (m *Market) Demand() market.PriceFunction { return m.demand }
func (m *Market) Supply() market.PriceFunction { return m.supply }
func (m *Market) Config() config.Config         { return m.cfg }

// Solve finds the equilibrium only.
func (m *Market) Solve() (solver.Result, error) {
	return m.method.Solve(m.demand, m.supply, m.cfg.Solver)
}

// Run solves the market, evaluates elasticities and welfare, and samples
// both curves over the configured grid.
func (m *Market) Run(ctx context.Context) (*Outcome, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := m.Solve()
	if err != nil {
		return nil, fmt.Errorf("%s: solve: %w", m.cfg.Name, err)
	}

	el, err := elasticity.Evaluate(m.demand, m.supply, res.Point)
	if err != nil {
		return nil, fmt.Errorf("%s: elasticity: %w", m.cfg.Name, err)
	}

	curves, err := market.Sample(m.cfg.Grid.Prices(res.Point), m.demand, m.supply)
	if err != nil {
		return nil, fmt.Errorf("%s: sample: %w", m.cfg.Name, err)
	}

	out := &Outcome{
		Name:       m.cfg.Name,
		Demand:     m.cfg.Demand,
		Supply:     m.cfg.Supply,
		Result:     res,
		Elasticity: el,
		Curves:     curves,
	}

	d, dok := m.demand.(market.Linear)
	s, sok := m.supply.(market.Linear)
	if dok && sok {
		w, err := market.Surplus(d, s, res.Point)
		if err == nil {
			out.Welfare = &w
		}
	}

	return out, nil
}
