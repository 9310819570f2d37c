package solver

import (
	"fmt"
	"math"

	"github.com/san-kum/equilib/internal/market"
)

// Newton solves by Newton iteration on excess demand starting at cfg.Guess.
// Derivatives are analytic for market.Sloped curves and numeric otherwise.
// Steps that would leave the price domain are halved toward zero.
type Newton struct{}

func (Newton) Name() string { return "newton" }

func (Newton) Solve(demand, supply market.PriceFunction, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()

	p := cfg.Guess
	for i := 0; i <= cfg.MaxIter; i++ {
		zp := market.ExcessDemand(demand, supply, p)
		if !finite(zp) {
			return Result{}, newtonError(i, p, fmt.Errorf("excess demand not finite: %w", market.ErrConvergence))
		}
		if math.Abs(zp) <= cfg.Tolerance {
			return Result{
				Point:      market.Point{Price: p, Quantity: demand.Quantity(p)},
				Method:     "newton",
				Iterations: i,
				Residual:   math.Abs(zp),
			}, nil
		}
		if i == cfg.MaxIter {
			break
		}

		dz := market.Derivative(demand, p) - market.Derivative(supply, p)
		if dz == 0 || !finite(dz) {
			return Result{}, newtonError(i, p, fmt.Errorf("flat excess demand: %w", market.ErrConvergence))
		}

		next := p - zp/dz
		if next < 0 {
			next = p / 2
		}
		p = next
	}

	return Result{}, newtonError(cfg.MaxIter, p, market.ErrConvergence)
}

func newtonError(iters int, p float64, err error) error {
	return &market.SolveError{
		Method:     "newton",
		Iterations: iters,
		Price:      p,
		Wrapped:    err,
	}
}
