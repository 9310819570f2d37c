package solver

import (
	"fmt"

	"github.com/san-kum/equilib/internal/market"
)

// Linear returns the intersection of two affine curves in closed form:
//
//	P* = (a - c) / (d - b),  Q* = a + b*P*
//
// for demand a + b*P and supply c + d*P. Demand must not slope up and supply
// must not slope down; equal slopes (including both flat) give zero or
// infinitely many intersections and are rejected. A negative equilibrium
// price or quantity is also a configuration error.
func Linear(demand, supply market.Linear) (market.Point, error) {
	if !demand.IsFinite() || !supply.IsFinite() {
		return market.Point{}, fmt.Errorf("non-finite coefficient: %w", market.ErrConfiguration)
	}
	if demand.Slope > 0 && supply.Slope > 0 {
		return market.Point{}, fmt.Errorf("both slopes positive: %w", market.ErrConfiguration)
	}
	if demand.Slope < 0 && supply.Slope < 0 {
		return market.Point{}, fmt.Errorf("both slopes negative: %w", market.ErrConfiguration)
	}
	if demand.Slope > 0 || supply.Slope < 0 {
		return market.Point{}, fmt.Errorf("demand must slope down and supply up: %w", market.ErrConfiguration)
	}

	denom := supply.Slope - demand.Slope
	if denom == 0 {
		return market.Point{}, fmt.Errorf("parallel curves: %w", market.ErrConfiguration)
	}

	p := (demand.Intercept - supply.Intercept) / denom
	if p < 0 {
		return market.Point{}, fmt.Errorf("intersection at negative price %.6g: %w", p, market.ErrConfiguration)
	}
	q := demand.Quantity(p)
	if !finite(p) || !finite(q) {
		return market.Point{}, fmt.Errorf("intersection overflows: %w", market.ErrConfiguration)
	}
	if q < 0 {
		return market.Point{}, fmt.Errorf("intersection at negative quantity %.6g: %w", q, market.ErrConfiguration)
	}

	return market.Point{Price: p, Quantity: q}, nil
}

// Closed adapts Linear to the Method interface.
type Closed struct{}

func (Closed) Name() string { return "closed" }

func (Closed) Solve(demand, supply market.PriceFunction, _ Config) (Result, error) {
	d, s, ok := asLinear(demand, supply)
	if !ok {
		return Result{}, fmt.Errorf("closed form needs linear curves, got %T and %T: %w", demand, supply, market.ErrConfiguration)
	}
	pt, err := Linear(d, s)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Point:    pt,
		Method:   "closed",
		Residual: residual(d, s, pt.Price),
	}, nil
}

func asLinear(demand, supply market.PriceFunction) (market.Linear, market.Linear, bool) {
	d, ok := linearOf(demand)
	if !ok {
		return market.Linear{}, market.Linear{}, false
	}
	s, ok := linearOf(supply)
	if !ok {
		return market.Linear{}, market.Linear{}, false
	}
	return d, s, true
}

func linearOf(fn market.PriceFunction) (market.Linear, bool) {
	switch v := fn.(type) {
	case market.Linear:
		return v, true
	case *market.Linear:
		if v == nil {
			return market.Linear{}, false
		}
		return *v, true
	}
	return market.Linear{}, false
}
