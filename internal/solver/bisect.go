package solver

import (
	"fmt"
	"math"

	"github.com/san-kum/equilib/internal/market"
)

// maxExpansions bounds bracket doubling when no bracket is configured.
const maxExpansions = 64

// Bisect solves by bracketing. Excess demand must change sign over
// [cfg.Lo, cfg.Hi]; when the bracket is unset it grows from [0, 1] by
// doubling the upper bound.
type Bisect struct{}

func (Bisect) Name() string { return "bisect" }

func (Bisect) Solve(demand, supply market.PriceFunction, cfg Config) (Result, error) {
	cfg = cfg.withDefaults()

	z := func(p float64) float64 { return market.ExcessDemand(demand, supply, p) }

	lo, hi := cfg.Lo, cfg.Hi
	if lo == 0 && hi == 0 {
		var err error
		lo, hi, err = expandBracket(z)
		if err != nil {
			return Result{}, err
		}
	}
	if lo < 0 || hi <= lo {
		return Result{}, fmt.Errorf("invalid bracket [%g, %g]: %w", lo, hi, market.ErrConfiguration)
	}

	zl, zh := z(lo), z(hi)
	if !finite(zl) || !finite(zh) {
		return Result{}, fmt.Errorf("non-finite excess demand on bracket: %w", market.ErrConfiguration)
	}
	if math.Abs(zl) <= cfg.Tolerance {
		return bisectResult(demand, lo, zl, 0), nil
	}
	if math.Abs(zh) <= cfg.Tolerance {
		return bisectResult(demand, hi, zh, 0), nil
	}
	if math.Signbit(zl) == math.Signbit(zh) {
		return Result{}, fmt.Errorf("no crossing in [%g, %g]: %w", lo, hi, market.ErrConfiguration)
	}

	mid := lo
	for i := 1; i <= cfg.MaxIter; i++ {
		mid = lo + (hi-lo)/2
		zm := z(mid)
		if math.Abs(zm) <= cfg.Tolerance {
			return bisectResult(demand, mid, zm, i), nil
		}
		if math.Signbit(zm) == math.Signbit(zl) {
			lo, zl = mid, zm
		} else {
			hi = mid
		}
	}

	return Result{}, &market.SolveError{
		Method:     "bisect",
		Iterations: cfg.MaxIter,
		Price:      mid,
		Wrapped:    market.ErrConvergence,
	}
}

func bisectResult(demand market.PriceFunction, p, zp float64, iters int) Result {
	return Result{
		Point:      market.Point{Price: p, Quantity: demand.Quantity(p)},
		Method:     "bisect",
		Iterations: iters,
		Residual:   math.Abs(zp),
	}
}

func expandBracket(z func(float64) float64) (float64, float64, error) {
	lo, hi := 0.0, 1.0
	zl := z(lo)
	for i := 0; i < maxExpansions; i++ {
		zh := z(hi)
		if zh == 0 || math.Signbit(zh) != math.Signbit(zl) {
			return lo, hi, nil
		}
		lo, zl = hi, zh
		hi *= 2
	}
	return 0, 0, fmt.Errorf("no sign change of excess demand up to price %g: %w", hi, market.ErrConfiguration)
}
