package market

import (
	"fmt"
	"math"
)

// PriceFunction maps a price to a quantity.
type PriceFunction interface {
	Quantity(p float64) float64
}

// Sloped is implemented by price functions with an analytic derivative.
type Sloped interface {
	Derivative(p float64) float64
}

// Linear is the affine curve Q = Intercept + Slope*P.
// Downward sloping demand has a negative Slope.
type Linear struct {
	Intercept float64 `json:"intercept" yaml:"intercept"`
	Slope     float64 `json:"slope" yaml:"slope"`
}

func (l Linear) Quantity(p float64) float64 {
	return l.Intercept + l.Slope*p
}

// Derivative returns the constant dQ/dP.
func (l Linear) Derivative(float64) float64 {
	return l.Slope
}

func (l Linear) String() string {
	if l.Slope < 0 {
		return fmt.Sprintf("Q = %g - %gP", l.Intercept, -l.Slope)
	}
	return fmt.Sprintf("Q = %g + %gP", l.Intercept, l.Slope)
}

// IsFinite reports whether both coefficients are finite.
func (l Linear) IsFinite() bool {
	return isFinite(l.Intercept) && isFinite(l.Slope)
}

// Power is the constant-elasticity curve Q = Scale*P^Exponent.
// A negative Exponent gives demand, a positive one supply.
type Power struct {
	Scale    float64 `json:"scale" yaml:"scale"`
	Exponent float64 `json:"exponent" yaml:"exponent"`
}

func (w Power) Quantity(p float64) float64 {
	if p <= 0 {
		p = minPrice
	}
	return w.Scale * math.Pow(p, w.Exponent)
}

func (w Power) Derivative(p float64) float64 {
	if p <= 0 {
		p = minPrice
	}
	return w.Scale * w.Exponent * math.Pow(p, w.Exponent-1)
}

func (w Power) String() string {
	return fmt.Sprintf("Q = %gP^%g", w.Scale, w.Exponent)
}

// minPrice keeps power curves finite at zero price.
const minPrice = 1e-9

// Point is a market equilibrium.
type Point struct {
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
}

// Check reports whether demand and supply agree at p.Price within tol.
func (p Point) Check(demand, supply PriceFunction, tol float64) bool {
	return math.Abs(demand.Quantity(p.Price)-supply.Quantity(p.Price)) <= tol
}

func (p Point) String() string {
	return fmt.Sprintf("P=%.4f Q=%.4f", p.Price, p.Quantity)
}

// ExcessDemand returns demand minus supply at price p.
func ExcessDemand(demand, supply PriceFunction, p float64) float64 {
	return demand.Quantity(p) - supply.Quantity(p)
}

// Derivative returns dQ/dP at p, analytically when fn implements Sloped and by
// central difference otherwise.
func Derivative(fn PriceFunction, p float64) float64 {
	if s, ok := fn.(Sloped); ok {
		return s.Derivative(p)
	}
	h := 1e-6 * math.Max(1, math.Abs(p))
	lo := p - h
	if lo < 0 {
		lo = 0
	}
	return (fn.Quantity(p+h) - fn.Quantity(lo)) / (p + h - lo)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
