// Package elasticity computes price elasticities at a market point.
package elasticity

import (
	"fmt"
	"math"

	"github.com/san-kum/equilib/internal/market"
)

// unitTolerance is how close |e| must be to 1 to count as unit elastic.
const unitTolerance = 1e-9

// Point returns the point elasticity slope*price/quantity. Zero quantity
// leaves elasticity undefined and is reported as market.ErrDomain.
func Point(price, quantity, slope float64) (float64, error) {
	if quantity == 0 {
		return 0, fmt.Errorf("elasticity at zero quantity: %w", market.ErrDomain)
	}
	if !finite(price) || !finite(quantity) || !finite(slope) {
		return 0, fmt.Errorf("elasticity of non-finite input: %w", market.ErrDomain)
	}
	e := slope * price / quantity
	if !finite(e) {
		return 0, fmt.Errorf("elasticity overflow: %w", market.ErrDomain)
	}
	return e, nil
}

// At returns the elasticity of fn at pt, taking dQ/dP from fn itself.
func At(fn market.PriceFunction, pt market.Point) (float64, error) {
	return Point(pt.Price, pt.Quantity, market.Derivative(fn, pt.Price))
}

// Arc returns the midpoint arc elasticity between (p1, q1) and (p2, q2).
func Arc(p1, q1, p2, q2 float64) (float64, error) {
	dp := p2 - p1
	qm := q1 + q2
	if dp == 0 || qm == 0 {
		return 0, fmt.Errorf("arc elasticity with zero denominator: %w", market.ErrDomain)
	}
	return ((q2 - q1) / qm) / (dp / (p1 + p2)), nil
}

// Class describes elasticity magnitude relative to one.
type Class int

const (
	Inelastic Class = iota
	UnitElastic
	Elastic
)

func (c Class) String() string {
	switch c {
	case Inelastic:
		return "inelastic"
	case UnitElastic:
		return "unit elastic"
	case Elastic:
		return "elastic"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// Classify buckets e by |e| against one.
func Classify(e float64) Class {
	m := math.Abs(e)
	switch {
	case math.Abs(m-1) <= unitTolerance:
		return UnitElastic
	case m < 1:
		return Inelastic
	default:
		return Elastic
	}
}

// Report bundles demand and supply elasticity at an equilibrium.
type Report struct {
	Demand      float64 `json:"demand"`
	Supply      float64 `json:"supply"`
	DemandClass string  `json:"demand_class"`
	SupplyClass string  `json:"supply_class"`
}

// Evaluate computes both elasticities at pt.
func Evaluate(demand, supply market.PriceFunction, pt market.Point) (Report, error) {
	ed, err := At(demand, pt)
	if err != nil {
		return Report{}, fmt.Errorf("demand: %w", err)
	}
	es, err := At(supply, pt)
	if err != nil {
		return Report{}, fmt.Errorf("supply: %w", err)
	}
	return Report{
		Demand:      ed,
		Supply:      es,
		DemandClass: Classify(ed).String(),
		SupplyClass: Classify(es).String(),
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
