package market

// Welfare holds consumer and producer surplus at an equilibrium.
type Welfare struct {
	Consumer float64 `json:"consumer_surplus"`
	Producer float64 `json:"producer_surplus"`
}

// Total returns the sum of consumer and producer surplus.
func (w Welfare) Total() float64 { return w.Consumer + w.Producer }

// Surplus computes welfare triangles for linear curves at the equilibrium p.
// Demand must slope down and supply up.
func Surplus(demand, supply Linear, p Point) (Welfare, error) {
	if demand.Slope >= 0 || supply.Slope <= 0 {
		return Welfare{}, ErrConfiguration
	}

	// choke price where demand reaches zero
	choke := -demand.Intercept / demand.Slope
	// reservation price where supply starts, floored at zero
	reserve := -supply.Intercept / supply.Slope
	if reserve < 0 {
		reserve = 0
	}

	w := Welfare{
		Consumer: 0.5 * (choke - p.Price) * p.Quantity,
		Producer: 0.5 * (p.Price - reserve) * p.Quantity,
	}
	if supply.Intercept > 0 {
		// supply curve crosses the quantity axis above zero; the region
		// between price 0 and P* is a trapezoid
		w.Producer = 0.5 * (supply.Intercept + p.Quantity) * p.Price
	}
	return w, nil
}
