package market

import "fmt"

// parallelThreshold is the grid size above which Sample fans out.
const parallelThreshold = 4096

// Curves holds demand and supply evaluated over a shared price grid.
type Curves struct {
	Prices []float64 `json:"prices"`
	Demand []float64 `json:"demand"`
	Supply []float64 `json:"supply"`
}

// Len returns the number of grid points.
func (c Curves) Len() int { return len(c.Prices) }

// Sample evaluates demand and supply element-wise over prices.
// An empty grid yields empty curves. A negative or non-finite price is a
// domain error and no partial curves are returned.
func Sample(prices []float64, demand, supply PriceFunction) (Curves, error) {
	for i, p := range prices {
		if !isFinite(p) || p < 0 {
			return Curves{}, fmt.Errorf("price[%d]=%v: %w", i, p, ErrDomain)
		}
	}

	c := Curves{
		Prices: make([]float64, len(prices)),
		Demand: make([]float64, len(prices)),
		Supply: make([]float64, len(prices)),
	}
	copy(c.Prices, prices)

	ParallelFor(len(prices), parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			c.Demand[i] = demand.Quantity(prices[i])
			c.Supply[i] = supply.Quantity(prices[i])
		}
	})

	return c, nil
}

// Linspace returns n evenly spaced values over [lo, hi].
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi
	return out
}
