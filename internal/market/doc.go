// Package market provides the core primitives for partial-equilibrium analysis
// of a single market.
//
// The package defines the fundamental types shared by the solver, elasticity
// and rendering packages:
//
//   - [PriceFunction]: a pure mapping from price to quantity
//   - [Linear]: affine curve Q = Intercept + Slope*P
//   - [Power]: constant-elasticity curve Q = Scale*P^Exponent
//   - [Point]: an equilibrium (price, quantity) pair
//   - [Curves]: demand and supply sampled over a price grid
//
// # Example
//
//	demand := market.Linear{Intercept: 100, Slope: -2}
//	supply := market.Linear{Intercept: 20, Slope: 3}
//	curves, _ := market.Sample(market.Linspace(0, 50, 101), demand, supply)
//
// # Thread Safety
//
// All values are immutable after construction and safe for concurrent use.
package market
