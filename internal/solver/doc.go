// Package solver finds the price at which demand meets supply.
//
// Affine curves are solved in closed form by [Linear], which is exact and
// cannot fail to converge. Arbitrary monotonic curves are handled by the
// iterative methods, which work on excess demand z(P) = D(P) - S(P):
//
//   - [Closed]: closed form, market.Linear curves only
//   - [Bisect]: bracketing on [Lo, Hi], expanding the bracket when unset
//   - [Newton]: Newton iteration from a starting guess
//
// Iterative methods stop once |z(P)| <= Config.Tolerance. Exhausting
// Config.MaxIter is reported as market.ErrConvergence rather than returning
// an approximate price.
package solver
