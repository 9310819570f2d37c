package market

import (
	"errors"
	"fmt"
)

// Domain errors for equilibrium operations.
var (
	// ErrConfiguration indicates supply/demand parameters that cannot yield a
	// valid unique equilibrium.
	ErrConfiguration = errors.New("market: invalid configuration (no unique equilibrium)")

	// ErrDomain indicates an input outside the domain of the computation,
	// such as elasticity at zero quantity.
	ErrDomain = errors.New("market: value outside domain")

	// ErrConvergence indicates an iterative solver exhausted its iteration budget.
	ErrConvergence = errors.New("market: solver did not converge")
)

// SolveError wraps an error with solver context.
type SolveError struct {
	Method     string
	Iterations int
	Price      float64
	Wrapped    error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("%s: after %d iterations (p=%.6g): %v", e.Method, e.Iterations, e.Price, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
