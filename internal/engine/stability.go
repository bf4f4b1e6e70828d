package engine

import (
	"fmt"

	"github.com/san-kum/wavesim/internal/stencil"
)

// SafetyFactor scales the CFL limit when suggesting a default time step,
// leaving headroom against marginal stability.
const SafetyFactor = 0.8

// CheckStability validates dt against the CFL condition
// dt <= C dx / vmax, with C the scheme constant for the stencil order.
// Pure function; the engine invokes it once before a run begins.
func CheckStability(c *stencil.Coefficients, vmax, dx, dt float64) error {
	limit := c.Courant() * dx / vmax
	if dt > limit {
		return &UnstableError{Dt: dt, Limit: limit, Order: c.Order}
	}
	return nil
}

// SuggestDt returns a safely stable time step for the configuration.
func SuggestDt(c *stencil.Coefficients, vmax, dx float64) float64 {
	return SafetyFactor * c.Courant() * dx / vmax
}

// UnstableError reports a time step beyond the CFL limit, with enough
// context for the caller to correct the configuration.
type UnstableError struct {
	Dt    float64
	Limit float64
	Order int
}

func (e *UnstableError) Error() string {
	return fmt.Sprintf("engine: dt %g exceeds CFL limit %g for order-%d stencil",
		e.Dt, e.Limit, e.Order)
}

func (e *UnstableError) Unwrap() error { return ErrUnstable }
