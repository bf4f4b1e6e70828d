package engine

import (
	"errors"
	"fmt"
)

// Domain errors for simulation runs.
var (
	// ErrOverflow indicates the wavefield diverged during a run: NaN, Inf
	// or runaway amplitude was detected. The run halts; snapshots captured
	// before the failing step are retained.
	ErrOverflow = errors.New("engine: wavefield overflow (NaN or runaway amplitude)")

	// ErrUnstable indicates the configured time step violates the CFL
	// bound for the medium, spacing and stencil order.
	ErrUnstable = errors.New("engine: unstable configuration (time step exceeds CFL limit)")

	// ErrBadPhase indicates a lifecycle violation, e.g. starting a run on
	// an engine that is already running.
	ErrBadPhase = errors.New("engine: operation not valid in current phase")
)

// RunError wraps a run-time failure with the step it occurred at.
type RunError struct {
	Step int
	Time float64
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("step %d (t=%.6gs): %v", e.Step, e.Time, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
