package medium

import "errors"

// ErrInvalidMedium indicates physically implausible construction inputs:
// mismatched field shapes, non-positive velocity or density, or a bad grid.
var ErrInvalidMedium = errors.New("medium: invalid medium")

// InvalidMediumError carries the specific construction failure.
type InvalidMediumError struct {
	Reason string
	Err    error
}

func (e *InvalidMediumError) Error() string {
	return "medium: " + e.Reason
}

func (e *InvalidMediumError) Unwrap() error { return e.Err }
