// Package stencil precomputes finite-difference coefficients for the
// discretized acoustic wave equation
//
//	p[t+1] = 2p[t] - p[t-1] + (dt^2 v^2) Laplacian(p[t])
//
// where the Laplacian is approximated per axis by a symmetric
// second-derivative stencil scaled by 1/dx^2.
package stencil

import (
	"fmt"
	"math"
)

// Supported spatial accuracy orders.
const (
	Order2 = 2
	Order4 = 4
)

// Coefficients is the fixed weight table consumed read-only by the update
// loop. Axis holds the 1D second-derivative weights, center first, then the
// symmetric side weights at offsets 1..HalfWidth. The weights are unscaled;
// the update divides by dx^2 once.
type Coefficients struct {
	Order     int
	HalfWidth int
	Center    float64
	Side      []float64
}

// New returns the weight table for the requested accuracy order. Only
// orders 2 and 4 are recognized.
func New(order int) (*Coefficients, error) {
	switch order {
	case Order2:
		return &Coefficients{
			Order:     Order2,
			HalfWidth: 1,
			Center:    -2.0,
			Side:      []float64{1.0},
		}, nil
	case Order4:
		return &Coefficients{
			Order:     Order4,
			HalfWidth: 2,
			Center:    -5.0 / 2.0,
			Side:      []float64{4.0 / 3.0, -1.0 / 12.0},
		}, nil
	default:
		return nil, &UnsupportedOrderError{Order: order}
	}
}

// Courant returns the scheme's stability constant C for a 2D grid, derived
// from the weight table. With S the absolute weight sum per axis, the worst
// 2D eigenvalue of the discrete Laplacian is 2S, and the three-level scheme
// is stable when (v dt / dx)^2 * 2S <= 4, i.e. v dt / dx <= sqrt(2/S).
// Order 2 gives 1/sqrt(2), order 4 sqrt(3/8).
func (c *Coefficients) Courant() float64 {
	s := math.Abs(c.Center)
	for _, w := range c.Side {
		s += 2 * math.Abs(w)
	}
	return math.Sqrt(2.0 / s)
}

// Laplacian applies the stencil to a flat row-major panel at (row, col).
// The caller guarantees the cell is at least HalfWidth away from every edge.
func (c *Coefficients) Laplacian(p []float64, cols, row, col int, invDx2 float64) float64 {
	i := row*cols + col
	sum := 2.0 * c.Center * p[i]
	for k, w := range c.Side {
		off := k + 1
		sum += w * (p[i-off] + p[i+off] + p[i-off*cols] + p[i+off*cols])
	}
	return sum * invDx2
}

// UnsupportedOrderError reports an accuracy order with no weight table.
type UnsupportedOrderError struct {
	Order int
}

func (e *UnsupportedOrderError) Error() string {
	return fmt.Sprintf("stencil: unsupported accuracy order %d (want 2 or 4)", e.Order)
}
