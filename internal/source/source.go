// Package source provides time-dependent point sources for wavefield
// simulations. A source couples a grid location with a wavelet, a pure
// function of elapsed time independent of grid state.
package source

import (
	"fmt"
	"math"

	"github.com/san-kum/wavesim/internal/medium"
)

// Wavelet is a source time function.
type Wavelet interface {
	// Amplitude evaluates the wavelet at simulation time t (seconds).
	Amplitude(t float64) float64
}

// Ricker is a zero-mean symmetric pulse, the usual synthetic seismic source:
//
//	w(t) = A (1 - 2 pi^2 f^2 (t-t0)^2) exp(-pi^2 f^2 (t-t0)^2)
//
// peaking at t = t0 with value A. A zero Delay defaults to 1/f so the pulse
// is effectively causal, starting near zero at t = 0.
type Ricker struct {
	Amp   float64
	Freq  float64
	Delay float64
}

func NewRicker(amp, freq, delay float64) *Ricker {
	if delay == 0 {
		delay = 1.0 / freq
	}
	return &Ricker{Amp: amp, Freq: freq, Delay: delay}
}

func (w *Ricker) Amplitude(t float64) float64 {
	a := math.Pi * w.Freq * (t - w.Delay)
	a *= a
	return w.Amp * (1 - 2*a) * math.Exp(-a)
}

// Gaussian is the smooth bell pulse the Ricker derives from:
//
//	w(t) = A exp(-pi^2 f^2 (t-t0)^2)
//
// Same causal default delay as Ricker.
type Gaussian struct {
	Amp   float64
	Freq  float64
	Delay float64
}

func NewGaussian(amp, freq, delay float64) *Gaussian {
	if delay == 0 {
		delay = 1.0 / freq
	}
	return &Gaussian{Amp: amp, Freq: freq, Delay: delay}
}

func (w *Gaussian) Amplitude(t float64) float64 {
	a := math.Pi * w.Freq * (t - w.Delay)
	return w.Amp * math.Exp(-a*a)
}

// Func adapts an arbitrary time function to the Wavelet interface.
type Func func(t float64) float64

func (f Func) Amplitude(t float64) float64 { return f(t) }

// Source is a wavelet anchored at a grid cell.
type Source struct {
	Row     int
	Col     int
	Wavelet Wavelet
}

// New validates the location against the grid at registration time.
func New(g medium.Grid, row, col int, w Wavelet) (*Source, error) {
	if !g.Contains(row, col) {
		return nil, &OutOfBoundsError{Row: row, Col: col, Rows: g.Rows, Cols: g.Cols}
	}
	return &Source{Row: row, Col: col, Wavelet: w}, nil
}

// Inject adds the source's current contribution to a flat row-major panel.
// Additive: co-located sources accumulate.
func (s *Source) Inject(p []float64, cols int, t float64) {
	p[s.Row*cols+s.Col] += s.Wavelet.Amplitude(t)
}

// OutOfBoundsError reports a source location outside the grid.
type OutOfBoundsError struct {
	Row, Col   int
	Rows, Cols int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("source: location (%d,%d) outside %dx%d grid",
		e.Row, e.Col, e.Rows, e.Cols)
}
