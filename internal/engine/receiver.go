package engine

import (
	"fmt"

	"github.com/san-kum/wavesim/internal/medium"
)

// Receiver samples the pressure at one grid cell every step, producing a
// seismogram trace. It implements Observer.
type Receiver struct {
	Row, Col int

	idx     int
	times   []float64
	samples []float64
}

// NewReceiver validates the location against the grid.
func NewReceiver(g medium.Grid, row, col int) (*Receiver, error) {
	if !g.Contains(row, col) {
		return nil, fmt.Errorf("engine: receiver at (%d,%d) outside %dx%d grid",
			row, col, g.Rows, g.Cols)
	}
	return &Receiver{Row: row, Col: col, idx: g.Index(row, col)}, nil
}

func (r *Receiver) OnStep(step int, t float64, p []float64) {
	r.times = append(r.times, t)
	r.samples = append(r.samples, p[r.idx])
}

// Trace returns the recorded (time, pressure) series. The slices are the
// receiver's own; callers must not mutate them.
func (r *Receiver) Trace() (times, samples []float64) {
	return r.times, r.samples
}

// Len is the number of samples recorded so far.
func (r *Receiver) Len() int { return len(r.samples) }
