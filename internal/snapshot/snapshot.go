// Package snapshot records wavefield frames during a simulation run and
// exposes them to consumers (storage, rendering) as a lazy, restartable
// sequence. The recorder never aliases live simulation memory: every frame
// is an independent copy.
package snapshot

import (
	"fmt"
	"iter"

	"github.com/san-kum/wavesim/internal/medium"
)

// Frame is one captured wavefield: the step index it was taken at and a
// flat row-major copy of the pressure panel.
type Frame struct {
	Step int
	Data []float64
}

// At reads a cell of the frame.
func (f Frame) At(g medium.Grid, row, col int) float64 {
	return f.Data[g.Index(row, col)]
}

// Recorder accumulates frames in strictly increasing step order. Append
// only; existing entries are never mutated.
type Recorder struct {
	grid   medium.Grid
	frames []Frame
}

func NewRecorder(g medium.Grid) *Recorder {
	return &Recorder{grid: g}
}

// Grid returns the metadata consumers need to interpret frames.
func (r *Recorder) Grid() medium.Grid { return r.grid }

// Record stores an independent copy of p keyed by step. Steps must arrive
// in strictly increasing order.
func (r *Recorder) Record(step int, p []float64) error {
	if n := len(r.frames); n > 0 && step <= r.frames[n-1].Step {
		return fmt.Errorf("snapshot: step %d not after %d", step, r.frames[n-1].Step)
	}
	data := make([]float64, len(p))
	copy(data, p)
	r.frames = append(r.frames, Frame{Step: step, Data: data})
	return nil
}

// Len is the number of captured frames.
func (r *Recorder) Len() int { return len(r.frames) }

// Frame returns the i-th captured frame.
func (r *Recorder) Frame(i int) Frame { return r.frames[i] }

// Last returns the most recent frame, if any.
func (r *Recorder) Last() (Frame, bool) {
	if len(r.frames) == 0 {
		return Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// All iterates (step, frame data) pairs in capture order. The sequence is
// finite and restartable: ranging twice yields the same pairs.
func (r *Recorder) All() iter.Seq2[int, []float64] {
	return func(yield func(int, []float64) bool) {
		for _, f := range r.frames {
			if !yield(f.Step, f.Data) {
				return
			}
		}
	}
}

// Clear drops all captured frames.
func (r *Recorder) Clear() { r.frames = nil }
