// Package engine advances a 2D acoustic wavefield through time with an
// explicit finite-difference scheme:
//
//	p[t+1] = 2p[t] - p[t-1] + (dt^2 v^2) Laplacian(p[t])
//
// Each step injects the registered sources, applies the stencil update
// (tile-parallel over row bands), applies the boundary condition, and
// optionally records a snapshot. Runs are resumable: a completed engine can
// be run again and continues simulation time and snapshot numbering.
//
// Engine instances are not safe for concurrent use; the wavefield is
// exclusively owned by the active run.
package engine

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/wavesim/internal/boundary"
	"github.com/san-kum/wavesim/internal/medium"
	"github.com/san-kum/wavesim/internal/snapshot"
	"github.com/san-kum/wavesim/internal/source"
	"github.com/san-kum/wavesim/internal/stencil"
)

// Phase is the engine lifecycle state.
type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseReady
	PhaseRunning
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseRunning:
		return "running"
	case PhaseCompleted:
		return "completed"
	default:
		return "uninitialized"
	}
}

const (
	// Amplitudes at or beyond this magnitude count as divergence even
	// before they reach Inf.
	overflowLimit = 1e100

	// Full-field validity scan cadence, in steps.
	checkInterval = 8

	// Minimum rows per parallel tile; below this the fan-out overhead
	// dominates.
	minRowsPerTile = 8
)

// Observer is notified after every completed step with the fresh panel.
// The slice is live simulation memory: observers must copy what they keep.
type Observer interface {
	OnStep(step int, t float64, p []float64)
}

// Result summarizes one Run call. Frames is the engine's recorder and
// accumulates across resumed runs.
type Result struct {
	StepsTaken int
	LastStep   int
	Frames     *snapshot.Recorder
}

// Engine owns the wavefield state and orchestrates the run.
type Engine struct {
	med  *medium.Medium
	grid medium.Grid
	coef *stencil.Coefficients
	bc   boundary.Condition
	dt   float64

	sources   []*source.Source
	observers []Observer

	// Three time levels of pressure, flat row-major. Rotated every step.
	prev, cur, next []float64

	it    int // global step index across resumed runs
	phase Phase
	rec   *snapshot.Recorder
}

// New builds an engine over an immutable medium. A nil boundary condition
// defaults to the damping taper; a non-positive dt defaults to the safe step
// suggested by the CFL bound. The engine starts in the Ready phase with a
// zero wavefield.
func New(med *medium.Medium, coef *stencil.Coefficients, bc boundary.Condition, dt float64) (*Engine, error) {
	if med == nil {
		return nil, fmt.Errorf("engine: nil medium")
	}
	if coef == nil {
		return nil, fmt.Errorf("engine: nil stencil coefficients")
	}
	g := med.Grid()
	if g.Rows < 2*coef.HalfWidth+1 || g.Cols < 2*coef.HalfWidth+1 {
		return nil, fmt.Errorf("engine: grid %dx%d too small for stencil half-width %d",
			g.Rows, g.Cols, coef.HalfWidth)
	}
	if bc == nil {
		bc = boundary.NewDamping(0, 0)
	}
	if dt <= 0 {
		dt = SuggestDt(coef, med.MaxVelocity(), g.Spacing)
	}

	n := g.Size()
	return &Engine{
		med:   med,
		grid:  g,
		coef:  coef,
		bc:    bc,
		dt:    dt,
		prev:  make([]float64, n),
		cur:   make([]float64, n),
		next:  make([]float64, n),
		phase: PhaseReady,
		rec:   snapshot.NewRecorder(g),
	}, nil
}

// AddSource registers a point source and returns its handle. Fails if the
// location is off the grid.
func (e *Engine) AddSource(row, col int, w source.Wavelet) (*source.Source, error) {
	s, err := source.New(e.grid, row, col, w)
	if err != nil {
		return nil, err
	}
	e.sources = append(e.sources, s)
	return s, nil
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

func (e *Engine) Grid() medium.Grid          { return e.grid }
func (e *Engine) Dt() float64                { return e.dt }
func (e *Engine) Phase() Phase               { return e.phase }
func (e *Engine) StepIndex() int             { return e.it }
func (e *Engine) Time() float64              { return float64(e.it) * e.dt }
func (e *Engine) Frames() *snapshot.Recorder { return e.rec }

// Field returns a copy of the current pressure panel.
func (e *Engine) Field() []float64 {
	p := make([]float64, len(e.cur))
	copy(p, e.cur)
	return p
}

// RMS is the root-mean-square pressure of the current panel.
func (e *Engine) RMS() float64 {
	return floats.Norm(e.cur, 2) / math.Sqrt(float64(len(e.cur)))
}

// Energy is the acoustic energy diagnostic E = sum p^2/(2 rho v^2) dx^2
// over the current panel.
func (e *Engine) Energy() float64 {
	dx2 := e.grid.Spacing * e.grid.Spacing
	sum := 0.0
	for i, p := range e.cur {
		v := e.med.VelocityAt(i)
		sum += p * p / (2 * e.med.DensityAt(i) * v * v)
	}
	return sum * dx2
}

// Run advances the simulation by steps, recording a frame whenever the
// global step index is a multiple of cadence (cadence <= 0 disables
// recording). The stability check gates the Ready->Running transition.
// Cancellation via ctx is cooperative, checked between steps; snapshots
// captured so far are preserved and the engine returns to Ready.
func (e *Engine) Run(ctx context.Context, steps, cadence int) (*Result, error) {
	if e.phase == PhaseUninitialized || e.phase == PhaseRunning {
		return nil, fmt.Errorf("engine: cannot run in phase %s: %w", e.phase, ErrBadPhase)
	}
	if steps <= 0 {
		return nil, fmt.Errorf("engine: steps must be positive, got %d", steps)
	}
	if err := CheckStability(e.coef, e.med.MaxVelocity(), e.grid.Spacing, e.dt); err != nil {
		return nil, err
	}

	e.phase = PhaseRunning
	res := &Result{Frames: e.rec, LastStep: e.it - 1}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			e.phase = PhaseReady
			return res, ctx.Err()
		default:
		}

		t := float64(e.it) * e.dt

		for _, s := range e.sources {
			s.Inject(e.cur, e.grid.Cols, t)
		}

		e.updateInterior()
		if e.bc.Wraps() {
			e.updateWrappedEdges()
		}
		e.bc.Apply(e.cur, e.next, e.grid, e.coef.HalfWidth)

		if (i+1)%checkInterval == 0 || i == steps-1 {
			if bad := scanInvalid(e.next); bad >= 0 {
				e.phase = PhaseCompleted
				return res, &RunError{Step: e.it, Time: t, Err: ErrOverflow}
			}
		}

		for _, o := range e.observers {
			o.OnStep(e.it, t, e.next)
		}

		if cadence > 0 && e.it%cadence == 0 {
			_ = e.rec.Record(e.it, e.next)
		}

		e.prev, e.cur, e.next = e.cur, e.next, e.prev
		e.it++
		res.StepsTaken++
		res.LastStep = e.it - 1
	}

	e.phase = PhaseCompleted
	return res, nil
}

// Reset zeroes the wavefield, clears recorded frames and rewinds time.
// Medium, sources and configuration are kept.
func (e *Engine) Reset() {
	for i := range e.cur {
		e.prev[i] = 0
		e.cur[i] = 0
		e.next[i] = 0
	}
	e.it = 0
	e.rec.Clear()
	e.phase = PhaseReady
}

func (e *Engine) updateInterior() {
	g := e.grid
	hw := e.coef.HalfWidth
	cols := g.Cols
	invDx2 := 1.0 / (g.Spacing * g.Spacing)
	dt2 := e.dt * e.dt
	interior := g.Rows - 2*hw

	parallelFor(interior, minRowsPerTile, func(start, end int) {
		for r := start + hw; r < end+hw; r++ {
			base := r * cols
			for c := hw; c < cols-hw; c++ {
				i := base + c
				v := e.med.VelocityAt(i)
				lap := e.coef.Laplacian(e.cur, cols, r, c, invDx2)
				e.next[i] = 2*e.cur[i] - e.prev[i] + dt2*v*v*lap
			}
		}
	})
}

func (e *Engine) updateWrappedEdges() {
	g := e.grid
	hw := e.coef.HalfWidth
	rows, cols := g.Rows, g.Cols
	invDx2 := 1.0 / (g.Spacing * g.Spacing)
	dt2 := e.dt * e.dt

	update := func(r, c int) {
		i := r*cols + c
		sum := 2.0 * e.coef.Center * e.cur[i]
		for k, w := range e.coef.Side {
			off := k + 1
			sum += w * (e.cur[r*cols+wrap(c-off, cols)] +
				e.cur[r*cols+wrap(c+off, cols)] +
				e.cur[wrap(r-off, rows)*cols+c] +
				e.cur[wrap(r+off, rows)*cols+c])
		}
		v := e.med.VelocityAt(i)
		e.next[i] = 2*e.cur[i] - e.prev[i] + dt2*v*v*sum*invDx2
	}

	for r := 0; r < rows; r++ {
		if r < hw || r >= rows-hw {
			for c := 0; c < cols; c++ {
				update(r, c)
			}
			continue
		}
		for c := 0; c < hw; c++ {
			update(r, c)
			update(r, cols-1-c)
		}
	}
}

// scanInvalid returns the index of the first NaN, Inf or runaway value in
// p, or -1 if the panel is sound.
func scanInvalid(p []float64) int {
	for i, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) >= overflowLimit {
			return i
		}
	}
	return -1
}

func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
