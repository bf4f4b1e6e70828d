// Package boundary provides grid-edge treatments for wavefield simulations.
// The engine updates every cell the stencil can reach; a Condition finishes
// the step by handling the outer ring (halfWidth wide) and attenuating or
// wrapping edge energy.
package boundary

import (
	"math"

	"github.com/san-kum/wavesim/internal/medium"
)

// Condition is the pluggable edge treatment applied in place after each
// stencil update and before snapshot capture.
type Condition interface {
	Name() string

	// Wraps reports whether the stencil should read across edges with
	// periodic indexing. When true the engine updates edge cells itself
	// and Apply is a no-op.
	Wraps() bool

	// Apply finishes a time step: cur and next are the two live panels,
	// halfWidth the ring of cells the interior stencil did not write.
	Apply(cur, next []float64, g medium.Grid, halfWidth int)
}

// Defaults for the damping profile.
const (
	DefaultWidth = 50
	DefaultTaper = 0.007
)

// Damping attenuates a border band so outgoing waves decay before they can
// reflect, approximating an unbounded domain. Cell at distance d from the
// nearest edge is scaled by exp(-(taper*(width-d))^2), a smooth profile
// reaching 1 at the interior seam. Both live panels are damped so the two
// time levels stay consistent.
type Damping struct {
	Width   int
	Taper   float64
	profile []float64
}

func NewDamping(width int, taper float64) *Damping {
	if width <= 0 {
		width = DefaultWidth
	}
	if taper <= 0 {
		taper = DefaultTaper
	}
	d := &Damping{Width: width, Taper: taper}
	d.profile = make([]float64, width)
	for i := 0; i < width; i++ {
		x := taper * float64(width-i)
		d.profile[i] = math.Exp(-x * x)
	}
	return d
}

func (d *Damping) Name() string { return "damping" }
func (d *Damping) Wraps() bool  { return false }

// Factor returns the attenuation multiplier at distance dist from the edge.
func (d *Damping) Factor(dist int) float64 {
	if dist < 0 {
		dist = 0
	}
	if dist >= d.Width {
		return 1.0
	}
	return d.profile[dist]
}

func (d *Damping) Apply(cur, next []float64, g medium.Grid, halfWidth int) {
	zeroRing(next, g, halfWidth)

	rows, cols := g.Rows, g.Cols
	for r := 0; r < rows; r++ {
		rowDist := r
		if rows-1-r < rowDist {
			rowDist = rows - 1 - r
		}
		if rowDist >= d.Width {
			// Only the left/right bands need attention on interior rows.
			left := d.Width
			if left > cols {
				left = cols
			}
			right := cols - d.Width
			if right < left {
				right = left
			}
			d.dampSpan(cur, next, r*cols, 0, left, rowDist, cols)
			d.dampSpan(cur, next, r*cols, right, cols, rowDist, cols)
			continue
		}
		d.dampSpan(cur, next, r*cols, 0, cols, rowDist, cols)
	}
}

func (d *Damping) dampSpan(cur, next []float64, base, c0, c1, rowDist, cols int) {
	for c := c0; c < c1; c++ {
		dist := rowDist
		if c < dist {
			dist = c
		}
		if cols-1-c < dist {
			dist = cols - 1 - c
		}
		if dist >= d.Width {
			continue
		}
		f := d.profile[dist]
		cur[base+c] *= f
		next[base+c] *= f
	}
}

// Rigid reflects energy at the edges with a zero-gradient extension: ring
// cells copy their nearest updated interior neighbor.
type Rigid struct{}

func NewRigid() *Rigid { return &Rigid{} }

func (*Rigid) Name() string { return "rigid" }
func (*Rigid) Wraps() bool  { return false }

func (*Rigid) Apply(cur, next []float64, g medium.Grid, halfWidth int) {
	rows, cols, hw := g.Rows, g.Cols, halfWidth
	for r := 0; r < rows; r++ {
		rc := clamp(r, hw, rows-1-hw)
		for c := 0; c < cols; c++ {
			if r >= hw && r < rows-hw && c >= hw && c < cols-hw {
				c = cols - hw - 1 // skip to the right band
				continue
			}
			next[r*cols+c] = next[rc*cols+clamp(c, hw, cols-1-hw)]
		}
	}
}

// Periodic wraps the domain: the stencil reads across edges with modular
// indexing, so the engine handles the edge cells and nothing remains to do
// here.
type Periodic struct{}

func NewPeriodic() *Periodic { return &Periodic{} }

func (*Periodic) Name() string { return "periodic" }
func (*Periodic) Wraps() bool  { return true }

func (*Periodic) Apply(cur, next []float64, g medium.Grid, halfWidth int) {}

func zeroRing(p []float64, g medium.Grid, hw int) {
	rows, cols := g.Rows, g.Cols
	for r := 0; r < rows; r++ {
		if r < hw || r >= rows-hw {
			base := r * cols
			for c := 0; c < cols; c++ {
				p[base+c] = 0
			}
			continue
		}
		base := r * cols
		for c := 0; c < hw; c++ {
			p[base+c] = 0
			p[base+cols-1-c] = 0
		}
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
