package medium

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MinDim is the smallest allowed grid dimension. Anything smaller cannot
// host a stencil without running off the grid.
const MinDim = 5

// Grid describes a uniform 2D grid: shape in cells and spacing in meters.
type Grid struct {
	Rows    int
	Cols    int
	Spacing float64
}

func NewGrid(rows, cols int, spacing float64) (Grid, error) {
	g := Grid{Rows: rows, Cols: cols, Spacing: spacing}
	if rows < MinDim || cols < MinDim {
		return g, &InvalidMediumError{
			Reason: fmt.Sprintf("grid %dx%d below minimum dimension %d", rows, cols, MinDim),
			Err:    ErrInvalidMedium,
		}
	}
	if spacing <= 0 {
		return g, &InvalidMediumError{
			Reason: fmt.Sprintf("spacing must be positive, got %g", spacing),
			Err:    ErrInvalidMedium,
		}
	}
	return g, nil
}

// Size is the cell count of one wavefield panel.
func (g Grid) Size() int { return g.Rows * g.Cols }

// Index maps (row, col) to the flat panel index.
func (g Grid) Index(row, col int) int { return row*g.Cols + col }

// Contains reports whether (row, col) is on the grid.
func (g Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.Rows && col >= 0 && col < g.Cols
}

// Extent returns the physical size of the grid in meters (width, height).
func (g Grid) Extent() (float64, float64) {
	return float64(g.Cols) * g.Spacing, float64(g.Rows) * g.Spacing
}

// Medium holds per-cell physical properties on a grid. Velocity is in m/s,
// density in kg/m3, both stored flat in row-major order. Immutable after
// construction.
type Medium struct {
	grid     Grid
	velocity []float64
	density  []float64
	maxVel   float64
}

// New validates and builds a medium from co-registered velocity and density
// fields. The slices are copied; callers keep ownership of their arguments.
func New(grid Grid, velocity, density []float64) (*Medium, error) {
	if _, err := NewGrid(grid.Rows, grid.Cols, grid.Spacing); err != nil {
		return nil, err
	}
	n := grid.Size()
	if len(velocity) != n || len(density) != n {
		return nil, &InvalidMediumError{
			Reason: fmt.Sprintf("field size mismatch: grid wants %d cells, velocity has %d, density has %d",
				n, len(velocity), len(density)),
			Err: ErrInvalidMedium,
		}
	}
	for i, v := range velocity {
		if !(v > 0) {
			return nil, &InvalidMediumError{
				Reason: fmt.Sprintf("velocity must be positive, got %g at cell %d", v, i),
				Err:    ErrInvalidMedium,
			}
		}
	}
	for i, d := range density {
		if !(d > 0) {
			return nil, &InvalidMediumError{
				Reason: fmt.Sprintf("density must be positive, got %g at cell %d", d, i),
				Err:    ErrInvalidMedium,
			}
		}
	}

	m := &Medium{
		grid:     grid,
		velocity: append([]float64(nil), velocity...),
		density:  append([]float64(nil), density...),
	}
	m.maxVel = floats.Max(m.velocity)
	return m, nil
}

// Uniform builds a homogeneous medium with constant velocity and density.
func Uniform(grid Grid, velocity, density float64) (*Medium, error) {
	n := grid.Rows * grid.Cols
	if n < 0 {
		n = 0
	}
	vel := make([]float64, n)
	den := make([]float64, n)
	for i := range vel {
		vel[i] = velocity
		den[i] = density
	}
	return New(grid, vel, den)
}

func (m *Medium) Grid() Grid { return m.grid }

// Velocity returns the wave speed at a cell.
func (m *Medium) Velocity(row, col int) float64 {
	return m.velocity[m.grid.Index(row, col)]
}

// Density returns the mass density at a cell.
func (m *Medium) Density(row, col int) float64 {
	return m.density[m.grid.Index(row, col)]
}

// VelocityAt is the flat-index accessor used by the inner update loop.
func (m *Medium) VelocityAt(i int) float64 { return m.velocity[i] }

// DensityAt is the flat-index accessor used by diagnostics.
func (m *Medium) DensityAt(i int) float64 { return m.density[i] }

// MaxVelocity returns the largest wave speed in the medium, precomputed at
// construction for the stability check.
func (m *Medium) MaxVelocity() float64 { return m.maxVel }
