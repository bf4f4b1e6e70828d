package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/wavesim/internal/boundary"
	"github.com/san-kum/wavesim/internal/medium"
	"github.com/san-kum/wavesim/internal/source"
)

const (
	DefaultRows    = 300
	DefaultCols    = 400
	DefaultSpacing = 5.0
	DefaultVel     = 1500.0
	DefaultDensity = 1000.0
	DefaultOrder   = 4
	DefaultSteps   = 300
	DefaultCadence = 10
	DefaultFreq    = 10.0
	DefaultAmp     = 1.0
)

type Config struct {
	Grid     GridConfig     `yaml:"grid"`
	Medium   MediumConfig   `yaml:"medium"`
	Time     TimeConfig     `yaml:"time"`
	Order    int            `yaml:"order"`
	Boundary BoundaryConfig `yaml:"boundary"`
	Sources  []SourceConfig `yaml:"sources"`
}

type GridConfig struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Spacing float64 `yaml:"spacing"`
}

// MediumConfig describes either a homogeneous medium (velocity/density) or
// a stack of horizontal layers filling the grid top to bottom.
type MediumConfig struct {
	Velocity float64       `yaml:"velocity"`
	Density  float64       `yaml:"density"`
	Layers   []LayerConfig `yaml:"layers"`
}

// LayerConfig fills rows up to and excluding ToRow with the layer's
// properties. The last layer may leave ToRow zero to mean "to the bottom".
type LayerConfig struct {
	ToRow    int     `yaml:"to_row"`
	Velocity float64 `yaml:"velocity"`
	Density  float64 `yaml:"density"`
}

type TimeConfig struct {
	Dt      float64 `yaml:"dt"` // zero means derive from the CFL bound
	Steps   int     `yaml:"steps"`
	Cadence int     `yaml:"cadence"`
}

type BoundaryConfig struct {
	Kind  string  `yaml:"kind"` // damping, rigid, periodic
	Width int     `yaml:"width"`
	Taper float64 `yaml:"taper"`
}

type SourceConfig struct {
	Row     int     `yaml:"row"`
	Col     int     `yaml:"col"`
	Wavelet string  `yaml:"wavelet"` // ricker, gaussian
	Amp     float64 `yaml:"amp"`
	Freq    float64 `yaml:"freq"`
	Delay   float64 `yaml:"delay"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid:   GridConfig{Rows: DefaultRows, Cols: DefaultCols, Spacing: DefaultSpacing},
		Medium: MediumConfig{Velocity: DefaultVel, Density: DefaultDensity},
		Time:   TimeConfig{Steps: DefaultSteps, Cadence: DefaultCadence},
		Order:  DefaultOrder,
		Boundary: BoundaryConfig{
			Kind:  "damping",
			Width: boundary.DefaultWidth,
			Taper: boundary.DefaultTaper,
		},
		Sources: []SourceConfig{
			{Row: 0, Col: DefaultCols / 2, Wavelet: "ricker", Amp: DefaultAmp, Freq: DefaultFreq},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// BuildMedium materializes the medium: homogeneous, or layered when layers
// are present.
func (c *Config) BuildMedium() (*medium.Medium, error) {
	g := medium.Grid{Rows: c.Grid.Rows, Cols: c.Grid.Cols, Spacing: c.Grid.Spacing}
	if len(c.Medium.Layers) == 0 {
		return medium.Uniform(g, c.Medium.Velocity, c.Medium.Density)
	}

	n := g.Rows * g.Cols
	if n < 0 {
		n = 0
	}
	vel := make([]float64, n)
	den := make([]float64, n)
	row := 0
	for i, layer := range c.Medium.Layers {
		to := layer.ToRow
		if i == len(c.Medium.Layers)-1 && (to == 0 || to > g.Rows) {
			to = g.Rows
		}
		if to < row || to > g.Rows {
			return nil, fmt.Errorf("config: layer %d boundary row %d out of order", i, layer.ToRow)
		}
		for ; row < to; row++ {
			base := row * g.Cols
			for col := 0; col < g.Cols; col++ {
				vel[base+col] = layer.Velocity
				den[base+col] = layer.Density
			}
		}
	}
	if row < g.Rows {
		return nil, fmt.Errorf("config: layers cover %d of %d rows", row, g.Rows)
	}
	return medium.New(g, vel, den)
}

// BuildBoundary materializes the edge treatment.
func (c *Config) BuildBoundary() (boundary.Condition, error) {
	switch c.Boundary.Kind {
	case "", "damping":
		return boundary.NewDamping(c.Boundary.Width, c.Boundary.Taper), nil
	case "rigid":
		return boundary.NewRigid(), nil
	case "periodic":
		return boundary.NewPeriodic(), nil
	default:
		return nil, fmt.Errorf("config: unknown boundary kind %q", c.Boundary.Kind)
	}
}

// BuildWavelet materializes one source's time function.
func BuildWavelet(s SourceConfig) (source.Wavelet, error) {
	amp := s.Amp
	if amp == 0 {
		amp = DefaultAmp
	}
	freq := s.Freq
	if freq == 0 {
		freq = DefaultFreq
	}
	switch s.Wavelet {
	case "", "ricker":
		return source.NewRicker(amp, freq, s.Delay), nil
	case "gaussian":
		return source.NewGaussian(amp, freq, s.Delay), nil
	default:
		return nil, fmt.Errorf("config: unknown wavelet kind %q", s.Wavelet)
	}
}
