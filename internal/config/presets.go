package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/wavesim/internal/boundary"
)

// Presets are ready-to-run scenarios for the CLI.
var presets = map[string]func() *Config{
	"surface-shot": func() *Config {
		cfg := DefaultConfig()
		cfg.Sources = []SourceConfig{
			{Row: 0, Col: cfg.Grid.Cols / 2, Wavelet: "ricker", Amp: 1.0, Freq: 10.0},
		}
		return cfg
	},
	"center-burst": func() *Config {
		cfg := DefaultConfig()
		cfg.Grid = GridConfig{Rows: 301, Cols: 301, Spacing: 5.0}
		cfg.Sources = []SourceConfig{
			{Row: 150, Col: 150, Wavelet: "gaussian", Amp: 1.0, Freq: 12.0},
		}
		return cfg
	},
	"two-layer": func() *Config {
		cfg := DefaultConfig()
		cfg.Medium = MediumConfig{
			Layers: []LayerConfig{
				{ToRow: 150, Velocity: 1500, Density: 1000},
				{Velocity: 3000, Density: 2500},
			},
		}
		cfg.Time.Steps = 600
		cfg.Sources = []SourceConfig{
			{Row: 0, Col: cfg.Grid.Cols / 2, Wavelet: "ricker", Amp: 1.0, Freq: 8.0},
		}
		return cfg
	},
	"periodic-cell": func() *Config {
		cfg := DefaultConfig()
		cfg.Grid = GridConfig{Rows: 200, Cols: 200, Spacing: 5.0}
		cfg.Boundary = BoundaryConfig{Kind: "periodic"}
		cfg.Sources = []SourceConfig{
			{Row: 100, Col: 100, Wavelet: "ricker", Amp: 1.0, Freq: 10.0},
		}
		return cfg
	},
	"rigid-box": func() *Config {
		cfg := DefaultConfig()
		cfg.Grid = GridConfig{Rows: 200, Cols: 200, Spacing: 5.0}
		cfg.Boundary = BoundaryConfig{Kind: "rigid", Width: boundary.DefaultWidth}
		cfg.Sources = []SourceConfig{
			{Row: 100, Col: 100, Wavelet: "ricker", Amp: 1.0, Freq: 10.0},
		}
		return cfg
	},
}

func GetPreset(name string) (*Config, error) {
	build, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("config: unknown preset %q", name)
	}
	return build(), nil
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
