package viz

import (
	"math"
	"strings"
)

var shades = []rune(" .:-=+*#%@")

// RenderFrame downsamples a pressure field to a width-character ASCII
// picture, shading each cell by amplitude relative to the field's peak.
// Terminal cells are roughly twice as tall as wide, so the vertical
// resolution is halved.
func RenderFrame(data []float64, rows, cols, width int) string {
	if rows <= 0 || cols <= 0 || len(data) < rows*cols || width <= 0 {
		return ""
	}
	if width > cols {
		width = cols
	}
	height := rows * width / cols / 2
	if height < 1 {
		height = 1
	}

	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	var b strings.Builder
	for y := 0; y < height; y++ {
		r := y * rows / height
		base := r * cols
		for x := 0; x < width; x++ {
			c := x * cols / width
			idx := 0
			if peak > 0 {
				frac := math.Abs(data[base+c]) / peak
				idx = int(frac * float64(len(shades)-1))
				if idx >= len(shades) {
					idx = len(shades) - 1
				}
			}
			b.WriteRune(shades[idx])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
