package export

import (
	"fmt"
	"math"
	"os"
	"strings"
)

// FrameToSVG renders one pressure field as a grayscale heatmap, one SVG
// rect per grid cell, brightness proportional to amplitude.
func FrameToSVG(data []float64, rows, cols int, scale float64) string {
	if rows <= 0 || cols <= 0 || len(data) < rows*cols {
		return ""
	}
	if scale <= 0 {
		scale = 2
	}

	peak := 0.0
	for _, v := range data {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	width := float64(cols) * scale
	height := float64(rows) * scale

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for r := 0; r < rows; r++ {
		base := r * cols
		for c := 0; c < cols; c++ {
			v := data[base+c]
			if peak == 0 || math.Abs(v) < 0.01*peak {
				continue
			}
			level := int(math.Abs(v) / peak * 255)
			if level > 255 {
				level = 255
			}
			// Positive pressure renders warm, negative cool.
			var color string
			if v >= 0 {
				color = fmt.Sprintf("#%02x%02x00", level, level/2)
			} else {
				color = fmt.Sprintf("#00%02x%02x", level/2, level)
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(c)*scale, float64(r)*scale, scale, scale, color))
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func ExportSVG(path string, data []float64, rows, cols int, scale float64) error {
	svg := FrameToSVG(data, rows, cols, scale)
	if svg == "" {
		return fmt.Errorf("export: frame of %d values does not fill a %dx%d grid", len(data), rows, cols)
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
