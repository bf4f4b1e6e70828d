package viz

import (
	"strings"
	"testing"
)

func TestCanvasSetBounds(t *testing.T) {
	c := NewCanvas(4, 4)
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 0)
	c.Set(0, 100)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("out-of-range Set modified canvas: %q", r)
			}
		}
	}

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("Set(0,0) left cell empty")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(2, 2)
	c.Set(1, 1)
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("Clear left dots behind")
			}
		}
	}
}

func TestDrawFieldThreshold(t *testing.T) {
	const rows, cols = 8, 8
	data := make([]float64, rows*cols)
	data[3*cols+3] = 1.0
	data[5*cols+5] = 0.01

	c := NewCanvas(4, 2)
	c.DrawField(data, rows, cols, 0.1)

	lit := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				lit++
			}
		}
	}
	if lit != 1 {
		t.Errorf("lit cells = %d, want 1 (sub-threshold cell must stay dark)", lit)
	}
}

func TestDrawFieldZeroField(t *testing.T) {
	c := NewCanvas(4, 2)
	c.DrawField(make([]float64, 64), 8, 8, 0.1)
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatal("zero field lit a dot")
			}
		}
	}
}

func TestRenderFrame(t *testing.T) {
	const rows, cols = 10, 10
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = 1.0
	}
	out := RenderFrame(data, rows, cols, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("lines = %d, want 5", len(lines))
	}
	for _, line := range lines {
		if line != strings.Repeat("@", 10) {
			t.Errorf("uniform peak field rendered %q", line)
		}
	}

	if got := RenderFrame(make([]float64, rows*cols), rows, cols, 10); !strings.Contains(got, " ") || strings.ContainsAny(got, "@#") {
		t.Errorf("zero field rendered %q", got)
	}
}
