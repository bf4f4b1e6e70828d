package snapshot

import (
	"testing"

	"github.com/san-kum/wavesim/internal/medium"
)

func testGrid() medium.Grid {
	return medium.Grid{Rows: 5, Cols: 6, Spacing: 1.0}
}

func TestRecordCopiesData(t *testing.T) {
	g := testGrid()
	r := NewRecorder(g)

	p := make([]float64, g.Size())
	p[g.Index(2, 3)] = 7.5
	if err := r.Record(0, p); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	// Mutating the live panel must not change the captured frame.
	p[g.Index(2, 3)] = -1
	f := r.Frame(0)
	if got := f.At(g, 2, 3); got != 7.5 {
		t.Errorf("frame aliases live panel: got %g, want 7.5", got)
	}
}

func TestRecordMonotonicSteps(t *testing.T) {
	r := NewRecorder(testGrid())
	p := make([]float64, testGrid().Size())

	for _, step := range []int{0, 10, 20} {
		if err := r.Record(step, p); err != nil {
			t.Fatalf("Record(%d) failed: %v", step, err)
		}
	}

	if err := r.Record(20, p); err == nil {
		t.Error("expected error recording duplicate step")
	}
	if err := r.Record(5, p); err == nil {
		t.Error("expected error recording out-of-order step")
	}
	if r.Len() != 3 {
		t.Errorf("expected 3 frames, got %d", r.Len())
	}
}

func TestAllIsRestartable(t *testing.T) {
	g := testGrid()
	r := NewRecorder(g)
	p := make([]float64, g.Size())
	want := []int{0, 3, 6, 9}
	for _, s := range want {
		p[0] = float64(s)
		if err := r.Record(s, p); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	for pass := 0; pass < 2; pass++ {
		var steps []int
		for step, data := range r.All() {
			steps = append(steps, step)
			if data[0] != float64(step) {
				t.Errorf("pass %d: frame %d has data %g", pass, step, data[0])
			}
		}
		if len(steps) != len(want) {
			t.Fatalf("pass %d: got %d frames, want %d", pass, len(steps), len(want))
		}
		for i := range want {
			if steps[i] != want[i] {
				t.Errorf("pass %d: step[%d] = %d, want %d", pass, i, steps[i], want[i])
			}
		}
	}

	// Early break must not poison later iterations.
	for range r.All() {
		break
	}
	n := 0
	for range r.All() {
		n++
	}
	if n != len(want) {
		t.Errorf("after early break: got %d frames, want %d", n, len(want))
	}
}

func TestLastAndClear(t *testing.T) {
	g := testGrid()
	r := NewRecorder(g)

	if _, ok := r.Last(); ok {
		t.Error("empty recorder should have no last frame")
	}

	p := make([]float64, g.Size())
	r.Record(4, p)
	r.Record(8, p)

	f, ok := r.Last()
	if !ok || f.Step != 8 {
		t.Errorf("Last = (%v, %v), want step 8", f.Step, ok)
	}

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Clear left %d frames", r.Len())
	}
}
