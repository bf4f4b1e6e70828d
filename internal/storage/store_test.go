package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/wavesim/internal/medium"
	"github.com/san-kum/wavesim/internal/snapshot"
)

func testRecorder(t *testing.T) *snapshot.Recorder {
	t.Helper()
	g, err := medium.NewGrid(6, 5, 1.0)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	rec := snapshot.NewRecorder(g)
	field := make([]float64, g.Size())
	for _, step := range []int{0, 10, 20} {
		for i := range field {
			field[i] = float64(step) + 0.25*float64(i)
		}
		if err := rec.Record(step, field); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	return rec
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	rec := testRecorder(t)
	meta := RunMetadata{
		Rows: 6, Cols: 5, Spacing: 1.0,
		Dt: 0.002, Steps: 30, Cadence: 10,
		Order: 4, Boundary: "damping",
	}

	runID, err := st.Save(meta, rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if got.Rows != 6 || got.Cols != 5 {
		t.Errorf("expected 6x5 grid, got %dx%d", got.Rows, got.Cols)
	}

	if got.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", got.Frames)
	}

	if got.Boundary != "damping" {
		t.Errorf("expected boundary 'damping', got '%s'", got.Boundary)
	}
}

func TestStoreLoadFrames(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	rec := testRecorder(t)
	runID, err := st.Save(RunMetadata{Rows: 6, Cols: 5}, rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		t.Fatalf("load frames failed: %v", err)
	}

	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(frames))
	}

	for i, step := range []int{0, 10, 20} {
		if frames[i].Step != step {
			t.Errorf("frame %d: expected step %d, got %d", i, step, frames[i].Step)
		}
		if len(frames[i].Data) != 30 {
			t.Fatalf("frame %d: expected 30 values, got %d", i, len(frames[i].Data))
		}
		want := float64(step) + 0.25*7
		if frames[i].Data[7] != want {
			t.Errorf("frame %d: expected value %v at cell 7, got %v", i, want, frames[i].Data[7])
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if _, err := st.Save(RunMetadata{Rows: 6, Cols: 5}, testRecorder(t)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Rows: 6, Cols: 5}, testRecorder(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	metaPath := filepath.Join(runDir, "metadata.json")
	framePath := filepath.Join(runDir, "frame_000010.csv")

	if _, err := os.Stat(metaPath); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}

	if _, err := os.Stat(framePath); os.IsNotExist(err) {
		t.Error("frame_000010.csv not created")
	}
}

func TestStoreTraceRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(RunMetadata{Rows: 6, Cols: 5}, testRecorder(t))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	times := []float64{0, 0.002, 0.004}
	samples := []float64{0, 0.5, -0.25}
	if err := st.SaveTrace(runID, "trace_0", times, samples); err != nil {
		t.Fatalf("save trace failed: %v", err)
	}

	gotTimes, gotSamples, err := st.LoadTrace(runID, "trace_0")
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}

	if len(gotTimes) != 3 || len(gotSamples) != 3 {
		t.Fatalf("expected 3 samples, got %d/%d", len(gotTimes), len(gotSamples))
	}

	if gotSamples[2] != -0.25 {
		t.Errorf("expected sample -0.25, got %v", gotSamples[2])
	}
}
