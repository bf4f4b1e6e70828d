package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/wavesim/internal/snapshot"
	"github.com/san-kum/wavesim/internal/storage"
)

func TestWriteJSON(t *testing.T) {
	meta := storage.RunMetadata{ID: "run_1", Rows: 2, Cols: 3, Dt: 0.001}
	frames := []snapshot.Frame{
		{Step: 0, Data: []float64{0, 0, 0, 0, 0, 0}},
		{Step: 10, Data: []float64{1, 2, 3, 4, 5, 6}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(&buf, meta, frames); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var got RunData
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Meta.ID != "run_1" {
		t.Errorf("id = %q, want run_1", got.Meta.ID)
	}
	if len(got.Frames) != 2 || got.Frames[1].Step != 10 {
		t.Errorf("frames = %+v", got.Frames)
	}
	if got.Frames[1].Data[5] != 6 {
		t.Errorf("data = %v", got.Frames[1].Data)
	}
}

func TestExportJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.json")
	err := ExportJSON(path, storage.RunMetadata{ID: "r"}, nil)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("stat: %v", err)
	}
}

func TestFrameToSVG(t *testing.T) {
	data := []float64{0, 1, 0, -1}
	svg := FrameToSVG(data, 2, 2, 4)

	if !strings.HasPrefix(svg, `<?xml version="1.0"`) {
		t.Error("missing XML header")
	}
	if !strings.Contains(svg, "<svg") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not a complete SVG document")
	}
	// One rect for the background plus one per non-zero cell.
	if n := strings.Count(svg, "<rect"); n != 3 {
		t.Errorf("rect count = %d, want 3", n)
	}
	if !strings.Contains(svg, `width="8"`) {
		t.Errorf("2 cols at scale 4 should give width 8: %s", svg[:200])
	}
}

func TestFrameToSVGBadShape(t *testing.T) {
	if svg := FrameToSVG([]float64{1, 2}, 2, 2, 1); svg != "" {
		t.Error("short data should render nothing")
	}
}

func TestExportSVGFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.svg")
	if err := ExportSVG(path, []float64{0, 1, 0, -1}, 2, 2, 2); err != nil {
		t.Fatalf("ExportSVG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Error("file is not a complete SVG document")
	}

	if err := ExportSVG(path, []float64{1}, 2, 2, 1); err == nil {
		t.Error("expected error for short data")
	}
}
