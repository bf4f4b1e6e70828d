package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/wavesim/internal/snapshot"
	"github.com/san-kum/wavesim/internal/storage"
)

type FrameData struct {
	Step int       `json:"step"`
	Data []float64 `json:"data"`
}

type RunData struct {
	Meta   storage.RunMetadata `json:"meta"`
	Frames []FrameData         `json:"frames"`
}

func runData(meta storage.RunMetadata, frames []snapshot.Frame) RunData {
	data := RunData{
		Meta:   meta,
		Frames: make([]FrameData, len(frames)),
	}
	for i, f := range frames {
		data.Frames[i] = FrameData{Step: f.Step, Data: f.Data}
	}
	return data
}

func WriteJSON(w io.Writer, meta storage.RunMetadata, frames []snapshot.Frame) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(runData(meta, frames))
}

func ExportJSON(path string, meta storage.RunMetadata, frames []snapshot.Frame) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, frames)
}
