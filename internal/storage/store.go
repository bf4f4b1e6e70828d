package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/wavesim/internal/snapshot"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	Spacing   float64   `json:"spacing"`
	Dt        float64   `json:"dt"`
	Steps     int       `json:"steps"`
	Cadence   int       `json:"cadence"`
	Order     int       `json:"order"`
	Boundary  string    `json:"boundary"`
	Frames    int       `json:"frames"`
}

// Save writes one run directory: metadata.json plus one CSV per recorded
// frame, each row of the CSV holding one grid row of pressure values.
func (s *Store) Save(meta RunMetadata, rec *snapshot.Recorder) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Frames = rec.Len()

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	grid := rec.Grid()
	for step, data := range rec.All() {
		path := filepath.Join(runDir, fmt.Sprintf("frame_%06d.csv", step))
		if err := writeFrame(path, data, grid.Cols); err != nil {
			return "", err
		}
	}

	return runID, nil
}

func writeFrame(path string, data []float64, cols int) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	row := make([]string, cols)
	for off := 0; off+cols <= len(data); off += cols {
		for c := 0; c < cols; c++ {
			row[c] = strconv.FormatFloat(data[off+c], 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads back every frame CSV of a run, ordered by step.
func (s *Store) LoadFrames(runID string) ([]snapshot.Frame, error) {
	runDir := filepath.Join(s.baseDir, runID)
	entries, err := os.ReadDir(runDir)
	if err != nil {
		return nil, err
	}

	frames := make([]snapshot.Frame, 0)
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "frame_") || !strings.HasSuffix(name, ".csv") {
			continue
		}
		step, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "frame_"), ".csv"))
		if err != nil {
			continue
		}

		data, err := readFrame(filepath.Join(runDir, name))
		if err != nil {
			return nil, err
		}
		frames = append(frames, snapshot.Frame{Step: step, Data: data})
	}

	sort.Slice(frames, func(i, j int) bool { return frames[i].Step < frames[j].Step })
	return frames, nil
}

func readFrame(path string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	data := make([]float64, 0, len(records)*len(records[0]))
	for _, record := range records {
		for _, field := range record {
			val, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: bad value %q in %s", field, path)
			}
			data = append(data, val)
		}
	}
	return data, nil
}

// SaveTrace writes one receiver trace as a two-column time,pressure CSV.
func (s *Store) SaveTrace(runID, name string, times, samples []float64) error {
	path := filepath.Join(s.baseDir, runID, name+".csv")
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"time", "pressure"}); err != nil {
		return err
	}
	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'g', -1, 64),
			strconv.FormatFloat(samples[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// LoadTrace reads a trace CSV written by SaveTrace.
func (s *Store) LoadTrace(runID, name string) (times, samples []float64, err error) {
	path := filepath.Join(s.baseDir, runID, name+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		v, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		times = append(times, t)
		samples = append(samples, v)
	}
	return times, samples, nil
}
