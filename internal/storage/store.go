package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/armtraj/internal/sim"
)

const (
	metadataFile = "metadata.json"
	targetsFile  = "targets.csv"
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
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Mode      string             `json:"mode"`
	Basis     string             `json:"basis,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Joints    []string           `json:"joints"`
	Completed bool               `json:"completed"`
	Ticks     int                `json:"ticks"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the run under a new directory and returns its ID. ID,
// Timestamp and the result fields of meta are filled in here.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Mode, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Completed = result.Completed
	meta.Ticks = result.Ticks
	meta.Metrics = result.Metrics

	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeTargets(filepath.Join(runDir, targetsFile), meta.Joints, result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeTargets(path string, joints []string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return WriteCSV(f, joints, result.Times, result.Targets)
}

// Header names the CSV columns: time followed by one column per joint.
// Joints without a name are called q<i>.
func Header(joints []string, dim int) []string {
	header := []string{"time"}
	for i := 0; i < dim; i++ {
		name := fmt.Sprintf("q%d", i)
		if i < len(joints) && joints[i] != "" {
			name = joints[i]
		}
		header = append(header, name)
	}
	return header
}

func Row(t float64, q []float64) []string {
	row := make([]string, 0, len(q)+1)
	row = append(row, strconv.FormatFloat(t, 'g', -1, 64))
	for _, v := range q {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return row
}

// List returns every saved run, oldest first.
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
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTargets reads the recorded targets and their tick times.
func (s *Store) LoadTargets(runID string) ([]sim.Vector, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, targetsFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) < 2 {
		return []sim.Vector{}, []float64{}, nil
	}

	times := make([]float64, 0, len(records)-1)
	targets := make([]sim.Vector, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) == 0 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("run %s row %d: %w", runID, i+1, err)
		}

		q := make(sim.Vector, len(record)-1)
		for j := range q {
			if q[j], err = strconv.ParseFloat(record[j+1], 64); err != nil {
				return nil, nil, fmt.Errorf("run %s row %d column %d: %w", runID, i+1, j+1, err)
			}
		}
		times = append(times, t)
		targets = append(targets, q)
	}

	return targets, times, nil
}
