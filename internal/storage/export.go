package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/armtraj/internal/sim"
)

type ExportData struct {
	ID        string             `json:"id,omitempty"`
	Name      string             `json:"name"`
	Mode      string             `json:"mode"`
	Basis     string             `json:"basis,omitempty"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	Seed      int64              `json:"seed"`
	Joints    []string           `json:"joints"`
	Completed bool               `json:"completed"`
	Ticks     int                `json:"ticks"`
	Times     []float64          `json:"times"`
	Targets   [][]float64        `json:"targets"`
	Metrics   map[string]float64 `json:"metrics"`
}

func newExportData(meta RunMetadata, times []float64, targets []sim.Vector) ExportData {
	data := ExportData{
		ID:        meta.ID,
		Name:      meta.Name,
		Mode:      meta.Mode,
		Basis:     meta.Basis,
		Dt:        meta.Dt,
		Duration:  meta.Duration,
		Seed:      meta.Seed,
		Joints:    meta.Joints,
		Completed: meta.Completed,
		Ticks:     len(times),
		Times:     times,
		Targets:   make([][]float64, len(targets)),
		Metrics:   meta.Metrics,
	}
	for i, q := range targets {
		data.Targets[i] = q
	}
	return data
}

// WriteJSON encodes a run as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, times []float64, targets []sim.Vector) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newExportData(meta, times, targets))
}

func ExportJSON(path string, meta RunMetadata, times []float64, targets []sim.Vector) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, meta, times, targets)
}

func ExportJSONStdout(meta RunMetadata, times []float64, targets []sim.Vector) error {
	return WriteJSON(os.Stdout, meta, times, targets)
}

// WriteCSV writes the targets in the same layout as the stored run.
func WriteCSV(w io.Writer, joints []string, times []float64, targets []sim.Vector) error {
	cw := csv.NewWriter(w)
	if len(targets) > 0 {
		if err := cw.Write(Header(joints, len(targets[0]))); err != nil {
			return err
		}
	}
	for i, q := range targets {
		if err := cw.Write(Row(times[i], q)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
