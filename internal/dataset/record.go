// Package dataset persists simulation runs as self-describing records for
// downstream training pipelines. Each run becomes one JSON file; an initial
// grid pattern, when present, is stored next to it as a dense text sidecar.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rodgzilla/langton-ant-machine-learning/internal/core"
	"github.com/rodgzilla/langton-ant-machine-learning/internal/sims/langton"
)

// RunConfig is the serialized form of a simulation configuration.
type RunConfig struct {
	StartPosition  [2]int `json:"start_position"`
	StartDirection int    `json:"start_direction"`
	GridSize       int    `json:"grid_size"`
	HasPattern     bool   `json:"has_initial_grid"`
}

// Record is the serialized outcome of one run. StepsToHighway is omitted for
// timeouts; Ambiguous flags degenerate detections so consumers can filter
// them.
type Record struct {
	ID               string    `json:"id"`
	Configuration    RunConfig `json:"configuration"`
	HighwayDirection string    `json:"highway_direction"`
	Ambiguous        bool      `json:"ambiguous,omitempty"`
	StepsToHighway   *int      `json:"steps_to_highway,omitempty"`
	GridExpansions   int       `json:"grid_expansions"`
	FinalGridSize    [2]int    `json:"final_grid_size"`
	Timestamp        string    `json:"timestamp"`

	// Pattern carries the initial grid when HasPattern is set. It lives in
	// the sidecar file, not the JSON record.
	Pattern [][]core.Cell `json:"-"`
}

// NewRecord builds a Record from a run's configuration and result.
func NewRecord(cfg langton.Config, res langton.Result) Record {
	rec := Record{
		ID: uuid.NewString(),
		Configuration: RunConfig{
			StartPosition:  [2]int{cfg.StartX, cfg.StartY},
			StartDirection: int(cfg.StartDirection),
			GridSize:       cfg.GridSize,
			HasPattern:     cfg.Pattern != nil,
		},
		HighwayDirection: res.Heading.String(),
		Ambiguous:        res.Ambiguous,
		GridExpansions:   res.Expansions,
		FinalGridSize:    [2]int{res.FinalSize.W, res.FinalSize.H},
		Timestamp:        time.Now().UTC().Format(time.RFC3339),
		Pattern:          cfg.Pattern,
	}
	if res.Detected {
		steps := res.StepsToHighway
		rec.StepsToHighway = &steps
	}
	return rec
}

// Save writes the record as <dir>/<name>.json plus, when a pattern is
// present, <dir>/<name>.grid.
func (r Record) Save(dir, name string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("dataset: create output dir: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("dataset: encode record: %w", err)
	}
	jsonPath := filepath.Join(dir, name+".json")
	if err := os.WriteFile(jsonPath, data, 0o644); err != nil {
		return fmt.Errorf("dataset: write %s: %w", jsonPath, err)
	}
	if r.Configuration.HasPattern && r.Pattern != nil {
		gridPath := filepath.Join(dir, name+".grid")
		if err := os.WriteFile(gridPath, EncodePattern(r.Pattern), 0o644); err != nil {
			return fmt.Errorf("dataset: write %s: %w", gridPath, err)
		}
	}
	return nil
}

// LoadRecord reads a record saved by Save, restoring the pattern sidecar when
// the record declares one.
func LoadRecord(jsonPath string) (Record, error) {
	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return Record{}, fmt.Errorf("dataset: read %s: %w", jsonPath, err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("dataset: decode %s: %w", jsonPath, err)
	}
	if rec.Configuration.HasPattern {
		gridPath := strings.TrimSuffix(jsonPath, ".json") + ".grid"
		raw, err := os.ReadFile(gridPath)
		if err != nil {
			return Record{}, fmt.Errorf("dataset: read pattern %s: %w", gridPath, err)
		}
		pattern, err := DecodePattern(raw)
		if err != nil {
			return Record{}, fmt.Errorf("dataset: decode pattern %s: %w", gridPath, err)
		}
		rec.Pattern = pattern
	}
	return rec, nil
}

// Load reads every record matching <prefix>_*.json under dir, sorted by file
// name.
func Load(dir, prefix string) ([]Record, error) {
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"_*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	records := make([]Record, 0, len(matches))
	for _, path := range matches {
		rec, err := LoadRecord(path)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// SimulationConfig converts the record's configuration back into an engine
// configuration, reattaching the pattern when one was stored.
func (r Record) SimulationConfig() langton.Config {
	cfg := langton.DefaultConfig()
	cfg.GridSize = r.Configuration.GridSize
	cfg.StartX = r.Configuration.StartPosition[0]
	cfg.StartY = r.Configuration.StartPosition[1]
	cfg.StartDirection = core.Direction(r.Configuration.StartDirection)
	cfg.Pattern = r.Pattern
	return cfg
}
