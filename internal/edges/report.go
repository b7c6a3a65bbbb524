// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package edges

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Report is the on-disk summary of an edge-collection run. It records what
// was asked for and how the run went, so a collection can be audited later
// without replaying thousands of API calls.
type Report struct {
	SeedBaseURL string    `yaml:"seed_base_url"`
	Areas       []string  `yaml:"areas"`
	Seeds       int       `yaml:"seeds"`
	Workers     int       `yaml:"workers"`
	Summary     RunStats  `yaml:"summary"`
	Timestamp   time.Time `yaml:"timestamp"`
}

// RunStats stores the outcome counters of a run.
type RunStats struct {
	Processed         int           `yaml:"processed"`
	Failed            int           `yaml:"failed"`
	UniqueEdges       int           `yaml:"unique_edges"`
	DuplicatesRemoved int           `yaml:"duplicates_removed"`
	Elapsed           time.Duration `yaml:"elapsed"`
	Failures          []string      `yaml:"failures,omitempty"`
}

// WriteReport saves the run report as YAML.
func WriteReport(path string, r Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report %s: %w", path, err)
	}
	return nil
}
