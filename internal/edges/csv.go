// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package edges

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/citegraph/pkg/types"
)

// csvHeader is the fixed column order of the edge-list file.
var csvHeader = []string{"origin_doi", "target_doi", "origin_sub_area", "target_sub_area"}

// WriteCSV writes the edge set to path, one row per unique edge tuple.
func WriteCSV(path string, edges []types.CitationEdge) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating edge file %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, e := range edges {
		row := []string{e.OriginDOI, e.TargetDOI, string(e.OriginSubArea), string(e.TargetSubArea)}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing edge row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing edge file: %w", err)
	}
	return nil
}

// ReadCSV loads an edge-list file written by WriteCSV. Fields are
// whitespace-trimmed; the header row is required and skipped.
func ReadCSV(path string) ([]types.CitationEdge, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening edge file %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing edge file %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("edge file %s is empty", path)
	}

	edges := make([]types.CitationEdge, 0, len(rows)-1)
	for _, row := range rows[1:] {
		edges = append(edges, types.CitationEdge{
			OriginDOI:     strings.TrimSpace(row[0]),
			TargetDOI:     strings.TrimSpace(row[1]),
			OriginSubArea: types.SubArea(strings.TrimSpace(row[2])),
			TargetSubArea: types.SubArea(strings.TrimSpace(row[3])),
		})
	}
	return edges, nil
}
