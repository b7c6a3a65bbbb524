// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package seeds loads the per-sub-area publication lists that drive edge
// collection. Each sub-area has one headerless CSV with the publication DOI
// at a fixed column; sources can be local files or HTTP URLs.
package seeds

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citegraph/internal/doi"
	"github.com/pdiddy/citegraph/pkg/types"
)

// DefaultDOIColumn is the zero-based column index holding the DOI in the
// published sub-area CSVs.
const DefaultDOIColumn = 5

// Loader reads seed publications for sub-areas. The zero value is not usable;
// construct with NewLoader.
type Loader struct {
	client *http.Client
	column int
	log    zerolog.Logger
}

// NewLoader returns a Loader reading the DOI from column. A column < 0 selects
// DefaultDOIColumn.
func NewLoader(client *http.Client, column int, log zerolog.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	if column < 0 {
		column = DefaultDOIColumn
	}
	return &Loader{client: client, column: column, log: log}
}

// AreaSource returns the CSV location for one sub-area under base. An HTTP(S)
// base yields a URL; anything else is treated as a local directory.
func AreaSource(base string, area types.SubArea) string {
	name := string(area) + "-out-papers.csv"
	if strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://") {
		return strings.TrimSuffix(base, "/") + "/" + name
	}
	return filepath.Join(base, name)
}

// LoadArea reads one sub-area CSV and returns its seeds tagged with area.
// Empty and "null" cells are skipped; remaining values are reduced to bare
// DOIs. Duplicate DOIs within the area collapse to one seed.
func (l *Loader) LoadArea(ctx context.Context, source string, area types.SubArea) ([]types.Seed, error) {
	r, err := l.open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("opening seed source %s: %w", source, err)
	}
	defer r.Close()

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	seen := make(map[types.Seed]struct{})
	var seeds []types.Seed
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading seed source %s: %w", source, err)
		}
		if l.column >= len(record) {
			continue
		}
		cell := strings.TrimSpace(record[l.column])
		if cell == "" || strings.EqualFold(cell, "null") {
			continue
		}
		seed := types.Seed{DOI: doi.Extract(cell), SubArea: area}
		if _, ok := seen[seed]; ok {
			continue
		}
		seen[seed] = struct{}{}
		seeds = append(seeds, seed)
	}

	l.log.Info().Str("area", string(area)).Int("seeds", len(seeds)).Str("source", source).
		Msg("loaded sub-area seeds")
	return seeds, nil
}

// LoadAll loads every sub-area under base and returns the combined seed set.
// A sub-area that fails to load is logged and skipped; the same DOI appearing
// in two areas yields two seeds.
func (l *Loader) LoadAll(ctx context.Context, base string, areas []types.SubArea) []types.Seed {
	var all []types.Seed
	for _, area := range areas {
		source := AreaSource(base, area)
		seeds, err := l.LoadArea(ctx, source, area)
		if err != nil {
			l.log.Error().Err(err).Str("area", string(area)).Msg("skipping sub-area")
			continue
		}
		all = append(all, seeds...)
	}
	return all
}

func (l *Loader) open(ctx context.Context, source string) (io.ReadCloser, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %s", resp.Status)
		}
		return resp.Body, nil
	}
	return os.Open(source)
}
