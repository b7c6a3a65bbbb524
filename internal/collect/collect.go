// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect runs the publication collection stage: query the works API,
// normalize the results, and write them to CSV and the run store.
package collect

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citegraph/internal/openalex"
	"github.com/pdiddy/citegraph/pkg/types"
)

var csvHeader = []string{
	"id", "doi", "title", "sub_area", "subfield",
	"referenced_works_count", "referenced_works", "cited_by_count", "cited_by",
}

// PublicationSaver persists collected publications. Satisfied by the run
// store; nil disables persistence.
type PublicationSaver interface {
	SavePublications(ctx context.Context, pubs []types.Publication) (int, error)
}

// Stage drives one collection run.
type Stage struct {
	Client *openalex.Client
	Store  PublicationSaver
	Log    zerolog.Logger
}

// Result summarizes a collection run.
type Result struct {
	Publications int
	Enriched     int
	OutputFile   string
}

// Run fetches all works matching cfg, optionally enriches each with its
// citing work IDs, then writes the CSV and persists to the store.
func (s *Stage) Run(ctx context.Context, cfg types.CollectConfig) (*Result, error) {
	query := openalex.WorksQuery{
		Select: cfg.Select,
		Filter: cfg.Filter,
		Sort:   cfg.Sort,
	}
	pubs, err := s.Client.FetchAll(ctx, query, cfg.PerPage)
	if err != nil {
		return nil, fmt.Errorf("fetching works: %w", err)
	}
	s.Log.Info().Int("publications", len(pubs)).Msg("fetched works")

	enriched := 0
	if cfg.CitedBy {
		enriched, err = s.enrich(ctx, pubs, cfg.CitedByDelay)
		if err != nil {
			return nil, err
		}
	}

	if err := WriteCSV(cfg.OutputFile, pubs); err != nil {
		return nil, err
	}

	if s.Store != nil {
		if _, err := s.Store.SavePublications(ctx, pubs); err != nil {
			return nil, fmt.Errorf("persisting publications: %w", err)
		}
	}

	return &Result{
		Publications: len(pubs),
		Enriched:     enriched,
		OutputFile:   cfg.OutputFile,
	}, nil
}

// enrich fills in CitedBy for each publication, pausing between works. A
// failed lookup keeps whatever IDs came back and moves on.
func (s *Stage) enrich(ctx context.Context, pubs []types.Publication, delay time.Duration) (int, error) {
	enriched := 0
	for i := range pubs {
		ids, err := s.Client.CitedBy(ctx, pubs[i].ID)
		pubs[i].CitedBy = ids
		if err != nil {
			if ctx.Err() != nil {
				return enriched, ctx.Err()
			}
			s.Log.Warn().Err(err).Str("work", pubs[i].ID).
				Int("partial", len(ids)).Msg("cited-by lookup incomplete")
		} else {
			enriched++
		}

		if delay > 0 && i < len(pubs)-1 {
			select {
			case <-ctx.Done():
				return enriched, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return enriched, nil
}

// WriteCSV writes publications to path, creating parent directories.
func WriteCSV(path string, pubs []types.Publication) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, pub := range pubs {
		record := []string{
			pub.ID,
			pub.DOI,
			pub.Title,
			string(pub.SubArea),
			pub.Subfield,
			strconv.Itoa(len(pub.ReferencedWorks)),
			strings.Join(pub.ReferencedWorks, "|"),
			strconv.Itoa(pub.CitedByCount),
			strings.Join(pub.CitedBy, "|"),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing publication %s: %w", pub.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", path, err)
	}
	return nil
}
