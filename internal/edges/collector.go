// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package edges derives, accumulates, and deduplicates citation edges for a
// set of seed publications.
package edges

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citegraph/internal/doi"
	"github.com/pdiddy/citegraph/internal/opencitations"
	"github.com/pdiddy/citegraph/pkg/types"
)

// CitationAPI is the slice of the OpenCitations client the collector needs.
type CitationAPI interface {
	References(ctx context.Context, doi string) ([]opencitations.Record, error)
	Citations(ctx context.Context, doi string) ([]opencitations.Record, error)
}

// Collector derives the citation edges of a single publication.
type Collector struct {
	Client CitationAPI
	Log    zerolog.Logger
}

// Collect returns the union of a publication's outgoing (reference) and
// incoming (citation) edges. The publication's known sub-area is stamped on
// its own end of each edge; the other end stays unresolved. Self-loops are
// dropped at creation.
//
// A failed sub-query degrades to the edges of the other query; the error is
// non-nil only when both queries failed, and no failure ever propagates as a
// panic past this boundary. Callers treat the returned edges as valid either
// way.
func (c *Collector) Collect(ctx context.Context, seed types.Seed) ([]types.CitationEdge, error) {
	var edges []types.CitationEdge

	refs, refErr := c.Client.References(ctx, seed.DOI)
	if refErr != nil {
		c.Log.Warn().Str("doi", seed.DOI).Err(refErr).Msg("reference query failed, keeping citation edges only")
	} else {
		edges = append(edges, c.outgoing(seed, refs)...)
	}

	cits, citErr := c.Client.Citations(ctx, seed.DOI)
	if citErr != nil {
		c.Log.Warn().Str("doi", seed.DOI).Err(citErr).Msg("citation query failed, keeping reference edges only")
	} else {
		edges = append(edges, c.incoming(seed, cits)...)
	}

	if refErr != nil && citErr != nil {
		return nil, errors.Join(refErr, citErr)
	}
	return edges, nil
}

// outgoing maps reference records to edges with the publication as origin.
func (c *Collector) outgoing(seed types.Seed, records []opencitations.Record) []types.CitationEdge {
	var edges []types.CitationEdge
	for _, rec := range records {
		for _, target := range doi.ExtractAll(rec.Cited) {
			e := types.CitationEdge{
				OriginDOI:     seed.DOI,
				TargetDOI:     target,
				OriginSubArea: seed.SubArea,
			}
			if e.IsSelfLoop() {
				c.Log.Debug().Str("doi", seed.DOI).Msg("skipping self-reference")
				continue
			}
			edges = append(edges, e)
		}
	}
	return edges
}

// incoming maps citation records to edges with the publication as target.
func (c *Collector) incoming(seed types.Seed, records []opencitations.Record) []types.CitationEdge {
	var edges []types.CitationEdge
	for _, rec := range records {
		for _, origin := range doi.ExtractAll(rec.Citing) {
			e := types.CitationEdge{
				OriginDOI:     origin,
				TargetDOI:     seed.DOI,
				TargetSubArea: seed.SubArea,
			}
			if e.IsSelfLoop() {
				c.Log.Debug().Str("doi", seed.DOI).Msg("skipping self-citation")
				continue
			}
			edges = append(edges, e)
		}
	}
	return edges
}

// Dedup collapses edges equal under the full (origin, target, origin
// sub-area, target sub-area) tuple, preserving first-seen order.
func Dedup(edges []types.CitationEdge) []types.CitationEdge {
	seen := make(map[types.EdgeKey]struct{}, len(edges))
	out := edges[:0:0]
	for _, e := range edges {
		k := e.Key()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}
