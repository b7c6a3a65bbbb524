// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package edges

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citegraph/internal/opencitations"
	"github.com/pdiddy/citegraph/pkg/types"
)

// fakeAPI implements CitationAPI with canned responses per call.
type fakeAPI struct {
	refs    []opencitations.Record
	refsErr error
	cits    []opencitations.Record
	citsErr error
}

func (f *fakeAPI) References(context.Context, string) ([]opencitations.Record, error) {
	return f.refs, f.refsErr
}

func (f *fakeAPI) Citations(context.Context, string) ([]opencitations.Record, error) {
	return f.cits, f.citsErr
}

func newCollector(api CitationAPI) *Collector {
	return &Collector{Client: api, Log: zerolog.Nop()}
}

func TestCollectOutgoingAndIncoming(t *testing.T) {
	api := &fakeAPI{
		refs: []opencitations.Record{
			{Cited: "omid:br/2 doi:10.2000/ref1"},
			{Cited: "doi:10.2000/ref2"},
		},
		cits: []opencitations.Record{
			{Citing: "omid:br/9 doi:10.3000/citer"},
		},
	}

	edges, err := newCollector(api).Collect(context.Background(), types.Seed{DOI: "10.1000/p", SubArea: "ai"})
	require.NoError(t, err)
	require.Len(t, edges, 3)

	assert.Equal(t, types.CitationEdge{
		OriginDOI: "10.1000/p", TargetDOI: "10.2000/ref1", OriginSubArea: "ai",
	}, edges[0])
	assert.Equal(t, types.CitationEdge{
		OriginDOI: "10.1000/p", TargetDOI: "10.2000/ref2", OriginSubArea: "ai",
	}, edges[1])
	assert.Equal(t, types.CitationEdge{
		OriginDOI: "10.3000/citer", TargetDOI: "10.1000/p", TargetSubArea: "ai",
	}, edges[2])
}

// No (P, P) edge may survive even when the raw data reports P citing itself.
func TestCollectSuppressesSelfLoops(t *testing.T) {
	api := &fakeAPI{
		refs: []opencitations.Record{
			{Cited: "doi:10.1000/p doi:10.2000/other"},
		},
		cits: []opencitations.Record{
			{Citing: "doi:10.1000/p"},
		},
	}

	edges, err := newCollector(api).Collect(context.Background(), types.Seed{DOI: "10.1000/p", SubArea: "se"})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "10.2000/other", edges[0].TargetDOI)
	for _, e := range edges {
		assert.False(t, e.IsSelfLoop())
	}
}

// If the reference query fails but the citation query succeeds, the result
// equals the citation-derived edges only, and no error escapes.
func TestCollectPartialFailureIsolation(t *testing.T) {
	api := &fakeAPI{
		refsErr: errors.New("connection reset"),
		cits: []opencitations.Record{
			{Citing: "doi:10.3000/citer"},
		},
	}

	edges, err := newCollector(api).Collect(context.Background(), types.Seed{DOI: "10.1000/p", SubArea: "ai"})
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, "10.3000/citer", edges[0].OriginDOI)
	assert.Equal(t, "10.1000/p", edges[0].TargetDOI)
}

func TestCollectBothQueriesFail(t *testing.T) {
	api := &fakeAPI{
		refsErr: errors.New("refs down"),
		citsErr: errors.New("cits down"),
	}

	edges, err := newCollector(api).Collect(context.Background(), types.Seed{DOI: "10.1000/p", SubArea: "ai"})
	require.Error(t, err)
	assert.Empty(t, edges)
}

func TestCollectIgnoresUnrecognizedIdentifiers(t *testing.T) {
	api := &fakeAPI{
		refs: []opencitations.Record{
			{Cited: "omid:br/061 pmid:12345"},
		},
	}

	edges, err := newCollector(api).Collect(context.Background(), types.Seed{DOI: "10.1000/p", SubArea: "ai"})
	require.NoError(t, err)
	assert.Empty(t, edges, "records without a DOI marker contribute no edges")
}

func TestDedup(t *testing.T) {
	a := types.CitationEdge{OriginDOI: "10.1/a", TargetDOI: "10.1/b", OriginSubArea: "ai"}
	b := types.CitationEdge{OriginDOI: "10.1/a", TargetDOI: "10.1/b", OriginSubArea: "ai", TargetSubArea: "se"}
	c := types.CitationEdge{OriginDOI: "10.1/b", TargetDOI: "10.1/a"}

	got := Dedup([]types.CitationEdge{a, b, a, c, b})
	assert.Equal(t, []types.CitationEdge{a, b, c}, got, "full-tuple equality, first-seen order")
}

func TestDedupEmpty(t *testing.T) {
	assert.Empty(t, Dedup(nil))
}
