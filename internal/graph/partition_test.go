// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/citegraph/pkg/types"
)

var testAreas = []types.SubArea{"ai", "se"}

func TestPartitionMembershipRule(t *testing.T) {
	edges := []types.CitationEdge{
		// origin in ai → ai graph only
		{OriginDOI: "10.1/a", TargetDOI: "10.1/b", OriginSubArea: "ai"},
		// target in se → se graph only
		{OriginDOI: "10.1/c", TargetDOI: "10.1/d", TargetSubArea: "se"},
		// both endpoints configured → both graphs
		{OriginDOI: "10.1/e", TargetDOI: "10.1/f", OriginSubArea: "ai", TargetSubArea: "se"},
		// neither endpoint configured → no graph
		{OriginDOI: "10.1/g", TargetDOI: "10.1/h"},
		// unconfigured area value is a strict miss
		{OriginDOI: "10.1/i", TargetDOI: "10.1/j", OriginSubArea: "astrology"},
	}

	graphs := Partition(edges, testAreas)
	require.Len(t, graphs, 2)

	ai, se := graphs["ai"], graphs["se"]
	assert.Equal(t, 2, ai.Size())
	assert.Equal(t, 2, se.Size())

	// E in graph S iff origin or target sub-area equals S.
	for _, e := range edges {
		for _, area := range testAreas {
			inGraph := false
			for _, a := range graphs[area].Arcs() {
				if a.Source == e.OriginDOI && a.Target == e.TargetDOI {
					inGraph = true
				}
			}
			want := e.OriginSubArea == area || e.TargetSubArea == area
			assert.Equal(t, want, inGraph, "edge %s->%s in graph %s", e.OriginDOI, e.TargetDOI, area)
		}
	}
}

func TestPartitionUnknownSentinelMisses(t *testing.T) {
	edges := []types.CitationEdge{
		{OriginDOI: "10.1/a", TargetDOI: "10.1/b", OriginSubArea: types.SubAreaUnknown},
		{OriginDOI: "10.1/c", TargetDOI: "10.1/d"}, // blank → unknown
	}
	graphs := Partition(edges, testAreas)
	for area, g := range graphs {
		assert.Zero(t, g.Size(), "area %s should get no edges", area)
		assert.Zero(t, g.Order())
	}
}

func TestPartitionFirstWriteWinsNodeAttribute(t *testing.T) {
	// Node 10.1/x enters the ai graph twice: first as an unresolved target,
	// then as an se-tagged origin. Its attribute keeps the first value.
	edges := []types.CitationEdge{
		{OriginDOI: "10.1/a", TargetDOI: "10.1/x", OriginSubArea: "ai"},
		{OriginDOI: "10.1/x", TargetDOI: "10.1/b", OriginSubArea: "se", TargetSubArea: "ai"},
	}

	graphs := Partition(edges, testAreas)
	area, ok := graphs["ai"].NodeSubArea("10.1/x")
	require.True(t, ok)
	assert.Equal(t, types.SubAreaUnknown, area, "first insertion tagged the node unknown")
}

func TestPartitionEdgeInBothGraphsOnce(t *testing.T) {
	edges := []types.CitationEdge{
		{OriginDOI: "10.1/a", TargetDOI: "10.1/b", OriginSubArea: "ai", TargetSubArea: "ai"},
	}
	graphs := Partition(edges, testAreas)
	assert.Equal(t, 1, graphs["ai"].Size(), "same-area endpoints add the edge once")
}

func TestDiGraphDuplicateArc(t *testing.T) {
	g := NewDiGraph()
	g.AddNode("a", "ai")
	g.AddNode("b", "se")
	g.AddArc("a", "b")
	g.AddArc("a", "b")
	assert.Equal(t, 1, g.Size())
	assert.Equal(t, 2, g.Order())
}
