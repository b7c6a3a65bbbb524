// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package graph

import (
	"github.com/pdiddy/citegraph/pkg/types"
)

// Partition buckets edges into one directed graph per configured sub-area.
//
// An edge joins area S's graph iff its origin or target sub-area equals S, so
// an edge may land in zero, one, or two graphs. Blank endpoint sub-areas are
// treated as the unknown sentinel, which, like any value outside the
// configured list, is a strict miss and qualifies the edge for no graph.
// Node sub-area attributes are first-write-only (see DiGraph.AddNode).
func Partition(edges []types.CitationEdge, areas []types.SubArea) map[types.SubArea]*DiGraph {
	graphs := make(map[types.SubArea]*DiGraph, len(areas))
	configured := make(map[types.SubArea]bool, len(areas))
	for _, a := range areas {
		graphs[a] = NewDiGraph()
		configured[a] = true
	}

	for _, e := range edges {
		originArea := e.OriginSubArea.OrUnknown()
		targetArea := e.TargetSubArea.OrUnknown()

		qualified := make(map[types.SubArea]bool, 2)
		if configured[originArea] {
			qualified[originArea] = true
		}
		if configured[targetArea] {
			qualified[targetArea] = true
		}

		for area := range qualified {
			g := graphs[area]
			g.AddNode(e.OriginDOI, originArea)
			g.AddNode(e.TargetDOI, targetArea)
			g.AddArc(e.OriginDOI, e.TargetDOI)
		}
	}

	return graphs
}
