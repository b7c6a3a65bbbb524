// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph partitions a deduplicated edge set into per-sub-area directed
// graphs and serializes them as GEXF.
package graph

import (
	"github.com/pdiddy/citegraph/pkg/types"
)

// Node is a graph node: a DOI tagged with the sub-area it was first seen
// under.
type Node struct {
	ID      string
	SubArea types.SubArea
}

// Arc is a directed edge between two node IDs.
type Arc struct {
	Source string
	Target string
}

// DiGraph is a directed graph with insertion-ordered nodes and edges, so
// serialization is deterministic for a given edge list.
type DiGraph struct {
	nodes   []Node
	nodeIdx map[string]int
	arcs    []Arc
	arcSeen map[Arc]struct{}
}

// NewDiGraph returns an empty directed graph.
func NewDiGraph() *DiGraph {
	return &DiGraph{
		nodeIdx: make(map[string]int),
		arcSeen: make(map[Arc]struct{}),
	}
}

// AddNode inserts id with the given sub-area attribute. The attribute is
// first-write-only: re-adding an existing id never overwrites what was
// assigned on first insertion.
func (g *DiGraph) AddNode(id string, area types.SubArea) {
	if _, ok := g.nodeIdx[id]; ok {
		return
	}
	g.nodeIdx[id] = len(g.nodes)
	g.nodes = append(g.nodes, Node{ID: id, SubArea: area})
}

// AddArc inserts a directed edge, ignoring duplicates. Both endpoints must
// already be present as nodes.
func (g *DiGraph) AddArc(source, target string) {
	a := Arc{Source: source, Target: target}
	if _, ok := g.arcSeen[a]; ok {
		return
	}
	g.arcSeen[a] = struct{}{}
	g.arcs = append(g.arcs, a)
}

// HasNode reports whether id is in the graph.
func (g *DiGraph) HasNode(id string) bool {
	_, ok := g.nodeIdx[id]
	return ok
}

// NodeSubArea returns the sub-area attribute of id.
func (g *DiGraph) NodeSubArea(id string) (types.SubArea, bool) {
	i, ok := g.nodeIdx[id]
	if !ok {
		return "", false
	}
	return g.nodes[i].SubArea, true
}

// Nodes returns the nodes in insertion order.
func (g *DiGraph) Nodes() []Node { return g.nodes }

// Arcs returns the directed edges in insertion order.
func (g *DiGraph) Arcs() []Arc { return g.arcs }

// Order returns the node count.
func (g *DiGraph) Order() int { return len(g.nodes) }

// Size returns the edge count.
func (g *DiGraph) Size() int { return len(g.arcs) }
