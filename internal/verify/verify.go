// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify checks a collected edge list for mutual citations: pairs of
// publications that each cite the other.
package verify

import (
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/citegraph/internal/edges"
	"github.com/pdiddy/citegraph/pkg/types"
)

// Pair is an unordered publication pair, stored with A < B so each
// bidirectional citation is reported exactly once.
type Pair struct {
	A, B string
}

// canonical orders the two DOIs lexicographically.
func canonical(origin, target string) Pair {
	if origin > target {
		origin, target = target, origin
	}
	return Pair{A: origin, B: target}
}

// Bidirectional returns every pair of publications that cite each other.
// Self-loops never pair with themselves. The result is sorted for stable
// output.
func Bidirectional(edgeList []types.CitationEdge) []Pair {
	set := make(map[[2]string]struct{}, len(edgeList))
	for _, e := range edgeList {
		set[[2]string{e.OriginDOI, e.TargetDOI}] = struct{}{}
	}

	found := make(map[Pair]struct{})
	for key := range set {
		if key[0] == key[1] {
			continue
		}
		if _, ok := set[[2]string{key[1], key[0]}]; ok {
			found[canonical(key[0], key[1])] = struct{}{}
		}
	}

	pairs := make([]Pair, 0, len(found))
	for p := range found {
		pairs = append(pairs, p)
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].A != pairs[j].A {
			return pairs[i].A < pairs[j].A
		}
		return pairs[i].B < pairs[j].B
	})
	return pairs
}

// CheckFile loads an edge CSV, finds bidirectional pairs, and writes a report
// to w. It returns the pairs found.
func CheckFile(path string, w io.Writer) ([]Pair, error) {
	edgeList, err := edges.ReadCSV(path)
	if err != nil {
		return nil, err
	}
	pairs := Bidirectional(edgeList)
	if len(pairs) == 0 {
		fmt.Fprintln(w, "No two-way citations were detected.")
		return pairs, nil
	}
	fmt.Fprintf(w, "Two-way citations found: %d\n", len(pairs))
	for _, p := range pairs {
		fmt.Fprintf(w, "  %s <-> %s\n", p.A, p.B)
	}
	return pairs, nil
}
