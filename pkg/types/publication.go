// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the citegraph pipeline.
package types

// SubArea is a research sub-area label used to partition the publication
// universe (e.g. "ai", "se"). SubAreaUnknown is the sentinel used when a
// publication's sub-area was never resolved; it is an enumerated tag like any
// other, not a magic string scattered through the code.
type SubArea string

// SubAreaUnknown marks a publication whose sub-area was not resolved.
const SubAreaUnknown SubArea = "unknown"

// SubAreas is the fixed set of configured research sub-areas. Seed files and
// output graph files are keyed by these names.
var SubAreas = []SubArea{
	"ai", "arch", "bio", "chi", "cse", "data", "dbis", "ds", "formal",
	"graphics", "hardware", "ir", "net", "or", "pl", "robotics", "se",
	"security", "theory", "vision",
}

// IsConfigured reports whether s is one of the configured sub-areas.
// SubAreaUnknown is deliberately not configured: an unknown endpoint
// qualifies an edge for no graph.
func (s SubArea) IsConfigured() bool {
	for _, a := range SubAreas {
		if s == a {
			return true
		}
	}
	return false
}

// OrUnknown returns s, or SubAreaUnknown when s is blank.
func (s SubArea) OrUnknown() SubArea {
	if s == "" {
		return SubAreaUnknown
	}
	return s
}

// Publication is a normalized bibliographic record. Identifiers are bare:
// no resolver URL or scheme prefix. A Publication is built once when a raw
// work record is normalized and not mutated afterwards.
type Publication struct {
	// ID is the source-internal work identifier (e.g. a bare OpenAlex ID).
	ID string `json:"id" yaml:"id"`

	// DOI is the bare DOI, case preserved (no https://doi.org/ or doi: prefix).
	DOI string `json:"doi" yaml:"doi"`

	// Title is the work title as returned by the source.
	Title string `json:"title" yaml:"title"`

	// SubArea is the research sub-area the publication belongs to.
	SubArea SubArea `json:"sub_area" yaml:"sub_area"`

	// Subfield is the raw subfield display name reported by the source
	// (e.g. "Artificial Intelligence"), untranslated.
	Subfield string `json:"subfield" yaml:"subfield"`

	// ReferencedWorks lists bare identifiers of works this publication cites,
	// in source order. May be empty.
	ReferencedWorks []string `json:"referenced_works" yaml:"referenced_works"`

	// CitedByCount is the raw citation count reported by the source.
	CitedByCount int `json:"cited_by_count" yaml:"cited_by_count"`

	// CitedBy lists bare identifiers of works citing this publication.
	// Populated only when cited-by enrichment was requested.
	CitedBy []string `json:"cited_by,omitempty" yaml:"cited_by,omitempty"`
}

// CitationEdge is a directed citation relation: origin cites target.
// OriginSubArea and TargetSubArea are empty when the corresponding endpoint's
// sub-area was not independently resolved.
type CitationEdge struct {
	OriginDOI     string  `json:"origin_doi" yaml:"origin_doi"`
	TargetDOI     string  `json:"target_doi" yaml:"target_doi"`
	OriginSubArea SubArea `json:"origin_sub_area" yaml:"origin_sub_area"`
	TargetSubArea SubArea `json:"target_sub_area" yaml:"target_sub_area"`
}

// IsSelfLoop reports whether the edge relates a DOI to itself. Self-loops
// are meaningless in a citation graph and are dropped at creation.
func (e CitationEdge) IsSelfLoop() bool {
	return e.OriginDOI == e.TargetDOI
}

// Key returns the full-tuple identity of the edge. Two edges discovered
// independently (once via references, once via citations) with identical
// fields collapse to one entry under this key.
func (e CitationEdge) Key() EdgeKey {
	return EdgeKey(e)
}

// EdgeKey is the unique identity of a CitationEdge: the full
// (origin, target, origin sub-area, target sub-area) tuple.
type EdgeKey CitationEdge

// Seed pairs a publication DOI with the sub-area whose seed file listed it.
// The same DOI may legitimately appear under more than one sub-area; seeds
// are deduplicated as (DOI, SubArea) pairs, never collapsed per DOI.
type Seed struct {
	DOI     string  `json:"doi" yaml:"doi"`
	SubArea SubArea `json:"sub_area" yaml:"sub_area"`
}
