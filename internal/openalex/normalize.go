// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"strings"

	"github.com/pdiddy/citegraph/pkg/types"
)

// doiPrefix is the resolver URL prefix on OpenAlex DOI fields.
const doiPrefix = "https://doi.org/"

// NormalizeID strips the OpenAlex resolver prefix from a work identifier.
// Identifiers already bare pass through unchanged.
func NormalizeID(id string) string {
	return strings.TrimPrefix(id, openAlexPrefix)
}

// NormalizeDOI strips the DOI resolver prefix, preserving case.
func NormalizeDOI(d string) string {
	return strings.TrimPrefix(d, doiPrefix)
}

// NormalizeWorks maps raw work records to canonical publications, in order.
func NormalizeWorks(works []Work) []types.Publication {
	pubs := make([]types.Publication, 0, len(works))
	for _, w := range works {
		pubs = append(pubs, NormalizeWork(w))
	}
	return pubs
}

// NormalizeWork maps one raw work record to the canonical Publication shape.
// Missing fields resolve to zero values, never to an error. The sub-area tag
// starts unknown; the seed stage is what associates publications with
// configured sub-areas.
func NormalizeWork(w Work) types.Publication {
	refs := make([]string, 0, len(w.ReferencedWorks))
	for _, r := range w.ReferencedWorks {
		refs = append(refs, NormalizeID(r))
	}

	return types.Publication{
		ID:              NormalizeID(w.ID),
		DOI:             NormalizeDOI(w.DOI),
		Title:           w.Title,
		SubArea:         types.SubAreaUnknown,
		Subfield:        w.PrimaryTopic.Subfield.DisplayName,
		ReferencedWorks: refs,
		CitedByCount:    w.CitedByCount,
	}
}
