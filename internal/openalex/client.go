// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package openalex fetches paginated work records from the OpenAlex Works API
// and normalizes them into canonical publications.
package openalex

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/citegraph/pkg/types"
)

// worksBase is the OpenAlex Works endpoint. Declared as a var so tests can
// substitute an httptest server.
var worksBase = "https://api.openalex.org/works"

// openAlexPrefix is the resolver URL prefix on OpenAlex work identifiers.
const openAlexPrefix = "https://openalex.org/"

// defaultPerPage mirrors the API default page size.
const defaultPerPage = 25

// citedByPerPage is the page size used for cited-by queries.
const citedByPerPage = 25

// WorksQuery is a base works query: everything except page parameters.
type WorksQuery struct {
	// Select lists the work fields to request.
	Select []string

	// Filter holds field-equality predicates joined by commas.
	Filter string

	// Sort is the result ordering, e.g. "publication_year:desc".
	Sort string
}

// Client drives paginated queries against the Works API through a PageFetcher.
type Client struct {
	Fetcher PageFetcher

	// Email is sent as the mailto parameter for polite pool access.
	Email string

	Log zerolog.Logger
}

// pageURL assembles the request URL for one page of q.
func (c *Client) pageURL(q WorksQuery, page, perPage int) string {
	params := url.Values{}
	if len(q.Select) > 0 {
		params.Set("select", strings.Join(q.Select, ","))
	}
	if q.Filter != "" {
		params.Set("filter", q.Filter)
	}
	if q.Sort != "" {
		params.Set("sort", q.Sort)
	}
	if c.Email != "" {
		params.Set("mailto", c.Email)
	}
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("per_page", fmt.Sprintf("%d", perPage))
	return worksBase + "?" + params.Encode()
}

// FetchAll retrieves every page of q and returns the normalized publications
// in page order. The first page is fetched alone to learn the total result
// count; remaining pages follow sequentially. A failure on any page aborts
// the whole fetch; callers that can tolerate partial data catch it at their
// own boundary.
func (c *Client) FetchAll(ctx context.Context, q WorksQuery, perPage int) ([]types.Publication, error) {
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	first, err := c.Fetcher.FetchPage(ctx, c.pageURL(q, 1, perPage))
	if err != nil {
		return nil, fmt.Errorf("fetching first page: %w", err)
	}

	pubs := NormalizeWorks(first.Results)
	totalPages := pageCount(first.Meta.Count, perPage)
	c.Log.Debug().Int("total_count", first.Meta.Count).Int("total_pages", totalPages).Msg("works query sized")

	for page := 2; page <= totalPages; page++ {
		p, err := c.Fetcher.FetchPage(ctx, c.pageURL(q, page, perPage))
		if err != nil {
			return nil, fmt.Errorf("fetching page %d/%d: %w", page, totalPages, err)
		}
		c.Log.Debug().Int("page", page).Int("records", len(p.Results)).Msg("works page fetched")
		pubs = append(pubs, NormalizeWorks(p.Results)...)
	}

	return pubs, nil
}

// CitedBy returns the bare identifiers of all works citing workID, paginated
// through the cites: filter. On a mid-fetch failure it returns the
// identifiers gathered so far along with the error; callers log it and keep
// the partial result rather than aborting the batch.
func (c *Client) CitedBy(ctx context.Context, workID string) ([]string, error) {
	q := WorksQuery{
		Select: []string{"id"},
		Filter: "cites:" + openAlexPrefix + workID,
	}

	first, err := c.Fetcher.FetchPage(ctx, c.pageURL(q, 1, citedByPerPage))
	if err != nil {
		return nil, fmt.Errorf("fetching cited-by for %s: %w", workID, err)
	}

	ids := citingIDs(first.Results)
	totalPages := pageCount(first.Meta.Count, citedByPerPage)

	for page := 2; page <= totalPages; page++ {
		p, err := c.Fetcher.FetchPage(ctx, c.pageURL(q, page, citedByPerPage))
		if err != nil {
			return ids, fmt.Errorf("fetching cited-by page %d for %s: %w", page, workID, err)
		}
		ids = append(ids, citingIDs(p.Results)...)
	}

	return ids, nil
}

// pageCount computes ceil(total/perPage), defaulting to a single page when
// the count is zero or absent.
func pageCount(total, perPage int) int {
	if total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

func citingIDs(works []Work) []string {
	ids := make([]string, 0, len(works))
	for _, w := range works {
		if id := strings.TrimPrefix(w.ID, openAlexPrefix); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// OpenAlex API JSON structures.

// WorksPage is one page of a works query.
type WorksPage struct {
	Meta    Meta   `json:"meta"`
	Results []Work `json:"results"`
}

// Meta carries the pagination metadata of a works page.
type Meta struct {
	Count   int `json:"count"`
	PerPage int `json:"per_page"`
	Page    int `json:"page"`
}

// Work is a raw work record as returned by the API.
type Work struct {
	ID                   string       `json:"id"`
	DOI                  string       `json:"doi"`
	Title                string       `json:"title"`
	PrimaryTopic         PrimaryTopic `json:"primary_topic"`
	ReferencedWorksCount int          `json:"referenced_works_count"`
	ReferencedWorks      []string     `json:"referenced_works"`
	CitedByCount         int          `json:"cited_by_count"`
	CitedByAPIURL        string       `json:"cited_by_api_url"`
}

// PrimaryTopic nests the subfield classification of a work.
type PrimaryTopic struct {
	Subfield Subfield `json:"subfield"`
}

// Subfield is the sub-area classification within a topic.
type Subfield struct {
	DisplayName string `json:"display_name"`
}
