// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points the package at a httptest server and returns a client
// backed by the plain HTTP fetcher.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	old := worksBase
	worksBase = ts.URL
	t.Cleanup(func() { worksBase = old })

	return &Client{
		Fetcher: &HTTPFetcher{Client: ts.Client(), UserAgent: "citegraph-test/0"},
		Log:     zerolog.Nop(),
	}
}

func workJSON(id int) string {
	return fmt.Sprintf(`{"id": "https://openalex.org/W%d", "doi": "https://doi.org/10.1000/%d", "title": "Work %d"}`, id, id, id)
}

func TestFetchAllPagination(t *testing.T) {
	// total_count=95, per_page=25 must issue exactly ceil(95/25)=4 requests.
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		require.Equal(t, "25", r.URL.Query().Get("per_page"))

		n := 25
		if page == 4 {
			n = 20
		}
		works := ""
		for i := 0; i < n; i++ {
			if i > 0 {
				works += ","
			}
			works += workJSON(page*100 + i)
		}
		fmt.Fprintf(w, `{"meta": {"count": 95, "per_page": 25, "page": %d}, "results": [%s]}`, page, works)
	})

	pubs, err := c.FetchAll(context.Background(), WorksQuery{Filter: "publication_year:2024"}, 25)
	require.NoError(t, err)
	assert.Equal(t, int32(4), atomic.LoadInt32(&calls))
	assert.Len(t, pubs, 95)
	// Pages are concatenated in ascending order.
	assert.Equal(t, "W100", pubs[0].ID)
	assert.Equal(t, "W400", pubs[75].ID)
}

func TestFetchAllZeroCount(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		fmt.Fprint(w, `{"meta": {"count": 0}, "results": []}`)
	})

	pubs, err := c.FetchAll(context.Background(), WorksQuery{}, 25)
	require.NoError(t, err)
	assert.Empty(t, pubs)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "zero count defaults to a single page")
}

func TestFetchAllFirstPageFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.FetchAll(context.Background(), WorksQuery{}, 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first page")
}

func TestFetchAllMalformedFirstPage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `this is not json`)
	})

	_, err := c.FetchAll(context.Background(), WorksQuery{}, 25)
	require.Error(t, err)
}

func TestFetchAllLaterPageFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"meta": {"count": 50, "per_page": 25, "page": 1}, "results": [%s]}`, workJSON(1))
	})

	_, err := c.FetchAll(context.Background(), WorksQuery{}, 25)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page 2/2")
}

func TestCitedBy(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "cites:https://openalex.org/W42", r.URL.Query().Get("filter"))
		page := r.URL.Query().Get("page")
		switch page {
		case "1":
			fmt.Fprint(w, `{"meta": {"count": 27}, "results": [{"id": "https://openalex.org/W1"}, {"id": "https://openalex.org/W2"}]}`)
		default:
			fmt.Fprint(w, `{"meta": {"count": 27}, "results": [{"id": "https://openalex.org/W3"}]}`)
		}
	})

	ids, err := c.CitedBy(context.Background(), "W42")
	require.NoError(t, err)
	assert.Equal(t, []string{"W1", "W2", "W3"}, ids)
}

func TestCitedByPartialOnLaterFailure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") != "1" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"meta": {"count": 30}, "results": [{"id": "https://openalex.org/W1"}]}`)
	})

	ids, err := c.CitedBy(context.Background(), "W42")
	require.Error(t, err)
	assert.Equal(t, []string{"W1"}, ids, "already-gathered ids survive a mid-fetch failure")
}

func TestPageCount(t *testing.T) {
	tests := []struct {
		total, perPage, want int
	}{
		{95, 25, 4},
		{100, 25, 4},
		{101, 25, 5},
		{0, 25, 1},
		{-1, 25, 1},
		{1, 25, 1},
	}
	for _, tt := range tests {
		if got := pageCount(tt.total, tt.perPage); got != tt.want {
			t.Errorf("pageCount(%d, %d) = %d, want %d", tt.total, tt.perPage, got, tt.want)
		}
	}
}

func TestPageURLIncludesMailto(t *testing.T) {
	c := &Client{Email: "user@example.com", Log: zerolog.Nop()}
	u := c.pageURL(WorksQuery{Select: []string{"id", "doi"}, Filter: "f:1", Sort: "publication_year:desc"}, 2, 10)
	assert.Contains(t, u, "mailto=user%40example.com")
	assert.Contains(t, u, "page=2")
	assert.Contains(t, u, "per_page=10")
	assert.Contains(t, u, "select=id%2Cdoi")
}
