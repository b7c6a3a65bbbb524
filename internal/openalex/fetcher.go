// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/pdiddy/citegraph/internal/httputil"
)

// PageFetcher retrieves one URL's worth of API response and decodes it as a
// works page. The pipeline does not care how the page is obtained; the plain
// HTTP fetcher covers normal use and the browser fetcher covers deployments
// where the API rejects non-browser clients.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (*WorksPage, error)
}

// HTTPFetcher fetches pages with a shared rate-limited HTTP client.
type HTTPFetcher struct {
	Client    *http.Client
	UserAgent string

	// Limiter paces requests against the API. Nil disables pacing.
	Limiter *rate.Limiter
}

// FetchPage performs a GET against url and decodes the JSON body.
func (f *HTTPFetcher) FetchPage(ctx context.Context, url string) (*WorksPage, error) {
	if f.Limiter != nil {
		if err := f.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, f.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("OpenAlex API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenAlex API returned HTTP %d", resp.StatusCode)
	}

	var page WorksPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("parsing OpenAlex response: %w", err)
	}
	return &page, nil
}
