// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package opencitations queries the OpenCitations index API for the
// reference and citation records of a publication.
package opencitations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/pdiddy/citegraph/internal/httputil"
)

// indexBase is the OpenCitations index API base URL. Declared as a var so
// tests can substitute an httptest server.
var indexBase = "https://opencitations.net/index/api/v2"

// DefaultTimeout bounds a single index request.
const DefaultTimeout = 10 * time.Second

// Record is one citation link as returned by the index. Citing and Cited are
// free-text identifier fields that may carry several whitespace-separated
// identifiers (omid, doi, pmid...) requiring extraction.
type Record struct {
	Citing string `json:"citing"`
	Cited  string `json:"cited"`
}

// Client is a rate-limited HTTP client for the OpenCitations index API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string
	userAgent  string
	log        zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the access token sent in the authorization header.
// A blank token leaves requests unauthenticated.
func WithToken(token string) ClientOption {
	return func(c *Client) { c.token = token }
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithRateLimit caps outgoing requests per second. Zero disables the limiter.
func WithRateLimit(rps float64) ClientOption {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// WithLogger sets the structured logger used for per-request debug output.
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

// NewClient creates an OpenCitations index client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(10), 1),
		baseURL:    indexBase,
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// References returns the records in which doi is the citing side: the
// publication's outgoing reference list.
func (c *Client) References(ctx context.Context, doi string) ([]Record, error) {
	return c.get(ctx, "references", doi, "cited")
}

// Citations returns the records in which doi is the cited side: the
// publications citing it.
func (c *Client) Citations(ctx context.Context, doi string) ([]Record, error) {
	return c.get(ctx, "citations", doi, "citing")
}

func (c *Client) get(ctx context.Context, operation, doi, require string) ([]Record, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	u := fmt.Sprintf("%s/%s/doi:%s?require=%s", c.baseURL, operation, url.PathEscape(doi), require)
	c.log.Debug().Str("doi", doi).Str("operation", operation).Msg("fetching citation records")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", c.token)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, 0)
	if err != nil {
		return nil, fmt.Errorf("OpenCitations %s request for %s: %w", operation, doi, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OpenCitations %s for %s returned HTTP %d", operation, doi, resp.StatusCode)
	}

	var records []Record
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("parsing OpenCitations %s response for %s: %w", operation, doi, err)
	}
	return records, nil
}
