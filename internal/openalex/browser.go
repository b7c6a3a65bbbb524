// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package openalex

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/chromedp/chromedp"
)

// BrowserFetcher loads API pages through a headless browser and parses the
// rendered body text as JSON. Some OpenAlex deployments throttle plain HTTP
// clients long before they throttle browsers.
type BrowserFetcher struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewBrowserFetcher starts a headless browser session shared by all page
// fetches. Callers must Close it to release the browser on every exit path.
func NewBrowserFetcher(parent context.Context) (*BrowserFetcher, error) {
	allocCtx, allocCancel := chromedp.NewExecAllocator(parent, chromedp.DefaultExecAllocatorOptions[:]...)
	ctx, ctxCancel := chromedp.NewContext(allocCtx)

	cancel := func() {
		ctxCancel()
		allocCancel()
	}

	// Start the browser eagerly so a missing Chrome binary fails here,
	// not on the first page of a long run.
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("starting headless browser: %w", err)
	}

	return &BrowserFetcher{ctx: ctx, cancel: cancel}, nil
}

// Close shuts the browser session down. Safe to call more than once.
func (f *BrowserFetcher) Close() {
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}

// FetchPage navigates to url, waits for the body, and decodes its text
// content as a works page.
func (f *BrowserFetcher) FetchPage(ctx context.Context, url string) (*WorksPage, error) {
	runCtx, cancel := context.WithCancel(f.ctx)
	defer cancel()

	// Honor the caller's deadline/cancellation on top of the session context.
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-runCtx.Done():
		}
	}()

	var body string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Text("body", &body, chromedp.ByQuery, chromedp.NodeVisible),
	)
	if err != nil {
		return nil, fmt.Errorf("browser fetch of %s: %w", url, err)
	}

	var page WorksPage
	if err := json.Unmarshal([]byte(body), &page); err != nil {
		return nil, fmt.Errorf("parsing browser-rendered response: %w", err)
	}
	return &page, nil
}
