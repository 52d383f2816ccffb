// Package http provides HTTP-based implementations of paperpress.Fetcher,
// paperpress.Prober and the image downloader, for pages that don't require
// JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/paperpress/paperpress"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
// Kept consistent with rod.DefaultFetchTimeout.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the client to origin servers.
const DefaultUserAgent = "paperpress/1.0 (+https://github.com/paperpress/paperpress)"

// Ensure Fetcher implements paperpress.Fetcher at compile time.
var _ paperpress.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages over plain HTTP. Unlike rod.Fetcher it does
// not execute JavaScript and is suitable for server-rendered pages only.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url. Non-2xx statuses and non-HTML content
// types are EUNAVAILABLE errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*paperpress.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, paperpress.Errorf(paperpress.EINVALID, "invalid request URL: %v", err)
	}
	f.setHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, paperpress.Errorf(paperpress.EUNAVAILABLE, "request failed: %v", err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, paperpress.Errorf(paperpress.EUNAVAILABLE, "server returned status %d for %s", resp.StatusCode, url)
	}
	if contentType != "" && !strings.Contains(strings.ToLower(contentType), "text/html") &&
		!strings.Contains(strings.ToLower(contentType), "application/xhtml") {
		return nil, paperpress.Errorf(paperpress.EUNAVAILABLE, "not an HTML page: content type %q", contentType)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, paperpress.Errorf(paperpress.EUNAVAILABLE, "failed to read response body: %v", err)
	}

	return &paperpress.FetchResult{
		HTML:        string(body),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
	}, nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func (f *Fetcher) setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
}
