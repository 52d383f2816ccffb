package paperpress

import "context"

// FetchResult holds the response of a page fetch.
type FetchResult struct {
	// HTML is the response body.
	HTML string

	// StatusCode is the HTTP status code.
	StatusCode int

	// ContentType is the response Content-Type header value.
	ContentType string
}

// Fetcher retrieves HTML from URLs.
// Implementations may use plain HTTP or browser automation for
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the page at url. A non-2xx status or a non-HTML
	// content type is an error (EUNAVAILABLE).
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Prober performs a best-effort liveness check of a URL before the full
// fetch: HEAD first, falling back to GET without reading the body when
// the server rejects HEAD.
type Prober interface {
	// Probe returns nil when the URL looks reachable and serves HTML.
	Probe(ctx context.Context, url string) error
}
