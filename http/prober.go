package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/paperpress/paperpress"
)

// DefaultProbeTimeout bounds the liveness check; it is deliberately
// shorter than the fetch timeout.
const DefaultProbeTimeout = 10 * time.Second

// Ensure Prober implements paperpress.Prober at compile time.
var _ paperpress.Prober = (*Prober)(nil)

// Prober checks that a URL is reachable and serves HTML before the
// pipeline commits to a full fetch. It issues a HEAD request, falling back
// to GET (without reading the body) for servers that reject HEAD.
type Prober struct {
	client    *http.Client
	userAgent string
}

// NewProber creates a new Prober.
func NewProber(opts ...Option) *Prober {
	f := &Fetcher{
		timeout:   DefaultProbeTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return &Prober{
		client:    &http.Client{Timeout: f.timeout},
		userAgent: f.userAgent,
	}
}

// Probe returns nil when url looks fetchable.
func (p *Prober) Probe(ctx context.Context, url string) error {
	resp, err := p.do(ctx, http.MethodHead, url)
	if err != nil {
		return paperpress.Errorf(paperpress.EUNAVAILABLE, "URL is not reachable: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode == http.StatusMethodNotAllowed {
		resp, err = p.do(ctx, http.MethodGet, url)
		if err != nil {
			return paperpress.Errorf(paperpress.EUNAVAILABLE, "URL is not reachable: %v", err)
		}
		resp.Body.Close()
	}

	if resp.StatusCode >= 400 {
		return paperpress.Errorf(paperpress.EUNAVAILABLE, "server returned status %d for %s", resp.StatusCode, url)
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))
	if contentType != "" && !strings.Contains(contentType, "text/html") &&
		!strings.Contains(contentType, "application/xhtml") {
		return paperpress.Errorf(paperpress.EINVALID, "URL does not serve an HTML page: content type %q", contentType)
	}

	return nil
}

func (p *Prober) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)
	return p.client.Do(req)
}
