package http

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/paperpress/paperpress"
)

// Image size caps. Files under MinImageBytes are almost always tracking
// pixels or 1x1 spacers; files over MaxImageBytes are rejected before any
// decoding work.
const (
	MinImageBytes = 1 * 1024
	MaxImageBytes = 10 * 1024 * 1024
)

// Ensure Downloader implements paperpress.ImageDownloader at compile time.
var _ paperpress.ImageDownloader = (*Downloader)(nil)

// Downloader fetches raw image bytes with size and content-type limits.
type Downloader struct {
	client    *http.Client
	userAgent string
}

// NewDownloader creates a new image Downloader.
func NewDownloader(opts ...Option) *Downloader {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return &Downloader{
		client:    &http.Client{Timeout: f.timeout},
		userAgent: f.userAgent,
	}
}

// Download retrieves the image at url, enforcing the size caps and
// requiring an image/* content type. It returns the raw bytes and the
// reported MIME type.
func (d *Downloader) Download(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", paperpress.Errorf(paperpress.EINVALID, "invalid image URL: %v", err)
	}
	req.Header.Set("User-Agent", d.userAgent)
	req.Header.Set("Accept", "image/*,*/*;q=0.8")

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, "", paperpress.Errorf(paperpress.EUNAVAILABLE, "image download failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", paperpress.Errorf(paperpress.EUNAVAILABLE, "server returned status %d for image", resp.StatusCode)
	}

	mimeType := strings.ToLower(strings.TrimSpace(strings.SplitN(resp.Header.Get("Content-Type"), ";", 2)[0]))
	if mimeType != "" && !strings.HasPrefix(mimeType, "image/") {
		return nil, "", paperpress.Errorf(paperpress.EINVALID, "not an image: content type %q", mimeType)
	}
	if resp.ContentLength > MaxImageBytes {
		return nil, "", paperpress.Errorf(paperpress.EINVALID, "image too large: %d bytes", resp.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, "", paperpress.Errorf(paperpress.EUNAVAILABLE, "failed to read image data: %v", err)
	}
	if len(data) > MaxImageBytes {
		return nil, "", paperpress.Errorf(paperpress.EINVALID, "image too large: exceeds %d bytes", MaxImageBytes)
	}
	if len(data) < MinImageBytes {
		return nil, "", paperpress.Errorf(paperpress.EINVALID, "image too small: %d bytes, likely a tracking pixel", len(data))
	}

	return data, mimeType, nil
}
