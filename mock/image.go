package mock

import (
	"context"

	"github.com/paperpress/paperpress"
)

var _ paperpress.ImageLocator = (*ImageLocator)(nil)

// ImageLocator is a mock implementation of paperpress.ImageLocator.
type ImageLocator struct {
	LocateFn func(html, baseURL string) ([]paperpress.ImageCandidate, error)
}

func (l *ImageLocator) Locate(html, baseURL string) ([]paperpress.ImageCandidate, error) {
	return l.LocateFn(html, baseURL)
}

var _ paperpress.ImageDownloader = (*ImageDownloader)(nil)

// ImageDownloader is a mock implementation of paperpress.ImageDownloader.
type ImageDownloader struct {
	DownloadFn func(ctx context.Context, url string) ([]byte, string, error)
}

func (d *ImageDownloader) Download(ctx context.Context, url string) ([]byte, string, error) {
	return d.DownloadFn(ctx, url)
}

var _ paperpress.ImageProcessor = (*ImageProcessor)(nil)

// ImageProcessor is a mock implementation of paperpress.ImageProcessor.
type ImageProcessor struct {
	ProcessFn func(ctx context.Context, candidates []paperpress.ImageCandidate, outputDir string) []paperpress.ImageCandidate
}

func (p *ImageProcessor) Process(ctx context.Context, candidates []paperpress.ImageCandidate, outputDir string) []paperpress.ImageCandidate {
	return p.ProcessFn(ctx, candidates, outputDir)
}
