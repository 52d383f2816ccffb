package mock

import (
	"context"

	"github.com/paperpress/paperpress"
)

var _ paperpress.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of paperpress.Extractor.
type Extractor struct {
	NameFn    func() string
	ExtractFn func(ctx context.Context, url string) (*paperpress.ExtractionResult, error)
}

func (e *Extractor) Name() string {
	return e.NameFn()
}

func (e *Extractor) Extract(ctx context.Context, url string) (*paperpress.ExtractionResult, error) {
	return e.ExtractFn(ctx, url)
}
