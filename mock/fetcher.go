package mock

import (
	"context"

	"github.com/paperpress/paperpress"
)

var _ paperpress.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of paperpress.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*paperpress.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*paperpress.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ paperpress.Prober = (*Prober)(nil)

// Prober is a mock implementation of paperpress.Prober.
type Prober struct {
	ProbeFn func(ctx context.Context, url string) error
}

func (p *Prober) Probe(ctx context.Context, url string) error {
	return p.ProbeFn(ctx, url)
}
