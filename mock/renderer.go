package mock

import (
	"context"

	"github.com/paperpress/paperpress"
)

var _ paperpress.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of paperpress.Renderer.
type Renderer struct {
	RenderFn          func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error)
	ValidateOptionsFn func(opts paperpress.ConversionOptions) []string
}

func (r *Renderer) Render(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
	return r.RenderFn(ctx, article, opts)
}

func (r *Renderer) ValidateOptions(opts paperpress.ConversionOptions) []string {
	if r.ValidateOptionsFn == nil {
		return nil
	}
	return r.ValidateOptionsFn(opts)
}
