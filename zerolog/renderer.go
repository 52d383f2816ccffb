package zerolog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/paperpress/paperpress"
)

var _ paperpress.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with compile logging.
type LoggingRenderer struct {
	next   paperpress.Renderer
	logger zerolog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next paperpress.Renderer, logger zerolog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the compilation.
func (r *LoggingRenderer) Render(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (path string, err error) {
	defer func(begin time.Time) {
		event := r.logger.Info()
		if err != nil {
			event = r.logger.Error()
		}
		event.
			Str("title", article.Title).
			Str("engine", opts.PDFEngine).
			Str("template", opts.Template).
			Str("output", path).
			Dur("duration", time.Since(begin)).
			Err(err).
			Msg("render")
	}(time.Now())
	return r.next.Render(ctx, article, opts)
}

// ValidateOptions delegates to the wrapped renderer.
func (r *LoggingRenderer) ValidateOptions(opts paperpress.ConversionOptions) []string {
	return r.next.ValidateOptions(opts)
}
