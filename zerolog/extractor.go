// Package zerolog provides logging decorators for the core interfaces,
// wrapping implementations with structured operation logs.
package zerolog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/paperpress/paperpress"
)

var _ paperpress.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with per-attempt logging.
type LoggingExtractor struct {
	next   paperpress.Extractor
	logger zerolog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next paperpress.Extractor, logger zerolog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Name delegates to the wrapped extractor.
func (e *LoggingExtractor) Name() string {
	return e.next.Name()
}

// Extract delegates to the wrapped extractor and logs the outcome.
func (e *LoggingExtractor) Extract(ctx context.Context, url string) (result *paperpress.ExtractionResult, err error) {
	defer func(begin time.Time) {
		event := e.logger.Info()
		if err != nil || (result != nil && result.Failed()) {
			event = e.logger.Warn()
		}

		event = event.
			Str("extractor", e.next.Name()).
			Str("url", url).
			Dur("duration", time.Since(begin)).
			Err(err)
		if result != nil {
			event = event.Bool("success", result.Success)
			if result.ErrorMessage != "" {
				event = event.Str("reason", result.ErrorMessage)
			}
			if result.Article != nil {
				event = event.Int("words", result.Article.WordCount)
			}
		}
		event.Msg("extract")
	}(time.Now())
	return e.next.Extract(ctx, url)
}
