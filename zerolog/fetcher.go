package zerolog

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/paperpress/paperpress"
)

var _ paperpress.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   paperpress.Fetcher
	logger zerolog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next paperpress.Fetcher, logger zerolog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (result *paperpress.FetchResult, err error) {
	defer func(begin time.Time) {
		event := f.logger.Debug().
			Str("url", url).
			Dur("duration", time.Since(begin)).
			Err(err)
		if result != nil {
			event = event.
				Int("status", result.StatusCode).
				Int("bytes", len(result.HTML))
		}
		event.Msg("fetch")
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
