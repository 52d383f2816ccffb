package paperpress

import "context"

// Extractor is one strategy for turning a URL into a candidate Article.
// Implementations fetch the page themselves (through an injected Fetcher)
// and convert internal failures into a Success=false result rather than
// an error; a non-nil error indicates the strategy could not run at all.
type Extractor interface {
	// Name identifies the strategy in attempt histories and logs.
	Name() string

	// Extract downloads and parses the page at url. The result is never
	// nil when err is nil.
	Extract(ctx context.Context, url string) (*ExtractionResult, error)
}
