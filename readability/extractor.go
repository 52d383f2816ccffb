// Package readability implements the fallback extraction strategy using
// go-readability's DOM scoring. It is less precise than trafilatura but
// succeeds on some pages where the primary strategy comes up empty.
package readability

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/meta"
)

// Name identifies this strategy in attempt histories and CLI flags.
const Name = "readability"

// Ensure Extractor implements paperpress.Extractor at compile time.
var _ paperpress.Extractor = (*Extractor)(nil)

// Extractor fetches a page and extracts its main content with
// go-readability. Metadata that readability does not surface is recovered
// from the original page's meta tags.
type Extractor struct {
	fetcher paperpress.Fetcher
}

// NewExtractor creates an Extractor that downloads pages with fetcher.
func NewExtractor(fetcher paperpress.Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// Name returns the strategy name.
func (e *Extractor) Name() string { return Name }

// Extract downloads pageURL and returns the extracted article. Failures to
// produce a qualifying article are reported in the result, not as an
// error; only context cancellation aborts with an error.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*paperpress.ExtractionResult, error) {
	start := time.Now()

	page, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return e.failure(paperpress.ErrorMessage(err), start), nil
	}

	parsed, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(page.HTML), parsed)
	if err != nil {
		return e.failure("content extraction failed: "+err.Error(), start), nil
	}

	contentHTML := strings.TrimSpace(article.Content)
	if contentHTML == "" {
		return e.failure("no article content found", start), nil
	}

	content, err := htmlToText(contentHTML)
	if err != nil || strings.TrimSpace(content) == "" {
		content = strings.TrimSpace(article.TextContent)
	}
	if content == "" {
		return e.failure("no article content found", start), nil
	}

	title := strings.TrimSpace(article.Title)
	if len(title) < 3 {
		title = meta.Title(page.HTML)
	}
	if title == "" {
		return e.failure("no article title found", start), nil
	}

	author := strings.TrimSpace(article.Byline)
	if author == "" {
		author = meta.Author(page.HTML)
	}
	description := strings.TrimSpace(article.Excerpt)
	if description == "" {
		description = meta.Description(page.HTML)
	}

	result := &paperpress.Article{
		Title:       title,
		Content:     content,
		ContentHTML: contentHTML,
		RawHTML:     page.HTML,
		Author:      author,
		PublishedAt: meta.PublishedDate(page.HTML),
		SourceURL:   pageURL,
		Description: description,
		Language:    meta.Language(page.HTML),
	}
	result.RecountWords()

	return &paperpress.ExtractionResult{
		Article:       result,
		Success:       true,
		ExtractorUsed: Name,
		Elapsed:       time.Since(start),
	}, nil
}

func (e *Extractor) failure(msg string, start time.Time) *paperpress.ExtractionResult {
	return &paperpress.ExtractionResult{
		Success:       false,
		ErrorMessage:  msg,
		ExtractorUsed: Name,
		Elapsed:       time.Since(start),
	}
}
