// Package trafilatura implements the primary extraction strategy using
// go-trafilatura's density/boilerplate heuristics.
package trafilatura

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/meta"
)

// Name identifies this strategy in attempt histories and CLI flags.
const Name = "trafilatura"

// Ensure Extractor implements paperpress.Extractor at compile time.
var _ paperpress.Extractor = (*Extractor)(nil)

// Extractor fetches a page and extracts its main content with
// go-trafilatura. Trafilatura keeps a structural HTML variant of the body,
// which downstream image re-anchoring depends on.
type Extractor struct {
	fetcher paperpress.Fetcher
}

// NewExtractor creates an Extractor that downloads pages with fetcher.
func NewExtractor(fetcher paperpress.Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// Name returns the strategy name.
func (e *Extractor) Name() string { return Name }

// Extract downloads url and returns the extracted article. Failures to
// produce a qualifying article are reported in the result, not as an
// error; only context cancellation aborts with an error.
func (e *Extractor) Extract(ctx context.Context, url string) (*paperpress.ExtractionResult, error) {
	start := time.Now()

	page, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return e.failure(paperpress.ErrorMessage(err), start), nil
	}

	result, err := trafilatura.Extract(strings.NewReader(page.HTML), trafilatura.Options{
		EnableFallback: true,
	})
	if err != nil {
		return e.failure("content extraction failed: "+err.Error(), start), nil
	}

	content := strings.TrimSpace(result.ContentText)
	if content == "" {
		return e.failure("no article content found", start), nil
	}

	title := strings.TrimSpace(result.Metadata.Title)
	if title == "" {
		title = meta.Title(page.HTML)
	}
	if title == "" {
		return e.failure("no article title found", start), nil
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return e.failure("failed to render content: "+err.Error(), start), nil
		}
	}

	date := result.Metadata.Date
	if date.IsZero() {
		date = meta.PublishedDate(page.HTML)
	}
	description := strings.TrimSpace(result.Metadata.Description)
	if description == "" {
		description = meta.Description(page.HTML)
	}
	language := strings.TrimSpace(result.Metadata.Language)
	if language == "" {
		language = meta.Language(page.HTML)
	}

	article := &paperpress.Article{
		Title:       title,
		Content:     content,
		ContentHTML: contentHTML,
		RawHTML:     page.HTML,
		Author:      strings.TrimSpace(result.Metadata.Author),
		PublishedAt: date,
		SourceURL:   url,
		Description: description,
		Language:    language,
	}
	if img := strings.TrimSpace(result.Metadata.Image); img != "" {
		article.Images = []string{img}
	}
	article.RecountWords()

	return &paperpress.ExtractionResult{
		Article:       article,
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

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
