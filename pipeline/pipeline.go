package pipeline

import (
	"context"
	"os"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/clean"
)

// Pipeline wires the conversion stages together. All collaborators except
// Coordinator and Renderer are optional; a nil Prober skips the liveness
// check and a nil Locator or Images skips image handling.
type Pipeline struct {
	Coordinator *Coordinator
	Prober      paperpress.Prober
	Cleaner     *clean.Cleaner
	Locator     paperpress.ImageLocator
	Images      paperpress.ImageProcessor
	Converter   paperpress.MarkupConverter
	Renderer    paperpress.Renderer

	// Preferred names the extraction strategy to try first, if any.
	Preferred string
}

// Convert runs the full pipeline for one URL and returns the path of the
// generated PDF. Temporary image files are removed before returning,
// regardless of outcome.
func (p *Pipeline) Convert(ctx context.Context, rawURL string, opts paperpress.ConversionOptions) (string, error) {
	url, err := paperpress.ValidateURL(rawURL)
	if err != nil {
		return "", err
	}

	if p.Prober != nil {
		if err := p.Prober.Probe(ctx, url); err != nil {
			return "", err
		}
	}

	result, err := p.Coordinator.Extract(ctx, url, p.Preferred)
	if err != nil {
		return "", err
	}
	if result.Failed() {
		return "", paperpress.ErrorfHint(paperpress.EEXTRACT,
			"Try again later, or pass a different extraction strategy.",
			"extraction failed after %d attempts: %s", len(result.Attempts), result.ErrorMessage)
	}

	article := result.Article
	if p.Cleaner != nil {
		p.Cleaner.Article(article)
	}
	if err := article.Validate(); err != nil {
		return "", err
	}

	images, cleanup, err := p.prepareImages(ctx, article, opts)
	if err != nil {
		return "", err
	}
	defer cleanup()

	if p.Converter != nil && article.ContentHTML != "" {
		markdown, err := p.Converter.Convert(article.ContentHTML, images)
		if err != nil {
			return "", err
		}
		if p.Cleaner != nil {
			markdown = p.Cleaner.Markdown(markdown)
		}
		article.Content = markdown
		article.RecountWords()
	}

	return p.Renderer.Render(ctx, article, opts)
}

// prepareImages locates and processes article images into a scratch
// directory. The returned cleanup removes the directory and must always
// be called. Image handling is best effort: a locator failure means the
// document renders without images.
//
// Candidates come from the original page markup, not the extracted body:
// both extraction strategies drop img elements, so ContentHTML is only a
// fallback for articles that arrived without RawHTML.
func (p *Pipeline) prepareImages(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) ([]paperpress.ImageCandidate, func(), error) {
	noop := func() {}

	if !opts.IncludeImages || p.Locator == nil || p.Images == nil {
		return nil, noop, nil
	}
	source := article.RawHTML
	if source == "" {
		source = article.ContentHTML
	}
	if source == "" {
		return nil, noop, nil
	}

	candidates, err := p.Locator.Locate(source, article.SourceURL)
	if err != nil || len(candidates) == 0 {
		return nil, noop, nil
	}

	article.Images = article.Images[:0]
	for _, c := range candidates {
		article.Images = append(article.Images, c.URL)
	}

	dir, err := os.MkdirTemp("", "paperpress-images-")
	if err != nil {
		return nil, noop, paperpress.Errorf(paperpress.EINTERNAL, "create image dir: %v", err)
	}
	cleanup := func() { os.RemoveAll(dir) }

	processed := p.Images.Process(ctx, candidates, dir)
	if ctx.Err() != nil {
		cleanup()
		return nil, noop, ctx.Err()
	}
	return processed, cleanup, nil
}
