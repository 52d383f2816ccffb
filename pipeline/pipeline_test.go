package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/clean"
	"github.com/paperpress/paperpress/mock"
	"github.com/paperpress/paperpress/pipeline"
)

func articleWithHTML() *paperpress.Article {
	a := goodArticle()
	a.Author = "By Jane Doe"
	a.ContentHTML = "<p>" + a.Content + "</p>"
	a.SourceURL = "https://example.com/a"
	return a
}

func extractorFor(a *paperpress.Article) *mock.Extractor {
	return named("beta", func(ctx context.Context, url string) (*paperpress.ExtractionResult, error) {
		return &paperpress.ExtractionResult{Article: a, Success: true, ExtractorUsed: "beta"}, nil
	})
}

func TestPipeline_Convert(t *testing.T) {
	t.Parallel()

	t.Run("FullFlow", func(t *testing.T) {
		t.Parallel()

		var probed, located, processed, converted, rendered bool

		p := &pipeline.Pipeline{
			Coordinator: &pipeline.Coordinator{Strategies: []paperpress.Extractor{extractorFor(articleWithHTML())}},
			Prober: &mock.Prober{ProbeFn: func(ctx context.Context, url string) error {
				probed = true
				assert.Equal(t, "https://example.com/a", url)
				return nil
			}},
			Cleaner: clean.New(),
			Locator: &mock.ImageLocator{LocateFn: func(html, baseURL string) ([]paperpress.ImageCandidate, error) {
				located = true
				return []paperpress.ImageCandidate{{URL: "https://example.com/i.jpg", Valid: true}}, nil
			}},
			Images: &mock.ImageProcessor{ProcessFn: func(ctx context.Context, candidates []paperpress.ImageCandidate, outputDir string) []paperpress.ImageCandidate {
				processed = true
				assert.NotEmpty(t, outputDir)
				return candidates
			}},
			Converter: &mock.MarkupConverter{ConvertFn: func(contentHTML string, images []paperpress.ImageCandidate) (string, error) {
				converted = true
				assert.Len(t, images, 1)
				return "converted markdown body with several words in it", nil
			}},
			Renderer: &mock.Renderer{RenderFn: func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
				rendered = true
				assert.Equal(t, "Jane Doe", article.Author)
				assert.Equal(t, "converted markdown body with several words in it", article.Content)
				assert.Equal(t, 8, article.WordCount)
				return "/tmp/out.pdf", nil
			}},
		}

		out, err := p.Convert(context.Background(), "https://example.com/a", paperpress.ConversionOptions{IncludeImages: true})
		require.NoError(t, err)
		assert.Equal(t, "/tmp/out.pdf", out)
		assert.True(t, probed)
		assert.True(t, located)
		assert.True(t, processed)
		assert.True(t, converted)
		assert.True(t, rendered)
	})

	t.Run("LocatorScansOriginalPage", func(t *testing.T) {
		t.Parallel()

		// Extraction strips img elements, so candidates must come from
		// the fetched page, not the extracted body.
		a := articleWithHTML()
		a.RawHTML = "<html><body><p>" + a.Content + `</p><img src="/photo.jpg" alt="glacier"></body></html>`

		var scanned string
		p := &pipeline.Pipeline{
			Coordinator: &pipeline.Coordinator{Strategies: []paperpress.Extractor{extractorFor(a)}},
			Locator: &mock.ImageLocator{LocateFn: func(html, baseURL string) ([]paperpress.ImageCandidate, error) {
				scanned = html
				assert.Equal(t, "https://example.com/a", baseURL)
				return []paperpress.ImageCandidate{{URL: "https://example.com/photo.jpg", Valid: true}}, nil
			}},
			Images: &mock.ImageProcessor{ProcessFn: func(ctx context.Context, candidates []paperpress.ImageCandidate, outputDir string) []paperpress.ImageCandidate {
				return candidates
			}},
			Renderer: &mock.Renderer{RenderFn: func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
				assert.Equal(t, []string{"https://example.com/photo.jpg"}, article.Images)
				return "/tmp/out.pdf", nil
			}},
		}

		_, err := p.Convert(context.Background(), "https://example.com/a", paperpress.ConversionOptions{IncludeImages: true})
		require.NoError(t, err)
		assert.Equal(t, a.RawHTML, scanned)
		assert.Contains(t, scanned, "<img")
	})

	t.Run("ConverterOutputCleaned", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Pipeline{
			Coordinator: &pipeline.Coordinator{Strategies: []paperpress.Extractor{extractorFor(articleWithHTML())}},
			Cleaner:     clean.New(),
			Converter: &mock.MarkupConverter{ConvertFn: func(contentHTML string, images []paperpress.ImageCandidate) (string, error) {
				return "The committee met for three hours to weigh the proposal.\n\n" +
					"Subscribe to our newsletter for updates\n\n" +
					"The final vote is expected early next week.", nil
			}},
			Renderer: &mock.Renderer{RenderFn: func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
				assert.NotContains(t, article.Content, "Subscribe to")
				assert.Contains(t, article.Content, "final vote is expected")
				return "/tmp/out.pdf", nil
			}},
		}

		_, err := p.Convert(context.Background(), "https://example.com/a", paperpress.ConversionOptions{})
		require.NoError(t, err)
	})

	t.Run("InvalidURL", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Pipeline{Coordinator: &pipeline.Coordinator{}}
		_, err := p.Convert(context.Background(), "ftp://example.com/a", paperpress.ConversionOptions{})
		assert.Equal(t, paperpress.EINVALID, paperpress.ErrorCode(err))
	})

	t.Run("ProbeFailureStopsPipeline", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Pipeline{
			Coordinator: &pipeline.Coordinator{Strategies: []paperpress.Extractor{extractorFor(articleWithHTML())}},
			Prober: &mock.Prober{ProbeFn: func(ctx context.Context, url string) error {
				return paperpress.Errorf(paperpress.EUNAVAILABLE, "connection refused")
			}},
		}

		_, err := p.Convert(context.Background(), "https://example.com/a", paperpress.ConversionOptions{})
		assert.Equal(t, paperpress.EUNAVAILABLE, paperpress.ErrorCode(err))
	})

	t.Run("ExtractionFailure", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Pipeline{
			Coordinator: &pipeline.Coordinator{Strategies: []paperpress.Extractor{
				failing("alpha", "no content"),
			}},
			Renderer: &mock.Renderer{},
		}

		_, err := p.Convert(context.Background(), "https://example.com/a", paperpress.ConversionOptions{})
		assert.Equal(t, paperpress.EEXTRACT, paperpress.ErrorCode(err))
		assert.Contains(t, paperpress.ErrorMessage(err), "no content")
	})

	t.Run("ImagesSkippedWhenDisabled", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Pipeline{
			Coordinator: &pipeline.Coordinator{Strategies: []paperpress.Extractor{extractorFor(articleWithHTML())}},
			Locator: &mock.ImageLocator{LocateFn: func(html, baseURL string) ([]paperpress.ImageCandidate, error) {
				t.Fatal("locator must not run when images are disabled")
				return nil, nil
			}},
			Images: &mock.ImageProcessor{},
			Renderer: &mock.Renderer{RenderFn: func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
				return "/tmp/out.pdf", nil
			}},
		}

		_, err := p.Convert(context.Background(), "https://example.com/a", paperpress.ConversionOptions{IncludeImages: false})
		require.NoError(t, err)
	})

	t.Run("LocatorFailureRendersWithoutImages", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Pipeline{
			Coordinator: &pipeline.Coordinator{Strategies: []paperpress.Extractor{extractorFor(articleWithHTML())}},
			Locator: &mock.ImageLocator{LocateFn: func(html, baseURL string) ([]paperpress.ImageCandidate, error) {
				return nil, paperpress.Errorf(paperpress.EINTERNAL, "bad html")
			}},
			Images: &mock.ImageProcessor{},
			Converter: &mock.MarkupConverter{ConvertFn: func(contentHTML string, images []paperpress.ImageCandidate) (string, error) {
				assert.Empty(t, images)
				return "body without any images but plenty of words", nil
			}},
			Renderer: &mock.Renderer{RenderFn: func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
				return "/tmp/out.pdf", nil
			}},
		}

		_, err := p.Convert(context.Background(), "https://example.com/a", paperpress.ConversionOptions{IncludeImages: true})
		require.NoError(t, err)
	})

	t.Run("PreferredStrategyForwarded", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Pipeline{
			Coordinator: &pipeline.Coordinator{Strategies: []paperpress.Extractor{
				failing("alpha", "should not be used"),
				extractorFor(articleWithHTML()),
			}},
			Renderer: &mock.Renderer{RenderFn: func(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
				return "/tmp/out.pdf", nil
			}},
			Preferred: "alpha",
		}

		// The preferred strategy fails, so the pipeline falls back.
		_, err := p.Convert(context.Background(), "https://example.com/a", paperpress.ConversionOptions{})
		require.NoError(t, err)
	})
}
