package readability_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/mock"
	"github.com/paperpress/paperpress/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements paperpress.Extractor at compile time.
var _ paperpress.Extractor = (*readability.Extractor)(nil)

func articlePage() string {
	var body strings.Builder
	for i := 0; i < 8; i++ {
		fmt.Fprintf(&body,
			"<p>Paragraph %d carries a reasonable amount of article prose so the "+
				"readability scoring recognizes this block as main content rather "+
				"than navigation or boilerplate around the edges of the page.</p>\n", i+1)
	}
	return `<!DOCTYPE html>
<html lang="en">
<head>
	<title>The Quiet Harbor | Example News</title>
	<meta name="author" content="Jane Doe">
	<meta property="article:published_time" content="2024-03-07T09:30:00Z">
	<meta name="description" content="A morning on the waterfront.">
</head>
<body>
	<nav><a href="/">Home</a> <a href="/news">News</a></nav>
	<article>
		<h1>The Quiet Harbor</h1>
		` + body.String() + `
	</article>
	<footer>Copyright 2024 Example News</footer>
</body>
</html>`
}

func fetcherReturning(html string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (*paperpress.FetchResult, error) {
			return &paperpress.FetchResult{HTML: html, StatusCode: 200, ContentType: "text/html"}, nil
		},
	}
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := readability.NewExtractor(fetcherReturning(articlePage()))
	got, err := e.Extract(context.Background(), "https://example.com/harbor")
	require.NoError(t, err)
	require.True(t, got.Success, "error: %s", got.ErrorMessage)
	require.NotNil(t, got.Article)

	a := got.Article
	assert.Contains(t, a.Title, "Quiet Harbor")
	assert.Contains(t, a.Content, "Paragraph 1 carries")
	assert.NotEmpty(t, a.ContentHTML)
	assert.Equal(t, articlePage(), a.RawHTML)
	assert.Equal(t, "Jane Doe", a.Author)
	assert.Equal(t, 2024, a.PublishedAt.Year())
	assert.Equal(t, readability.Name, got.ExtractorUsed)
}

func TestExtractor_Extract_FetchFailure(t *testing.T) {
	t.Parallel()

	e := readability.NewExtractor(&mock.Fetcher{
		FetchFn: func(_ context.Context, _ string) (*paperpress.FetchResult, error) {
			return nil, paperpress.Errorf(paperpress.EUNAVAILABLE, "connection refused")
		},
	})

	got, err := e.Extract(context.Background(), "https://example.com/down")
	require.NoError(t, err)
	assert.False(t, got.Success)
	assert.Contains(t, got.ErrorMessage, "connection refused")
}

func TestExtractor_Extract_NoContent(t *testing.T) {
	t.Parallel()

	e := readability.NewExtractor(fetcherReturning(`<html><head><title>Empty Page Here</title></head><body></body></html>`))
	got, err := e.Extract(context.Background(), "https://example.com/empty")
	require.NoError(t, err)
	assert.False(t, got.Success)
}
