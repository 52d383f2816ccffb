package pandoc_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/pandoc"
)

func testArticle() *paperpress.Article {
	a := &paperpress.Article{
		Title:       "The Deep Sea",
		Author:      "Jane Doe",
		PublishedAt: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Content:     "The ocean floor remains largely unexplored. Researchers keep finding new species there.",
		Description: "A look at deep sea exploration.",
		SourceURL:   "https://example.com/deep-sea",
		Language:    "en",
	}
	a.RecountWords()
	return a
}

func testOptions() paperpress.ConversionOptions {
	return paperpress.ConversionOptions{
		Columns:        2,
		FontSize:       "11pt",
		Template:       "article",
		Margins:        "2cm",
		FontFamily:     "times",
		PDFEngine:      "xelatex",
		TimeoutSeconds: 120,
	}
}

func TestBuildDocument(t *testing.T) {
	t.Parallel()

	t.Run("FrontMatter", func(t *testing.T) {
		t.Parallel()

		doc, err := pandoc.BuildDocument(testArticle(), testOptions())
		require.NoError(t, err)

		require.True(t, strings.HasPrefix(doc, "---\n"))
		meta, _, found := strings.Cut(strings.TrimPrefix(doc, "---\n"), "---\n")
		require.True(t, found, "front matter must be terminated")

		assert.Contains(t, meta, "title: The Deep Sea")
		assert.Contains(t, meta, "author: Jane Doe")
		assert.Contains(t, meta, "date: March 15, 2024")
		assert.Contains(t, meta, "geometry: 2cm")
		assert.Contains(t, meta, "fontsize: 11pt")
		assert.Contains(t, meta, "fontfamily: times")
		assert.Contains(t, meta, "lang: en")
		assert.Contains(t, meta, "columns: 2")
		assert.Contains(t, meta, `\usepackage{multicol}`)
		assert.Contains(t, meta, `\setlength{\columnsep}{1cm}`)
	})

	t.Run("SingleColumnOmitsColumnsVariable", func(t *testing.T) {
		t.Parallel()

		opts := testOptions()
		opts.Columns = 1
		doc, err := pandoc.BuildDocument(testArticle(), opts)
		require.NoError(t, err)

		assert.NotContains(t, doc, "columns:")
		assert.NotContains(t, doc, `\setlength{\columnsep}`)
	})

	t.Run("BylineAndDescription", func(t *testing.T) {
		t.Parallel()

		doc, err := pandoc.BuildDocument(testArticle(), testOptions())
		require.NoError(t, err)

		assert.Contains(t, doc, "*By Jane Doe • March 15, 2024*")
		assert.Contains(t, doc, "*A look at deep sea exploration.*")
	})

	t.Run("Trailer", func(t *testing.T) {
		t.Parallel()

		doc, err := pandoc.BuildDocument(testArticle(), testOptions())
		require.NoError(t, err)

		assert.Contains(t, doc, "*Word count: 12 • Estimated reading time: 1 minute*")
		assert.Contains(t, doc, "*Source: https://example.com/deep-sea*")
	})

	t.Run("WordCountGrouping", func(t *testing.T) {
		t.Parallel()

		a := testArticle()
		a.Content = strings.Repeat("word ", 1500)
		a.RecountWords()

		doc, err := pandoc.BuildDocument(a, testOptions())
		require.NoError(t, err)

		assert.Contains(t, doc, "Word count: 1,500")
		assert.Contains(t, doc, "reading time: 7 minutes")
	})

	t.Run("UntitledFallback", func(t *testing.T) {
		t.Parallel()

		a := testArticle()
		a.Title = ""
		doc, err := pandoc.BuildDocument(a, testOptions())
		require.NoError(t, err)

		assert.Contains(t, doc, "title: Untitled Article")
		assert.NotContains(t, doc, "header-left:")
	})

	t.Run("MissingMetadataOmitted", func(t *testing.T) {
		t.Parallel()

		a := &paperpress.Article{Title: "Bare", Content: "Body text only."}
		a.RecountWords()
		doc, err := pandoc.BuildDocument(a, testOptions())
		require.NoError(t, err)

		assert.NotContains(t, doc, "By ")
		assert.NotContains(t, doc, "*Source:")
		assert.Contains(t, doc, "lang: en-US")
	})

	t.Run("NilArticle", func(t *testing.T) {
		t.Parallel()

		_, err := pandoc.BuildDocument(nil, testOptions())
		assert.Equal(t, paperpress.EINVALID, paperpress.ErrorCode(err))
	})
}
