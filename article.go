package paperpress

import (
	"strings"
	"time"
)

// Article is the canonical extracted-content record. It is created by an
// extraction strategy from raw HTML, normalized in place by the content
// cleaner and the markup converter, and consumed read-only by the renderer.
// Lifetime is a single conversion request; nothing is persisted.
type Article struct {
	// Title is the article headline. Required, non-empty after cleaning.
	Title string

	// Content is the article body. Strategies fill it with plain text;
	// the markup converter replaces it with markdown.
	Content string

	// ContentHTML is the structural HTML variant of the body, retained so
	// images can be re-anchored after the readability pass stripped them.
	ContentHTML string

	// RawHTML is the full page markup as fetched. Extraction strips
	// images from the body, so the image locator scans the original page.
	RawHTML string

	// Author is the byline, if one was found.
	Author string

	// PublishedAt is the publication date, zero if unknown.
	PublishedAt time.Time

	// Images holds image URLs in order of appearance in the source,
	// deduplicated by normalized URL.
	Images []string

	// SourceURL is the URL the article was extracted from.
	SourceURL string

	// Description is a short summary, bounded to DescriptionMaxLen.
	Description string

	// Language is a best-effort BCP-47-ish language tag.
	Language string

	// WordCount is derived from Content. Call RecountWords after any
	// mutation of Content to keep the invariant
	// WordCount == len(strings.Fields(Content)).
	WordCount int
}

// DescriptionMaxLen bounds Article.Description.
const DescriptionMaxLen = 500

// wordsPerMinute is the reading speed assumed by ReadingTime.
const wordsPerMinute = 200

// RecountWords recomputes WordCount from Content.
func (a *Article) RecountWords() {
	a.WordCount = len(strings.Fields(a.Content))
}

// ReadingTime estimates reading time in minutes, never less than one
// minute for non-empty content.
func (a *Article) ReadingTime() int {
	if a.WordCount <= 0 {
		return 0
	}
	minutes := a.WordCount / wordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// FormattedDate returns the publication date as "January 2, 2006", or an
// empty string if the date is unknown.
func (a *Article) FormattedDate() string {
	if a.PublishedAt.IsZero() {
		return ""
	}
	return a.PublishedAt.Format("January 2, 2006")
}

// ShortTitle returns the title truncated to max characters, cutting at a
// word boundary when one falls in the last 30% of the budget.
func (a *Article) ShortTitle(max int) string {
	if len(a.Title) <= max {
		return a.Title
	}
	shortened := a.Title[:max]
	if idx := strings.LastIndex(shortened, " "); idx > max*7/10 {
		shortened = shortened[:idx]
	}
	return shortened + "..."
}

// Validate returns an error if the article is missing required fields.
func (a *Article) Validate() error {
	if strings.TrimSpace(a.Title) == "" {
		return Errorf(EINVALID, "article title required")
	}
	if strings.TrimSpace(a.Content) == "" {
		return Errorf(EINVALID, "article content required")
	}
	return nil
}

// Attempt records one strategy run during coordinated extraction.
type Attempt struct {
	Extractor string        `json:"extractor"`
	Success   bool          `json:"success"`
	Elapsed   time.Duration `json:"elapsed"`
	Error     string        `json:"error,omitempty"`
}

// ExtractionResult is the outcome envelope of an extraction. The invariant
// Success == true implies Article != nil.
type ExtractionResult struct {
	Article       *Article
	Success       bool
	ErrorMessage  string
	ExtractorUsed string
	Elapsed       time.Duration

	// Attempts is the ordered history of strategy runs, populated by the
	// coordinator regardless of each run's outcome.
	Attempts []Attempt
}

// Failed reports whether the extraction produced no usable article.
func (r *ExtractionResult) Failed() bool {
	return !r.Success || r.Article == nil
}
