// Package meta scans raw HTML for document metadata: title, author,
// publication date, description and language. Extraction libraries get the
// first word; these scans are the fallback when library metadata is absent.
package meta

import (
	"html"
	"regexp"
	"strings"
	"time"
)

var (
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<meta\s+property=["']og:title["']\s+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?is)<meta\s+name=["']title["']\s+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?is)<title[^>]*>([^<]+)</title>`),
		regexp.MustCompile(`(?is)<h1[^>]*>([^<]+)</h1>`),
	}

	authorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<meta\s+name=["']author["']\s+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?is)<meta\s+property=["']article:author["']\s+content=["']([^"']+)["']`),
	}

	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<meta\s+property=["']article:published_time["']\s+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?is)<time[^>]+datetime=["']([^"']+)["']`),
		regexp.MustCompile(`(?is)<meta\s+name=["']date["']\s+content=["']([^"']+)["']`),
	}

	descriptionPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?is)<meta\s+property=["']og:description["']\s+content=["']([^"']+)["']`),
		regexp.MustCompile(`(?is)<meta\s+name=["']description["']\s+content=["']([^"']+)["']`),
	}

	langPattern = regexp.MustCompile(`(?is)<html[^>]+lang=["']([^"']+)["']`)
)

// dateLayouts cover the formats sites commonly put in datetime attributes
// and meta tags. Tried in order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// Title returns the document title, or "" when none is found. Candidates
// under 5 characters are skipped as unlikely to be real titles.
func Title(rawHTML string) string {
	for _, p := range titlePatterns {
		if m := p.FindStringSubmatch(rawHTML); m != nil {
			if title := cleanText(m[1]); len(title) > 5 {
				return title
			}
		}
	}
	return ""
}

// Author returns the document author, or "".
func Author(rawHTML string) string {
	for _, p := range authorPatterns {
		if m := p.FindStringSubmatch(rawHTML); m != nil {
			if author := cleanText(m[1]); author != "" {
				return author
			}
		}
	}
	return ""
}

// PublishedDate returns the publication date, or the zero time when none
// can be parsed.
func PublishedDate(rawHTML string) time.Time {
	for _, p := range datePatterns {
		m := p.FindStringSubmatch(rawHTML)
		if m == nil {
			continue
		}
		if t, ok := parseDate(strings.TrimSpace(m[1])); ok {
			return t
		}
	}
	return time.Time{}
}

// Description returns the meta description, or "".
func Description(rawHTML string) string {
	for _, p := range descriptionPatterns {
		if m := p.FindStringSubmatch(rawHTML); m != nil {
			if desc := cleanText(m[1]); desc != "" {
				return desc
			}
		}
	}
	return ""
}

// Language returns the html lang attribute value, or "".
func Language(rawHTML string) string {
	if m := langPattern.FindStringSubmatch(rawHTML); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func parseDate(s string) (time.Time, bool) {
	// Z suffixes without offsets trip some layouts; RFC3339 handles them.
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
		// Retry with the value truncated to the layout's length, so a
		// trailing timezone name or weekday does not defeat the parse.
		if len(s) > len(layout) {
			if t, err := time.Parse(layout, s[:len(layout)]); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(html.UnescapeString(s)), " ")
}
