// Package goquery implements DOM-level image work: locating candidate
// article images in raw page HTML, and re-inserting processed images into
// extraction output that no longer contains them.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/paperpress/paperpress"
)

// MaxImages caps the number of candidates returned per document.
const MaxImages = 15

const contextWords = 3

// uiNoiseKeywords mark images that are page chrome rather than article
// content. Matched as substrings of the lowercased URL and alt text.
var uiNoiseKeywords = []string{
	"icon", "logo", "avatar", "profile", "thumbnail",
	"button", "arrow", "social", "share", "like",
	"comment", "tracking", "pixel", "beacon",
	"ad-", "ad_", "ads/", "advertisement", "promo",
	"header", "footer", "nav", "menu", "sidebar",
}

// tinyDimensionTokens in a URL indicate icon-sized assets.
var tinyDimensionTokens = []string{"16x16", "24x24", "32x32", "48x48"}

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg", ".bmp"}

// Ensure Locator implements paperpress.ImageLocator at compile time.
var _ paperpress.ImageLocator = (*Locator)(nil)

// Locator scans article HTML for embeddable images.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// streamItem is one element of the document's sequential content stream:
// either a run of words from a text element, or an accepted image.
type streamItem struct {
	words []string
	img   int // index into candidates, -1 for text items
}

// Locate walks the document's paragraph/heading/image stream in order,
// filters out UI noise, resolves URLs against baseURL, deduplicates by
// query-stripped URL and records up to three words of surrounding text as
// the anchor for later re-insertion.
func (l *Locator) Locate(html, baseURL string) ([]paperpress.ImageCandidate, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, paperpress.Errorf(paperpress.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, paperpress.Errorf(paperpress.EINVALID, "failed to parse HTML: %v", err)
	}

	var (
		candidates []paperpress.ImageCandidate
		stream     []streamItem
	)
	seen := make(map[string]struct{})

	doc.Find("p, h1, h2, h3, h4, h5, h6, li, img").Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) != "img" {
			if words := strings.Fields(sel.Text()); len(words) > 0 {
				stream = append(stream, streamItem{words: words, img: -1})
			}
			return
		}

		src, ok := sel.Attr("src")
		if !ok || strings.TrimSpace(src) == "" {
			return
		}
		resolved := resolveImageURL(base, src)
		if resolved == "" {
			return
		}

		alt := strings.TrimSpace(sel.AttrOr("alt", ""))
		if isUINoise(resolved, alt) {
			return
		}

		key := dedupKey(resolved)
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}

		stream = append(stream, streamItem{img: len(candidates)})
		candidates = append(candidates, paperpress.ImageCandidate{
			URL:      resolved,
			AltText:  alt,
			Caption:  figureCaption(sel),
			Sequence: len(candidates),
			Valid:    true,
		})
	})

	fillContexts(stream, candidates)

	if len(candidates) > MaxImages {
		candidates = candidates[:MaxImages]
	}
	return candidates, nil
}

// fillContexts assigns each accepted image the nearest words on either side
// of its stream position. Missing context on a side is left empty.
func fillContexts(stream []streamItem, candidates []paperpress.ImageCandidate) {
	for i, item := range stream {
		if item.img < 0 {
			continue
		}
		candidates[item.img].ContextBefore = nearbyWords(stream, i, -1)
		candidates[item.img].ContextAfter = nearbyWords(stream, i, +1)
	}
}

func nearbyWords(stream []streamItem, from, dir int) string {
	var words []string
	for i := from + dir; i >= 0 && i < len(stream) && len(words) < contextWords; i += dir {
		if stream[i].img >= 0 {
			continue
		}
		w := stream[i].words
		if dir < 0 {
			for j := len(w) - 1; j >= 0 && len(words) < contextWords; j-- {
				words = append(words, w[j])
			}
		} else {
			for j := 0; j < len(w) && len(words) < contextWords; j++ {
				words = append(words, w[j])
			}
		}
	}
	if dir < 0 {
		for i, j := 0, len(words)-1; i < j; i, j = i+1, j-1 {
			words[i], words[j] = words[j], words[i]
		}
	}
	return strings.Join(words, " ")
}

func figureCaption(img *goquery.Selection) string {
	fig := img.Closest("figure")
	if fig.Length() == 0 {
		return ""
	}
	caption := strings.Join(strings.Fields(fig.Find("figcaption").First().Text()), " ")
	if len(caption) > 500 {
		caption = caption[:500]
	}
	return caption
}

func resolveImageURL(base *url.URL, src string) string {
	src = strings.TrimSpace(src)
	if strings.HasPrefix(src, "//") {
		src = base.Scheme + ":" + src
	}

	ref, err := url.Parse(src)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}

func isUINoise(imageURL, alt string) bool {
	urlLower := strings.ToLower(imageURL)
	altLower := strings.ToLower(alt)
	for _, kw := range uiNoiseKeywords {
		if strings.Contains(urlLower, kw) {
			return true
		}
		if altLower != "" && strings.Contains(altLower, kw) {
			return true
		}
	}

	for _, tok := range tinyDimensionTokens {
		if strings.Contains(urlLower, tok) {
			return true
		}
	}

	// Without a recognized image extension the URL is more likely a
	// tracking pixel or a dynamic asset endpoint.
	u, err := url.Parse(imageURL)
	if err != nil {
		return true
	}
	path := strings.ToLower(u.Path)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return false
		}
	}
	return true
}

func dedupKey(imageURL string) string {
	key := strings.ToLower(imageURL)
	if i := strings.IndexByte(key, '?'); i >= 0 {
		key = key[:i]
	}
	return key
}
