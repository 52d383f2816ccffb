// Package htmltomarkdown converts merged article HTML into the markdown
// document handed to the PDF compiler.
package htmltomarkdown

import (
	"html"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"

	"github.com/paperpress/paperpress"
)

// unwantedSelector matches elements that never convert to useful markdown.
const unwantedSelector = "script, style, noscript, iframe, embed, object, form, button, input, textarea, select"

var (
	deepHeading  = regexp.MustCompile(`(?m)^#{7,}`)
	emptyAnchor  = regexp.MustCompile(`\[\]\([^)]*\)`)
	bareAnchor   = regexp.MustCompile(`\[([^\]]+)\]\(\s*\)`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// Ensure Converter implements paperpress.MarkupConverter at compile time.
var _ paperpress.MarkupConverter = (*Converter)(nil)

// Converter wraps html-to-markdown. Before conversion it strips
// non-content elements, re-inserts located images through the merger, and
// rewrites figcaptions as emphasized caption lines; afterwards it clamps
// heading depth and prunes conversion remnants.
type Converter struct {
	conv   *converter.Converter
	merger paperpress.ImageMerger
}

// NewConverter creates a Converter that places images with merger.
func NewConverter(merger paperpress.ImageMerger) *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv, merger: merger}
}

// Convert transforms article HTML into markdown with every valid image
// candidate placed exactly once.
func (c *Converter) Convert(contentHTML string, images []paperpress.ImageCandidate) (string, error) {
	if strings.TrimSpace(contentHTML) == "" {
		return "", paperpress.Errorf(paperpress.EINVALID, "empty HTML input")
	}

	cleaned, err := stripUnwanted(contentHTML)
	if err != nil {
		return "", err
	}

	merged, err := c.merger.MergeImages(cleaned, images)
	if err != nil {
		return "", err
	}

	merged, err = emphasizeCaptions(merged)
	if err != nil {
		return "", err
	}

	markdown, err := c.conv.ConvertString(merged)
	if err != nil {
		return "", paperpress.Errorf(paperpress.EINTERNAL, "markdown conversion failed: %v", err)
	}

	return postprocess(markdown), nil
}

func stripUnwanted(contentHTML string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return "", paperpress.Errorf(paperpress.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(unwantedSelector).Remove()

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", paperpress.Errorf(paperpress.EINTERNAL, "failed to serialize HTML: %v", err)
	}
	return out, nil
}

// emphasizeCaptions rewrites each figcaption as an emphasized paragraph so
// the caption survives conversion as a line beneath its image.
func emphasizeCaptions(contentHTML string) (string, error) {
	if !strings.Contains(contentHTML, "<figcaption") {
		return contentHTML, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return "", paperpress.Errorf(paperpress.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find("figcaption").Each(func(_ int, sel *goquery.Selection) {
		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			sel.Remove()
			return
		}
		// Caption text re-enters the parser; escape so a stray "<"
		// cannot open an element.
		sel.ReplaceWithHtml("<p><em>" + html.EscapeString(text) + "</em></p>")
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", paperpress.Errorf(paperpress.EINTERNAL, "failed to serialize HTML: %v", err)
	}
	return out, nil
}

func postprocess(markdown string) string {
	markdown = deepHeading.ReplaceAllString(markdown, "######")
	markdown = emptyAnchor.ReplaceAllString(markdown, "")
	markdown = bareAnchor.ReplaceAllString(markdown, "$1")
	markdown = blankLineRun.ReplaceAllString(markdown, "\n\n")
	return strings.TrimSpace(markdown)
}
