package goquery

import (
	"html"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/paperpress/paperpress"
)

// Placement scoring. These are tuning parameters: a context substring match
// on either side of the image scores contextMatchScore, and an additional
// proximityBonus applies when both contexts appear joined near the
// paragraph's position in the full text. A paragraph must exceed
// MinPlacementScore to receive an image; otherwise placement falls back to
// a position proportional to the image's original sequence.
const (
	contextMatchScore = 10
	proximityBonus    = 20
	proximityWindow   = 200

	MinPlacementScore = 5
)

// Ensure Merger implements paperpress.ImageMerger at compile time.
var _ paperpress.ImageMerger = (*Merger)(nil)

// Merger re-anchors images into extraction HTML. Readability-style
// extraction strips images from the content; the locator captured them from
// the original page together with a few words of surrounding text. The
// merger finds, for each image, the paragraph in the extracted HTML whose
// text best matches that surrounding context, and inserts a figure there.
type Merger struct{}

// NewMerger creates a new Merger.
func NewMerger() *Merger {
	return &Merger{}
}

// paragraph is one candidate insertion point in the extracted document.
type paragraph struct {
	sel    *goquery.Selection
	text   string // lowercased element text
	offset int    // start offset of text within the full document text
}

// MergeImages inserts a figure element for every valid candidate. Images
// are placed highest original sequence first so that earlier insertions
// cannot shift the anchors of later ones; two images anchored to the same
// paragraph therefore keep their original relative order. Every valid image
// is placed exactly once.
func (m *Merger) MergeImages(contentHTML string, images []paperpress.ImageCandidate) (string, error) {
	valid := make([]paperpress.ImageCandidate, 0, len(images))
	for _, img := range images {
		if img.Valid {
			valid = append(valid, img)
		}
	}
	if len(valid) == 0 {
		return contentHTML, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(contentHTML))
	if err != nil {
		return "", paperpress.Errorf(paperpress.EINVALID, "failed to parse content HTML: %v", err)
	}

	paras, fullText := collectParagraphs(doc)

	sort.Slice(valid, func(i, j int) bool { return valid[i].Sequence > valid[j].Sequence })

	total := len(images)
	body := doc.Find("body")
	for _, img := range valid {
		figure := figureHTML(img)

		if best := bestParagraph(paras, fullText, img); best != nil {
			best.sel.AfterHtml(figure)
			continue
		}

		if len(paras) == 0 {
			body.AppendHtml(figure)
			continue
		}

		// No paragraph matched the context; distribute by original
		// sequence so the image still lands in roughly the right region.
		idx := img.Sequence * len(paras) / total
		if idx >= len(paras) {
			idx = len(paras) - 1
		}
		paras[idx].sel.AfterHtml(figure)
	}

	merged, err := body.Html()
	if err != nil {
		return "", paperpress.Errorf(paperpress.EINTERNAL, "failed to serialize merged HTML: %v", err)
	}
	return merged, nil
}

func collectParagraphs(doc *goquery.Document) ([]paragraph, string) {
	var (
		paras []paragraph
		sb    strings.Builder
	)
	doc.Find("p, h1, h2, h3, h4, h5, h6").Each(func(_ int, sel *goquery.Selection) {
		text := strings.ToLower(strings.TrimSpace(sel.Text()))
		if text == "" {
			return
		}
		paras = append(paras, paragraph{sel: sel, text: text, offset: sb.Len()})
		sb.WriteString(text)
		sb.WriteString(" ")
	})
	return paras, sb.String()
}

// bestParagraph returns the highest-scoring paragraph above
// MinPlacementScore, or nil when none qualifies.
func bestParagraph(paras []paragraph, fullText string, img paperpress.ImageCandidate) *paragraph {
	before := strings.ToLower(strings.TrimSpace(img.ContextBefore))
	after := strings.ToLower(strings.TrimSpace(img.ContextAfter))
	if before == "" && after == "" {
		return nil
	}

	joinedAt := -1
	if before != "" && after != "" {
		joinedAt = strings.Index(fullText, before+" "+after)
	}

	var (
		best      *paragraph
		bestScore int
	)
	for i := range paras {
		p := &paras[i]

		var score int
		if before != "" && strings.Contains(p.text, before) {
			score += contextMatchScore
		}
		if after != "" && strings.Contains(p.text, after) {
			score += contextMatchScore
		}
		if joinedAt >= 0 && abs(joinedAt-p.offset) <= proximityWindow {
			score += proximityBonus
		}

		if score > MinPlacementScore && score > bestScore {
			best, bestScore = p, score
		}
	}
	return best
}

func figureHTML(img paperpress.ImageCandidate) string {
	src := img.LocalPath
	if src == "" {
		src = img.URL
	}

	var sb strings.Builder
	sb.WriteString("<figure><img src=\"")
	sb.WriteString(html.EscapeString(src))
	sb.WriteString("\"")
	if img.AltText != "" {
		sb.WriteString(` alt="`)
		sb.WriteString(html.EscapeString(img.AltText))
		sb.WriteString(`"`)
	}
	sb.WriteString("/>")
	if img.Caption != "" {
		sb.WriteString("<figcaption>")
		sb.WriteString(html.EscapeString(img.Caption))
		sb.WriteString("</figcaption>")
	}
	sb.WriteString("</figure>")
	return sb.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
