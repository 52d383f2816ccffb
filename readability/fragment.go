package readability

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre, figcaption"

// htmlToText flattens an extraction HTML fragment into plain text, one
// block element per paragraph. List items get a leading dash; nested
// blocks are captured once, by their outermost matching ancestor.
func htmlToText(fragment string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return "", err
	}

	var blocks []string
	doc.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		if sel.ParentsFiltered(blockSelector).Length() > 0 {
			return
		}

		text := strings.Join(strings.Fields(sel.Text()), " ")
		if text == "" {
			return
		}
		if goquery.NodeName(sel) == "li" {
			text = "- " + text
		}
		blocks = append(blocks, text)
	})

	return strings.Join(blocks, "\n\n"), nil
}
