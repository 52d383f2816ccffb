// Package clean normalizes extracted article text: it repairs encoding
// artifacts, strips boilerplate, fixes punctuation and filters paragraphs
// that are unlikely to be article prose. Cleaning is idempotent: running a
// pass over already-clean text yields the same output.
package clean

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/paperpress/paperpress"
)

// DescriptionMaxLen caps cleaned descriptions.
const DescriptionMaxLen = 500

const (
	minParagraphLen   = 20
	maxParaNoiseRatio = 0.5
	maxLineNoiseRatio = 0.7
)

// boilerplatePatterns match recurring non-article lines: share prompts,
// newsletter CTAs, ad markers, navigation, related-content teasers, comment
// prompts, legal lines and reading-time stamps. Matched case-insensitively
// against whole lines.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?im)^share this (article|story|post).*$`),
	regexp.MustCompile(`(?im)^follow us on.*$`),
	regexp.MustCompile(`(?im)^like us on.*$`),
	regexp.MustCompile(`(?im)^subscribe to.*$`),
	regexp.MustCompile(`(?im)^sign up for.*newsletter.*$`),
	regexp.MustCompile(`(?im)^get our.*newsletter.*$`),
	regexp.MustCompile(`(?im)^advertisement\b.*$`),
	regexp.MustCompile(`(?im)^sponsored content.*$`),
	regexp.MustCompile(`(?im)^promoted content.*$`),
	regexp.MustCompile(`(?im)^\[ad\]\s*$`),
	regexp.MustCompile(`(?im)^click here.*$`),
	regexp.MustCompile(`(?im)^read more\b.*$`),
	regexp.MustCompile(`(?im)^continue reading.*$`),
	regexp.MustCompile(`(?im)^(next|previous) page.*$`),
	regexp.MustCompile(`(?im)^back to top.*$`),
	regexp.MustCompile(`(?im)^related articles?\b.*$`),
	regexp.MustCompile(`(?im)^you might also like.*$`),
	regexp.MustCompile(`(?im)^recommended for you.*$`),
	regexp.MustCompile(`(?im)^more from\b.*$`),
	regexp.MustCompile(`(?im)^also read:?.*$`),
	regexp.MustCompile(`(?im)^leave a comment.*$`),
	regexp.MustCompile(`(?im)^comments? \(\d+\).*$`),
	regexp.MustCompile(`(?im)^join the conversation.*$`),
	regexp.MustCompile(`(?im)^what do you think\?.*$`),
	regexp.MustCompile(`(?im)^copyright.*\d{4}.*$`),
	regexp.MustCompile(`(?im)^all rights reserved.*$`),
	regexp.MustCompile(`(?im)^terms of use.*$`),
	regexp.MustCompile(`(?im)^privacy policy.*$`),
	regexp.MustCompile(`(?im)^(published|updated).*\bago\b.*$`),
	regexp.MustCompile(`(?im)^\d+ min read.*$`),
	regexp.MustCompile(`(?im)^reading time:.*$`),
}

var titleTagPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\[?\s*UPDATED?\s*\]?:?`),
	regexp.MustCompile(`(?i)\[?\s*BREAKING\s*\]?:?`),
	regexp.MustCompile(`(?i)\[?\s*EXCLUSIVE\s*\]?:?`),
	regexp.MustCompile(`(?i)\[?\s*VIDEO\s*\]?:?`),
	regexp.MustCompile(`(?i)\[?\s*PHOTOS?\s*\]?:?`),
}

// abbreviations are terms whose trailing dot is not a sentence boundary.
var abbreviations = []string{
	"Mr", "Mrs", "Ms", "Dr", "Prof", "Sr", "Jr",
	"Inc", "Ltd", "Corp", "Co", "vs", "etc", "e.g", "i.e",
	"Jan", "Feb", "Mar", "Apr", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
	"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun",
}

// encodingReplacer repairs smart punctuation, non-breaking spaces and the
// usual double-encoded UTF-8 artifacts.
var encodingReplacer = strings.NewReplacer(
	" ", " ",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", " - ",
	"…", "...",
	"â€™", "'",
	"â€œ", `"`,
	"â€", `"`,
	"â€“", "-",
	"â€”", " - ",
)

var (
	spaceRuns        = regexp.MustCompile(`[ \t]+`)
	blankLineRuns    = regexp.MustCompile(`\n\s*\n\s*\n+`)
	spaceBeforeStop  = regexp.MustCompile(`\s+([.!?])`)
	stopSpacing      = regexp.MustCompile(`([.!?])[ \t]+([A-Za-z])`)
	dotRuns          = regexp.MustCompile(`\.{4,}`)
	bangRuns         = regexp.MustCompile(`!{2,}`)
	questionRuns     = regexp.MustCompile(`\?{2,}`)
	commaSpacing     = regexp.MustCompile(`\s*,[ \t]*`)
	bulletPrefix     = regexp.MustCompile(`(?m)^[\x{2022}\x{2023}\x{25E6}\x{2043}\x{2219}*-][ \t]+`)
	numberedPrefix   = regexp.MustCompile(`(?m)^(\d+)\.[ \t]+`)
	siteSuffix       = regexp.MustCompile(`\s+[|\x{2014}]\s+[^|\x{2014}]+$`)
	siteHyphenSuffix = regexp.MustCompile(`\s+-\s+[^-]+$`)
	authorPrefix     = regexp.MustCompile(`(?i)^(by|author:|written by)\s+`)
	emailPattern     = regexp.MustCompile(`\S+@\S+\.\S+`)
	handlePattern    = regexp.MustCompile(`@\w+`)
	letterPattern    = regexp.MustCompile(`[a-zA-Z]`)
)

// abbrevPlaceholder never appears in article text; it marks abbreviation
// dots so sentence-spacing repair skips them. Restoration replaces the
// bare rune, so a placeholder survives even when spacing repair separated
// it from its abbreviation.
const abbrevPlaceholder = "〰"

// Cleaner applies the normalization pipeline. The zero value is not usable;
// construct with New.
type Cleaner struct {
	abbrevProtect *strings.Replacer
}

func New() *Cleaner {
	protect := make([]string, 0, len(abbreviations)*2)
	for _, ab := range abbreviations {
		protect = append(protect, ab+".", ab+abbrevPlaceholder)
	}
	return &Cleaner{
		abbrevProtect: strings.NewReplacer(protect...),
	}
}

// Article cleans title, author, content and description in place and
// recounts words.
func (c *Cleaner) Article(a *paperpress.Article) {
	if a == nil {
		return
	}
	a.Title = c.Title(a.Title)
	a.Author = c.Author(a.Author)
	a.Content = c.Content(a.Content)
	a.Description = c.Description(a.Description)
	a.RecountWords()
}

// Title strips trailing site-name suffixes and bracketed tags like
// [BREAKING], then normalizes encoding and whitespace.
func (c *Cleaner) Title(title string) string {
	if title == "" {
		return ""
	}

	title = fixEncoding(title)

	// Strip a site-name suffix only when a non-empty prefix remains.
	if m := siteSuffix.FindStringIndex(title); m != nil && m[0] > 0 {
		title = title[:m[0]]
	}
	if m := siteHyphenSuffix.FindStringIndex(title); m != nil && m[0] > 0 {
		title = title[:m[0]]
	}

	for _, p := range titleTagPatterns {
		title = p.ReplaceAllString(title, "")
	}

	return collapseSpaces(title)
}

// Author strips "By"/"Author:" prefixes, email addresses and @-handles.
// Returns "" when the remainder is not a plausible name.
func (c *Cleaner) Author(author string) string {
	if author == "" {
		return ""
	}

	author = fixEncoding(author)
	author = authorPrefix.ReplaceAllString(author, "")
	author = emailPattern.ReplaceAllString(author, "")
	author = handlePattern.ReplaceAllString(author, "")
	author = collapseSpaces(author)

	if len(author) < 2 || len(author) > 100 || !letterPattern.MatchString(author) {
		return ""
	}
	return author
}

// Content runs the full normalization pipeline over article body text.
func (c *Cleaner) Content(content string) string {
	if content == "" {
		return ""
	}

	content = fixEncoding(content)
	content = normalizeWhitespace(content)

	for _, p := range boilerplatePatterns {
		content = p.ReplaceAllString(content, "")
	}

	content = c.fixPunctuation(content)
	content = filterParagraphs(content)
	content = normalizeBullets(content)
	content = normalizeWhitespace(content)

	return strings.TrimSpace(content)
}

// Markdown normalizes converter output before rendering: the same
// encoding, boilerplate and punctuation repair as Content, minus the
// stages that would damage markup. The paragraph filter would drop short
// headings and image references, and stripping space before a stop would
// fuse "text ![alt](...)" into broken image syntax.
func (c *Cleaner) Markdown(content string) string {
	if content == "" {
		return ""
	}

	content = fixEncoding(content)
	content = normalizeWhitespace(content)

	for _, p := range boilerplatePatterns {
		content = p.ReplaceAllString(content, "")
	}

	content = c.abbrevProtect.Replace(content)
	content = stopSpacing.ReplaceAllString(content, "$1 $2")
	content = dotRuns.ReplaceAllString(content, "...")
	content = questionRuns.ReplaceAllString(content, "?")
	content = commaSpacing.ReplaceAllString(content, ", ")
	content = strings.ReplaceAll(content, abbrevPlaceholder, ".")

	content = normalizeWhitespace(content)

	return strings.TrimSpace(content)
}

// Description cleans like Content and clamps to DescriptionMaxLen.
func (c *Cleaner) Description(desc string) string {
	desc = c.Content(desc)
	if len(desc) > DescriptionMaxLen {
		cut := desc[:DescriptionMaxLen-3]
		if i := strings.LastIndex(cut, " "); i > 0 {
			cut = cut[:i]
		}
		desc = cut + "..."
	}
	return desc
}

func (c *Cleaner) fixPunctuation(s string) string {
	s = c.abbrevProtect.Replace(s)

	s = spaceBeforeStop.ReplaceAllString(s, "$1")
	s = stopSpacing.ReplaceAllString(s, "$1 $2")
	s = dotRuns.ReplaceAllString(s, "...")
	s = bangRuns.ReplaceAllString(s, "!")
	s = questionRuns.ReplaceAllString(s, "?")
	s = commaSpacing.ReplaceAllString(s, ", ")

	return strings.ReplaceAll(s, abbrevPlaceholder, ".")
}

func fixEncoding(s string) string {
	return encodingReplacer.Replace(norm.NFKC.String(s))
}

func normalizeWhitespace(s string) string {
	s = spaceRuns.ReplaceAllString(s, " ")
	s = blankLineRuns.ReplaceAllString(s, "\n\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

// filterParagraphs drops paragraphs that look like navigation fragments:
// under minParagraphLen chars, or mostly non-alphanumeric.
func filterParagraphs(s string) string {
	paragraphs := strings.Split(s, "\n\n")
	kept := paragraphs[:0]
	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(para) < minParagraphLen {
			continue
		}
		if noiseRatio(para) > maxParaNoiseRatio {
			continue
		}
		kept = append(kept, para)
	}
	return strings.Join(kept, "\n\n")
}

// noiseRatio is the share of runes that are neither letters, digits nor
// whitespace, in any script.
func noiseRatio(s string) float64 {
	if s == "" {
		return 0
	}
	var noise, total int
	for _, r := range s {
		total++
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			continue
		}
		noise++
	}
	return float64(noise) / float64(total)
}

func normalizeBullets(s string) string {
	s = bulletPrefix.ReplaceAllString(s, "- ")
	s = numberedPrefix.ReplaceAllString(s, "$1. ")
	return s
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
