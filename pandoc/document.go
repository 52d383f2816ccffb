// Package pandoc renders articles to PDF by assembling a pandoc markdown
// document and invoking the pandoc binary with a LaTeX engine.
package pandoc

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/paperpress/paperpress"
)

// headerTitleMax bounds the running-header title length.
const headerTitleMax = 50

// frontMatter is the YAML metadata block pandoc consumes at the top of the
// document. Field order follows the rendered output.
type frontMatter struct {
	Title          string   `yaml:"title"`
	Author         string   `yaml:"author,omitempty"`
	Date           string   `yaml:"date,omitempty"`
	DocumentClass  string   `yaml:"documentclass"`
	Geometry       string   `yaml:"geometry,omitempty"`
	FontSize       string   `yaml:"fontsize,omitempty"`
	FontFamily     string   `yaml:"fontfamily,omitempty"`
	MainFont       string   `yaml:"mainfont,omitempty"`
	ColorLinks     bool     `yaml:"colorlinks"`
	LinkColor      string   `yaml:"linkcolor,omitempty"`
	URLColor       string   `yaml:"urlcolor,omitempty"`
	Lang           string   `yaml:"lang,omitempty"`
	Columns        int      `yaml:"columns,omitempty"`
	HeaderIncludes []string `yaml:"header-includes,omitempty"`
	HeaderLeft     string   `yaml:"header-left,omitempty"`
	HeaderRight    string   `yaml:"header-right,omitempty"`
}

// BuildDocument assembles the complete pandoc markdown document: YAML front
// matter, a byline/description preamble, the article body, and a trailer
// with the word count, estimated reading time and source URL.
func BuildDocument(article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
	if article == nil {
		return "", paperpress.Errorf(paperpress.EINVALID, "article required")
	}

	fm := buildFrontMatter(article, opts)
	meta, err := yaml.Marshal(fm)
	if err != nil {
		return "", fmt.Errorf("marshal front matter: %w", err)
	}

	var sections []string

	if byline := buildByline(article); byline != "" {
		sections = append(sections, byline)
	}
	if article.Description != "" && article.Description != article.Title {
		sections = append(sections, "*"+article.Description+"*")
	}

	sections = append(sections, article.Content)

	if trailer := buildTrailer(article); trailer != "" {
		sections = append(sections, trailer)
	}

	return "---\n" + string(meta) + "---\n\n" + strings.Join(sections, "\n\n") + "\n", nil
}

func buildFrontMatter(article *paperpress.Article, opts paperpress.ConversionOptions) frontMatter {
	fm := frontMatter{
		Title:         article.Title,
		Author:        article.Author,
		Date:          article.FormattedDate(),
		DocumentClass: "article",
		Geometry:      opts.Margins,
		FontSize:      opts.FontSize,
		FontFamily:    opts.FontFamily,
		MainFont:      "Times New Roman",
		ColorLinks:    true,
		LinkColor:     "blue",
		URLColor:      "blue",
		Lang:          article.Language,
	}
	if fm.Title == "" {
		fm.Title = "Untitled Article"
	}
	if fm.Lang == "" {
		fm.Lang = "en-US"
	}

	fm.HeaderIncludes = []string{
		`\usepackage{multicol}`,
		`\usepackage{graphicx}`,
		`\usepackage{float}`,
		`\usepackage{fancyhdr}`,
		`\usepackage{geometry}`,
	}

	// The columns variable is only meaningful to the LaTeX conditional
	// when a multi-column layout is requested.
	if opts.Columns > 1 {
		fm.Columns = opts.Columns
		fm.HeaderIncludes = append(fm.HeaderIncludes,
			`\setlength{\columnsep}{1cm}`,
			`\setlength{\columnseprule}{0pt}`,
		)
	}

	if article.Title != "" {
		fm.HeaderLeft = article.ShortTitle(headerTitleMax)
		fm.HeaderRight = `\thepage`
	}

	return fm
}

func buildByline(article *paperpress.Article) string {
	var parts []string
	if article.Author != "" {
		parts = append(parts, "By "+article.Author)
	}
	if date := article.FormattedDate(); date != "" {
		parts = append(parts, date)
	}
	if len(parts) == 0 {
		return ""
	}
	return "*" + strings.Join(parts, " • ") + "*"
}

func buildTrailer(article *paperpress.Article) string {
	var sb strings.Builder

	if article.WordCount > 0 {
		fmt.Fprintf(&sb, "---\n\n*Word count: %s", groupThousands(article.WordCount))
		if minutes := article.ReadingTime(); minutes > 0 {
			unit := "minutes"
			if minutes == 1 {
				unit = "minute"
			}
			fmt.Fprintf(&sb, " • Estimated reading time: %d %s", minutes, unit)
		}
		sb.WriteString("*")
	}

	if article.SourceURL != "" {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "*Source: %s*", article.SourceURL)
	}

	return sb.String()
}

// groupThousands formats n with comma separators, e.g. 12345 -> "12,345".
func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var sb strings.Builder
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	sb.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		sb.WriteString(",")
		sb.WriteString(s[i : i+3])
	}
	return sb.String()
}
