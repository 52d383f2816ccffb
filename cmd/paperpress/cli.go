package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/pandoc"
	"github.com/paperpress/paperpress/pipeline"
	"github.com/paperpress/paperpress/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   yaml.Config
	Logger   zerolog.Logger
	Pipeline *pipeline.Pipeline
	Renderer *pandoc.Renderer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Convert ConvertCmd `cmd:"" help:"Convert an article URL to a print-ready PDF"`
	Batch   BatchCmd   `cmd:"" help:"Convert a newline-delimited file of URLs to PDFs"`
	Info    InfoCmd    `cmd:"" help:"Show pandoc, LaTeX engine and template availability"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// RenderFlags are the conversion options shared by convert and batch.
type RenderFlags struct {
	Output     string `short:"o" help:"Output PDF path, or a directory to name the file automatically"`
	Columns    int    `short:"c" help:"Column count, 1 to 3"`
	FontSize   string `help:"LaTeX font size, e.g. 11pt"`
	Template   string `help:"Layout template (article, academic, magazine)"`
	NoImages   bool   `help:"Skip image download and embedding"`
	Margins    string `help:"Page margins, e.g. 2cm"`
	FontFamily string `help:"LaTeX font family (times, helvetica, palatino)"`
	Engine     string `help:"LaTeX engine (xelatex, pdflatex, lualatex)"`
	Timeout    int    `help:"Compiler timeout in seconds, 10 to 600"`
}

// Options merges the flags over the configured defaults. Unset flags keep
// the config file's (or built-in) values.
func (f *RenderFlags) Options(base paperpress.ConversionOptions) paperpress.ConversionOptions {
	opts := base
	if f.Output != "" {
		opts.Output = f.Output
	}
	if f.Columns != 0 {
		opts.Columns = f.Columns
	}
	if f.FontSize != "" {
		opts.FontSize = f.FontSize
	}
	if f.Template != "" {
		opts.Template = f.Template
	}
	if f.NoImages {
		opts.IncludeImages = false
	}
	if f.Margins != "" {
		opts.Margins = f.Margins
	}
	if f.FontFamily != "" {
		opts.FontFamily = f.FontFamily
	}
	if f.Engine != "" {
		opts.PDFEngine = f.Engine
	}
	if f.Timeout != 0 {
		opts.TimeoutSeconds = f.Timeout
	}
	return pandoc.ApplyTemplate(opts)
}

// ConvertCmd is the "convert" subcommand.
type ConvertCmd struct {
	URL string `arg:"" help:"Article URL"`
	RenderFlags

	Extractor string `short:"e" help:"Preferred extraction strategy (trafilatura, readability)"`
	Browser   bool   `help:"Fetch pages with a headless browser (requires Chrome)"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	File string `arg:"" help:"File with one URL per line; # starts a comment"`
	RenderFlags

	Extractor   string  `short:"e" help:"Preferred extraction strategy (trafilatura, readability)"`
	Browser     bool    `help:"Fetch pages with a headless browser (requires Chrome)"`
	Concurrency int     `help:"Parallel conversions"`
	FailFast    bool    `help:"Stop at the first failed URL"`
	Retries     int     `default:"0" help:"Retry attempts per URL with exponential backoff"`
	RPS         float64 `name:"rps" help:"Max requests per second per domain"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct{}
