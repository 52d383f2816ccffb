// Command paperpress converts web articles to print-ready PDFs.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/clean"
	"github.com/paperpress/paperpress/goquery"
	"github.com/paperpress/paperpress/htmltomarkdown"
	pphttp "github.com/paperpress/paperpress/http"
	"github.com/paperpress/paperpress/imaging"
	"github.com/paperpress/paperpress/pandoc"
	"github.com/paperpress/paperpress/pipeline"
	"github.com/paperpress/paperpress/readability"
	"github.com/paperpress/paperpress/rod"
	"github.com/paperpress/paperpress/trafilatura"
	"github.com/paperpress/paperpress/yaml"
	pplog "github.com/paperpress/paperpress/zerolog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config overrides the file-loaded configuration when set by tests.
	Config *yaml.Config

	fetcher paperpress.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close releases the fetcher, stopping any headless browser it holds.
func (m *Main) Close() error {
	if m.fetcher != nil {
		return m.fetcher.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg := m.loadConfig(stderr)

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Config: cfg,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("paperpress"),
		kong.Description("Convert web articles to print-ready PDFs."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'paperpress --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Renderer = pandoc.NewRenderer()

	// kong reports the resolved command ("convert <url>"), which stays
	// correct when global flags precede the command word.
	switch name, _, _ := strings.Cut(kongCtx.Command(), " "); name {
	case "convert":
		deps.Pipeline, err = m.buildPipeline(cfg, deps, cli.Convert.Browser, cli.Convert.Extractor)
	case "batch":
		deps.Pipeline, err = m.buildPipeline(cfg, deps, cli.Batch.Browser, cli.Batch.Extractor)
	}
	if err != nil {
		return err
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

func (m *Main) loadConfig(stderr io.Writer) yaml.Config {
	if m.Config != nil {
		return *m.Config
	}
	cfg, err := yaml.Load()
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v, using defaults\n", err)
	}
	return cfg
}

func newLogger(stderr io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen}
	return zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// buildPipeline wires the conversion pipeline. The fetcher is browser-based
// when requested, plain HTTP otherwise; both are wrapped with logging.
func (m *Main) buildPipeline(cfg yaml.Config, deps *Dependencies, browser bool, preferred string) (*pipeline.Pipeline, error) {
	fetchOpts := []pphttp.Option{
		pphttp.WithTimeout(time.Duration(cfg.Extractors.TimeoutSeconds) * time.Second),
	}
	if cfg.Extractors.UserAgent != "" {
		fetchOpts = append(fetchOpts, pphttp.WithUserAgent(cfg.Extractors.UserAgent))
	}

	var fetcher paperpress.Fetcher
	if browser {
		browserFetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed for --browser")
			return nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = browserFetcher
	} else {
		fetcher = pphttp.NewFetcher(fetchOpts...)
	}
	m.fetcher = fetcher
	logged := pplog.NewLoggingFetcher(fetcher, deps.Logger)

	strategies := orderStrategies(cfg, logged, deps.Logger)

	merger := goquery.NewMerger()
	return &pipeline.Pipeline{
		Coordinator: &pipeline.Coordinator{Strategies: strategies},
		Prober:      pphttp.NewProber(fetchOpts...),
		Cleaner:     clean.New(),
		Locator:     goquery.NewLocator(),
		Images:      imaging.NewProcessor(pphttp.NewDownloader(fetchOpts...)),
		Converter:   htmltomarkdown.NewConverter(merger),
		Renderer:    pplog.NewLoggingRenderer(deps.Renderer, deps.Logger),
		Preferred:   preferred,
	}, nil
}

// orderStrategies builds the extraction strategies in the configured
// primary/fallback order, each wrapped with logging.
func orderStrategies(cfg yaml.Config, fetcher paperpress.Fetcher, logger zerolog.Logger) []paperpress.Extractor {
	available := map[string]paperpress.Extractor{
		"trafilatura": trafilatura.NewExtractor(fetcher),
		"readability": readability.NewExtractor(fetcher),
	}

	var strategies []paperpress.Extractor
	for _, name := range []string{cfg.Extractors.Primary, cfg.Extractors.Fallback} {
		if e, ok := available[name]; ok {
			strategies = append(strategies, pplog.NewLoggingExtractor(e, logger))
			delete(available, name)
		}
	}
	// Unconfigured strategies still serve as extra fallbacks.
	for _, name := range []string{"trafilatura", "readability"} {
		if e, ok := available[name]; ok {
			strategies = append(strategies, pplog.NewLoggingExtractor(e, logger))
		}
	}
	return strategies
}
