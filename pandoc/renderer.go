package pandoc

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/paperpress/paperpress"
	"github.com/paperpress/paperpress/fs"
)

// Supported LaTeX engines.
var supportedEngines = []string{"xelatex", "pdflatex", "lualatex"}

// Option boundaries.
const (
	MinColumns        = 1
	MaxColumns        = 3
	MinFontSizePoints = 8
	MaxFontSizePoints = 24
	MinTimeoutSeconds = 10
	MaxTimeoutSeconds = 600
)

// versionCheckTimeout bounds the `--version` probes run by Info.
const versionCheckTimeout = 10 * time.Second

// Template is a named layout preset. Presets supply defaults for options
// the caller left unset; explicit options always win.
type Template struct {
	Description string
	Margins     string
	FontSize    string
	FontFamily  string
	Columns     int
}

var templates = map[string]Template{
	"article": {
		Description: "Clean article layout",
		Margins:     "2cm",
		FontFamily:  "times",
	},
	"academic": {
		Description: "Academic paper style",
		Margins:     "2.5cm",
		FontSize:    "12pt",
		FontFamily:  "times",
	},
	"magazine": {
		Description: "Magazine-style layout",
		Margins:     "1.5cm",
		FontFamily:  "times",
		Columns:     3,
	},
}

// Templates returns the available template names, sorted.
func Templates() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LookupTemplate returns the preset for name.
func LookupTemplate(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

// ApplyTemplate fills unset option fields from the named template preset.
// Unknown template names leave the options untouched; ValidateOptions
// reports them.
func ApplyTemplate(opts paperpress.ConversionOptions) paperpress.ConversionOptions {
	t, ok := templates[opts.Template]
	if !ok {
		return opts
	}
	if opts.Margins == "" {
		opts.Margins = t.Margins
	}
	if opts.FontSize == "" && t.FontSize != "" {
		opts.FontSize = t.FontSize
	}
	if opts.FontFamily == "" {
		opts.FontFamily = t.FontFamily
	}
	if opts.Columns == 0 && t.Columns != 0 {
		opts.Columns = t.Columns
	}
	return opts
}

// Renderer compiles markdown documents to PDF through the pandoc binary.
type Renderer struct {
	binary string
}

var _ paperpress.Renderer = (*Renderer)(nil)

// Option configures a Renderer.
type Option func(*Renderer)

// WithBinary overrides the pandoc executable path.
func WithBinary(path string) Option {
	return func(r *Renderer) { r.binary = path }
}

// NewRenderer returns a Renderer invoking `pandoc` from PATH unless
// overridden with WithBinary.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{binary: "pandoc"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ValidateOptions checks the options against supported engines, templates
// and ranges. It returns every violation found rather than stopping at the
// first.
func (r *Renderer) ValidateOptions(opts paperpress.ConversionOptions) []string {
	var issues []string

	engineOK := false
	for _, engine := range supportedEngines {
		if opts.PDFEngine == engine {
			engineOK = true
			break
		}
	}
	if !engineOK {
		issues = append(issues, fmt.Sprintf("unsupported PDF engine: %s", opts.PDFEngine))
	}

	if opts.Columns < MinColumns || opts.Columns > MaxColumns {
		issues = append(issues, fmt.Sprintf("columns must be between %d and %d", MinColumns, MaxColumns))
	}

	if !strings.HasSuffix(opts.FontSize, "pt") {
		issues = append(issues, "font size must end with 'pt'")
	} else if size, err := strconv.Atoi(strings.TrimSuffix(opts.FontSize, "pt")); err != nil {
		issues = append(issues, "invalid font size format")
	} else if size < MinFontSizePoints || size > MaxFontSizePoints {
		issues = append(issues, fmt.Sprintf("font size must be between %dpt and %dpt", MinFontSizePoints, MaxFontSizePoints))
	}

	if opts.TimeoutSeconds < MinTimeoutSeconds || opts.TimeoutSeconds > MaxTimeoutSeconds {
		issues = append(issues, fmt.Sprintf("timeout must be between %d and %d seconds", MinTimeoutSeconds, MaxTimeoutSeconds))
	}

	if _, ok := templates[opts.Template]; !ok {
		issues = append(issues, fmt.Sprintf("template %q not found, available: %s",
			opts.Template, strings.Join(Templates(), ", ")))
	}

	return issues
}

// Render builds the document, writes it to a scratch directory and invokes
// pandoc. It returns the absolute path of the generated PDF. Compiler
// failures surface as ERENDER errors carrying pandoc's stderr verbatim.
func (r *Renderer) Render(ctx context.Context, article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
	if issues := r.ValidateOptions(opts); len(issues) > 0 {
		return "", paperpress.Errorf(paperpress.EINVALID, "invalid conversion options: %s", strings.Join(issues, "; "))
	}

	doc, err := BuildDocument(article, opts)
	if err != nil {
		return "", err
	}

	workDir, err := os.MkdirTemp("", "paperpress-render-")
	if err != nil {
		return "", fmt.Errorf("create scratch dir: %w", err)
	}
	defer os.RemoveAll(workDir)

	inputPath := filepath.Join(workDir, "article.md")
	if err := os.WriteFile(inputPath, []byte(doc), 0o644); err != nil {
		return "", fmt.Errorf("write markdown: %w", err)
	}

	outputPath, err := resolveOutputPath(article, opts)
	if err != nil {
		return "", err
	}

	cctx, cancel := context.WithTimeout(ctx, time.Duration(opts.TimeoutSeconds)*time.Second)
	defer cancel()

	// Compile into scratch space first so a failed or interrupted run
	// never leaves a partial PDF at the destination.
	scratchOutput := filepath.Join(workDir, "article.pdf")
	args := buildArgs(inputPath, scratchOutput, opts)
	cmd := exec.CommandContext(cctx, r.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cctx.Err() == context.DeadlineExceeded {
			return "", paperpress.Errorf(paperpress.ERENDER, "pdf generation timed out after %d seconds", opts.TimeoutSeconds)
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		diag := strings.TrimSpace(stderr.String())
		if diag == "" {
			diag = err.Error()
		}
		return "", paperpress.Errorf(paperpress.ERENDER, "pandoc failed: %s", diag)
	}

	info, err := os.Stat(scratchOutput)
	if err != nil || info.Size() == 0 {
		return "", paperpress.Errorf(paperpress.ERENDER, "pandoc produced no output")
	}

	if err := fs.MoveFile(scratchOutput, outputPath); err != nil {
		return "", fmt.Errorf("place output: %w", err)
	}
	return outputPath, nil
}

// resolveOutputPath honors an explicit output option, forcing a .pdf
// extension. An output naming an existing directory, or an empty output,
// gets a collision-free filename derived from the article title.
func resolveOutputPath(article *paperpress.Article, opts paperpress.ConversionOptions) (string, error) {
	if opts.Output != "" {
		if info, err := os.Stat(opts.Output); err != nil || !info.IsDir() {
			out := opts.Output
			if !strings.EqualFold(filepath.Ext(out), ".pdf") {
				out += ".pdf"
			}
			return filepath.Abs(out)
		}
	}

	dir := opts.Output
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve output dir: %w", err)
		}
		dir = wd
	}
	name := paperpress.SanitizeFilename(article.Title, 50)
	return filepath.Abs(paperpress.UniquePath(dir, name, ".pdf"))
}

func buildArgs(inputPath, outputPath string, opts paperpress.ConversionOptions) []string {
	args := []string{
		inputPath,
		"--from", "markdown",
		"--pdf-engine", opts.PDFEngine,
		"--output", outputPath,
		"--standalone",
		"--highlight-style", "kate",
		"--resource-path", ".",
	}
	for _, v := range []string{
		"linkcolor=blue",
		"urlcolor=blue",
		"colorlinks=true",
	} {
		args = append(args, "--variable", v)
	}
	return args
}

// EngineStatus reports whether each supported LaTeX engine responds to a
// version probe.
type EngineStatus map[string]bool

// Info describes the local pandoc installation.
type Info struct {
	PandocVersion   string
	PandocAvailable bool
	Engines         EngineStatus
	Templates       []string
}

// Inspect probes the pandoc binary and the supported LaTeX engines. It
// never fails; missing tools are reported through the returned flags.
func (r *Renderer) Inspect(ctx context.Context) Info {
	info := Info{
		Engines:   make(EngineStatus, len(supportedEngines)),
		Templates: Templates(),
	}

	if out, err := probeVersion(ctx, r.binary); err == nil {
		info.PandocAvailable = true
		info.PandocVersion = out
	}

	for _, engine := range supportedEngines {
		_, err := probeVersion(ctx, engine)
		info.Engines[engine] = err == nil
	}

	return info
}

// probeVersion runs `binary --version` and returns the first output line.
func probeVersion(ctx context.Context, binary string) (string, error) {
	cctx, cancel := context.WithTimeout(ctx, versionCheckTimeout)
	defer cancel()

	out, err := exec.CommandContext(cctx, binary, "--version").Output()
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line), nil
}
