package paperpress

import "context"

// Renderer compiles an article into a PDF.
type Renderer interface {
	// Render builds the final document from the article and options and
	// invokes the external compiler. It returns the absolute path of the
	// generated PDF, or an ERENDER error carrying the compiler's
	// diagnostic output.
	Render(ctx context.Context, article *Article, opts ConversionOptions) (string, error)

	// ValidateOptions checks the options against the renderer's supported
	// engines, templates and ranges, returning all violations found.
	ValidateOptions(opts ConversionOptions) []string
}
