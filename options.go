package paperpress

// ConversionOptions is the immutable per-request rendering configuration.
// Defaults are supplied by the caller (CLI flags merged over the config
// file), not baked into the type.
type ConversionOptions struct {
	// Output is the destination PDF path. Empty means derive a filename
	// from the article title.
	Output string `yaml:"output"`

	// Columns is the column count, 1 to 3.
	Columns int `yaml:"columns"`

	// FontSize is a LaTeX point size such as "11pt".
	FontSize string `yaml:"font_size"`

	// Template names the LaTeX template asset (e.g. "article", "magazine").
	Template string `yaml:"template"`

	// IncludeImages controls whether located images are downloaded,
	// processed and embedded.
	IncludeImages bool `yaml:"include_images"`

	// Margins is a dimension string passed to the geometry package,
	// e.g. "2cm" or "1in".
	Margins string `yaml:"margins"`

	// FontFamily is the LaTeX font family (times, helvetica, palatino).
	FontFamily string `yaml:"font_family"`

	// PDFEngine selects the LaTeX engine (xelatex, pdflatex, lualatex).
	PDFEngine string `yaml:"pdf_engine"`

	// TimeoutSeconds bounds the compiler invocation, 10 to 600.
	TimeoutSeconds int `yaml:"timeout"`
}
