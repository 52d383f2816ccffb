package paperpress

import "context"

// ImageCandidate is one located article image, populated progressively as
// validation and processing proceed.
type ImageCandidate struct {
	// URL is the resolved absolute image URL.
	URL string

	// AltText is the img alt attribute, if any.
	AltText string

	// Caption is the figcaption text, if the image sat inside a figure.
	Caption string

	// ContextBefore and ContextAfter hold up to three words of plain text
	// immediately around the image's position in the document's sequential
	// element stream. Either may be empty. They anchor re-insertion after
	// the readability pass strips images from the content.
	ContextBefore string
	ContextAfter  string

	// Sequence is the image's position in the original document order.
	Sequence int

	// Valid reports whether the candidate survived filtering and, later,
	// download/processing. RejectionReason explains a false value.
	Valid           bool
	RejectionReason string

	// LocalPath is set once the image has been downloaded and processed.
	LocalPath string

	// Metadata filled in during validation/processing.
	Width    int
	Height   int
	FileSize int64
	MIMEType string
}

// ImageLocator finds candidate article images in raw HTML.
type ImageLocator interface {
	// Locate returns accepted candidates in document order, capped at the
	// implementation's limit, with context anchors captured from the
	// original HTML.
	Locate(html, baseURL string) ([]ImageCandidate, error)
}

// ImageDownloader fetches raw image bytes, enforcing size and
// content-type limits.
type ImageDownloader interface {
	// Download returns the image bytes at url and the server-reported
	// MIME type.
	Download(ctx context.Context, url string) (data []byte, mimeType string, err error)
}

// ImageProcessor downloads and normalizes images for print embedding.
// A failure on one candidate marks that candidate invalid and never
// aborts the batch.
type ImageProcessor interface {
	// Process downloads each valid candidate into outputDir, normalizes
	// it for print, and returns the updated candidates.
	Process(ctx context.Context, candidates []ImageCandidate, outputDir string) []ImageCandidate
}
