// Package paperpress converts web articles into print-ready PDFs.
// It fetches a page, extracts the readable article content with ordered
// fallback between extraction strategies, cleans and normalizes the text,
// re-anchors images to their original textual context, and delegates
// typesetting to an external pandoc/LaTeX toolchain.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., trafilatura/, readability/,
// pandoc/), with orchestration in pipeline/.
package paperpress
