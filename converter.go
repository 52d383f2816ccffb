package paperpress

// MarkupConverter converts extracted article HTML into markdown suitable
// for the document compiler, re-injecting located images at positions
// matched by their context anchors.
type MarkupConverter interface {
	// Convert transforms the article's structural HTML body into markdown,
	// placing each valid candidate exactly once. The input should be clean
	// HTML from an extraction strategy.
	Convert(contentHTML string, images []ImageCandidate) (string, error)
}

// ImageMerger re-inserts located images into extraction HTML that no longer
// contains them, anchoring each image near its original textual context.
type ImageMerger interface {
	// MergeImages returns the HTML with a figure element added for every
	// valid candidate. Candidates that cannot be matched by context are
	// still placed, at a position proportional to their original sequence.
	MergeImages(contentHTML string, images []ImageCandidate) (string, error)
}
