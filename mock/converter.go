package mock

import "github.com/paperpress/paperpress"

var _ paperpress.MarkupConverter = (*MarkupConverter)(nil)

// MarkupConverter is a mock implementation of paperpress.MarkupConverter.
type MarkupConverter struct {
	ConvertFn func(contentHTML string, images []paperpress.ImageCandidate) (string, error)
}

func (c *MarkupConverter) Convert(contentHTML string, images []paperpress.ImageCandidate) (string, error) {
	return c.ConvertFn(contentHTML, images)
}

var _ paperpress.ImageMerger = (*ImageMerger)(nil)

// ImageMerger is a mock implementation of paperpress.ImageMerger.
type ImageMerger struct {
	MergeImagesFn func(contentHTML string, images []paperpress.ImageCandidate) (string, error)
}

func (m *ImageMerger) MergeImages(contentHTML string, images []paperpress.ImageCandidate) (string, error) {
	return m.MergeImagesFn(contentHTML, images)
}
