// Package imaging downloads located article images and normalizes them for
// print: EXIF orientation, alpha flattening, downscale-only resizing, light
// sharpening and JPEG re-encoding.
package imaging

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/disintegration/imaging"

	// Registers webp decoding for image.Decode; news CDNs serve webp
	// heavily and it would otherwise be rejected as undecodable.
	_ "golang.org/x/image/webp"

	"github.com/paperpress/paperpress"
)

// Print envelope: images are scaled down (never up) to fit these bounds,
// sized for a two-column layout at print resolution.
const (
	MaxWidth  = 1200
	MaxHeight = 1600
)

// JPEGQuality is the lossy re-encoding quality target.
const JPEGQuality = 85

// sharpenSigma gives a subtle unsharp pass for print clarity.
const sharpenSigma = 0.5

// Ensure Processor implements paperpress.ImageProcessor at compile time.
var _ paperpress.ImageProcessor = (*Processor)(nil)

// Processor turns image candidates into print-ready local JPEG files. A
// failure on one candidate marks it invalid and never aborts the batch.
type Processor struct {
	downloader paperpress.ImageDownloader
}

// NewProcessor creates a Processor that fetches bytes with downloader.
func NewProcessor(downloader paperpress.ImageDownloader) *Processor {
	return &Processor{downloader: downloader}
}

// Process downloads and normalizes every valid candidate into outputDir,
// returning the updated slice. Invalid candidates pass through untouched.
func (p *Processor) Process(ctx context.Context, candidates []paperpress.ImageCandidate, outputDir string) []paperpress.ImageCandidate {
	out := make([]paperpress.ImageCandidate, len(candidates))
	copy(out, candidates)

	for i := range out {
		if !out[i].Valid {
			continue
		}
		if err := ctx.Err(); err != nil {
			reject(&out[i], "cancelled: "+err.Error())
			continue
		}
		if err := p.processOne(ctx, &out[i], outputDir); err != nil {
			reject(&out[i], paperpress.ErrorMessage(err))
		}
	}
	return out
}

func (p *Processor) processOne(ctx context.Context, c *paperpress.ImageCandidate, outputDir string) error {
	data, mimeType, err := p.downloader.Download(ctx, c.URL)
	if err != nil {
		return err
	}
	c.FileSize = int64(len(data))
	c.MIMEType = mimeType

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return paperpress.Errorf(paperpress.EINVALID, "undecodable image data: %v", err)
	}

	img = flatten(img)
	img = imaging.Fit(img, MaxWidth, MaxHeight, imaging.Lanczos)
	img = imaging.Sharpen(img, sharpenSigma)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return paperpress.Errorf(paperpress.EINTERNAL, "failed to create image directory: %v", err)
	}

	path := filepath.Join(outputDir, localFilename(c.URL))
	if err := imaging.Save(img, path, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return paperpress.Errorf(paperpress.EINTERNAL, "failed to save image: %v", err)
	}

	bounds := img.Bounds()
	c.LocalPath = path
	c.Width = bounds.Dx()
	c.Height = bounds.Dy()
	c.MIMEType = "image/jpeg"
	if fi, err := os.Stat(path); err == nil {
		c.FileSize = fi.Size()
	}
	return nil
}

// flatten composites the image onto a white background, so transparency
// prints as paper rather than black.
func flatten(img image.Image) image.Image {
	bounds := img.Bounds()
	bg := imaging.New(bounds.Dx(), bounds.Dy(), color.White)
	return imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
}

// localFilename derives a stable name from the source URL, so reprocessing
// the same article overwrites rather than accumulates.
func localFilename(url string) string {
	return fmt.Sprintf("img_%016x.jpg", xxhash.Sum64String(url))
}

func reject(c *paperpress.ImageCandidate, reason string) {
	c.Valid = false
	c.RejectionReason = reason
	c.LocalPath = ""
}
