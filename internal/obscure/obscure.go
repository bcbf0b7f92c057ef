package obscure

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// blurSigma is the Gaussian blur applied after pixelation. Small on purpose:
// enough to smear residual edges without hiding gross activity.
const blurSigma = 1.0

// Pipeline obscures captured images for privacy. Downscale by PixelSize with
// nearest-neighbor sampling, upscale back to the original dimensions the same
// way, then blur. Individual pixels become unrecoverable while windows and
// color blocks stay recognizable enough to classify.
type Pipeline struct {
	// PixelSize is the integer downscale factor. 1 skips pixelation and
	// applies only the blur.
	PixelSize int
}

// Apply transforms src. It is deterministic and never mutates its input.
func (p Pipeline) Apply(src image.Image) (image.Image, error) {
	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("obscure: invalid source dimensions %dx%d", width, height)
	}

	factor := p.PixelSize
	if factor < 1 {
		return nil, fmt.Errorf("obscure: pixel size must be at least 1, got %d", p.PixelSize)
	}

	out := src
	if factor > 1 {
		smallW := max(width/factor, 1)
		smallH := max(height/factor, 1)
		small := imaging.Resize(src, smallW, smallH, imaging.NearestNeighbor)
		out = imaging.Resize(small, width, height, imaging.NearestNeighbor)
	}

	return imaging.Blur(out, blurSigma), nil
}
