package qgif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// ScaleMode selects how a source frame maps onto the target geometry.
type ScaleMode string

const (
	// ScaleFit scales uniformly so the source fits entirely inside the
	// target, then letterboxes the remainder with black.
	ScaleFit ScaleMode = "fit"
	// ScaleStretch resizes to the target geometry, ignoring aspect ratio.
	ScaleStretch ScaleMode = "stretch"
	// ScaleFitWidth matches the target width; height follows the source
	// aspect ratio and may overflow or underfill the canvas.
	ScaleFitWidth ScaleMode = "fit_width"
	// ScaleFitHeight matches the target height; width follows the source
	// aspect ratio.
	ScaleFitHeight ScaleMode = "fit_height"
)

// ParseScaleMode returns the ScaleMode named by s.
func ParseScaleMode(s string) (ScaleMode, error) {
	switch m := ScaleMode(s); m {
	case ScaleFit, ScaleStretch, ScaleFitWidth, ScaleFitHeight:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownScaleMode, s)
}

// Rasterize produces one w by h grayscale canvas from a source frame of any
// size. Transparency is composited over opaque black before grayscale
// conversion, the frame is resized with a Lanczos filter per mode, and the
// result is pasted centered onto a black canvas.
//
// Small text and glyphs at this resolution survive Lanczos resampling but
// not nearest-neighbor or bilinear, hence the fixed filter choice.
func Rasterize(src image.Image, w, h int, mode ScaleMode) *image.Gray {
	gray := flattenGray(src)

	sw := gray.Bounds().Dx()
	sh := gray.Bounds().Dy()

	var tw, th int
	switch mode {
	case ScaleStretch:
		tw, th = w, h
	case ScaleFitWidth:
		tw = w
		th = scaled(sh, float64(w)/float64(sw))
	case ScaleFitHeight:
		th = h
		tw = scaled(sw, float64(h)/float64(sh))
	default:
		r := math.Min(float64(w)/float64(sw), float64(h)/float64(sh))
		tw = scaled(sw, r)
		th = scaled(sh, r)
	}

	resized := imaging.Resize(gray, tw, th, imaging.Lanczos)

	// Centering floors on both axes. A frame overflowing one axis
	// (fit_width/fit_height) is cropped symmetrically by the draw clip.
	canvas := image.NewGray(image.Rect(0, 0, w, h))
	offset := image.Pt((w-tw)/2, (h-th)/2)
	draw.Draw(canvas, resized.Bounds().Add(offset), resized, resized.Bounds().Min, draw.Src)
	return canvas
}

// scaled floors the scaled dimension to a 1 pixel minimum so degenerate
// ratios never produce a zero-size intermediate image.
func scaled(dim int, ratio float64) int {
	n := int(float64(dim) * ratio)
	if n < 1 {
		n = 1
	}
	return n
}

// flattenGray composites src over opaque black and converts the result to
// 8-bit grayscale using ITU-R 601 luma.
func flattenGray(src image.Image) *image.Gray {
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Over)

	gray := image.NewGray(rgba.Bounds())
	draw.Draw(gray, gray.Bounds(), rgba, image.Point{}, draw.Src)
	return gray
}
