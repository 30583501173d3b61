package qgif

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
)

// Pack thresholds an 8-bit grayscale canvas into a packed 1-bit bitmap. A
// pixel darker than threshold maps to bit 1, matching the display
// convention that "on" pixels render lit regardless of the source color
// scheme; invert flips the polarity.
//
// The byte for pixel (x, y) is y*(w/8)+x/8 and its bit is 7-(x%8). The
// firmware complements frame bytes on read, so any deviation here corrupts
// rendered frames without a decode-time error.
func Pack(canvas *image.Gray, threshold uint8, invert bool) ([]byte, error) {
	b := canvas.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 || w%8 != 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrCanvasSize, w, h)
	}

	stride := w / 8
	packed := make([]byte, stride*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			on := canvas.GrayAt(b.Min.X+x, b.Min.Y+y).Y < threshold
			if invert {
				on = !on
			}
			if on {
				packed[y*stride+x/8] |= 1 << uint(7-x%8)
			}
		}
	}
	return packed, nil
}

var monoPalette = []color.Color{color.Black, color.White}

// Dither redraws the canvas onto a black and white palette with
// Floyd-Steinberg diffusion. The result holds only 0x00 and 0xff values, so
// a following Pack at any mid-range threshold preserves the diffused detail.
func Dither(canvas *image.Gray) *image.Gray {
	paletted := image.NewPaletted(canvas.Bounds(), monoPalette)
	draw.FloydSteinberg.Draw(paletted, paletted.Bounds(), canvas, canvas.Bounds().Min)

	out := image.NewGray(canvas.Bounds())
	draw.Draw(out, out.Bounds(), paletted, canvas.Bounds().Min, draw.Src)
	return out
}
