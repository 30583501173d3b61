package qgif

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

var opaqueWhite = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func TestParseScaleMode(t *testing.T) {
	for _, s := range []string{"fit", "stretch", "fit_width", "fit_height"} {
		mode, err := ParseScaleMode(s)
		require.NoError(t, err)
		assert.Equal(t, ScaleMode(s), mode)
	}

	_, err := ParseScaleMode("zoom")
	require.ErrorIs(t, err, ErrUnknownScaleMode)
}

func TestRasterizeFitLetterboxCentering(t *testing.T) {
	// 32x32 source doubles to 64x64 inside 128x64, centered at x=32.
	src := uniformNRGBA(32, 32, opaqueWhite)
	canvas := Rasterize(src, 128, 64, ScaleFit)

	require.Equal(t, image.Rect(0, 0, 128, 64), canvas.Bounds())
	assert.Equal(t, uint8(0), canvas.GrayAt(31, 32).Y)
	assert.GreaterOrEqual(t, canvas.GrayAt(32, 32).Y, uint8(250))
	assert.GreaterOrEqual(t, canvas.GrayAt(95, 32).Y, uint8(250))
	assert.Equal(t, uint8(0), canvas.GrayAt(96, 32).Y)
	assert.GreaterOrEqual(t, canvas.GrayAt(64, 0).Y, uint8(250))
	assert.GreaterOrEqual(t, canvas.GrayAt(64, 63).Y, uint8(250))
}

func TestRasterizeFitFloorsOddOffsets(t *testing.T) {
	// 31x64 source keeps its size (ratio 1); x offset floors to 48.
	src := uniformNRGBA(31, 64, opaqueWhite)
	canvas := Rasterize(src, 128, 64, ScaleFit)

	assert.Equal(t, uint8(0), canvas.GrayAt(47, 32).Y)
	assert.GreaterOrEqual(t, canvas.GrayAt(48, 32).Y, uint8(250))
	assert.GreaterOrEqual(t, canvas.GrayAt(78, 32).Y, uint8(250))
	assert.Equal(t, uint8(0), canvas.GrayAt(79, 32).Y)
}

func TestRasterizeStretchFillsCanvas(t *testing.T) {
	src := uniformNRGBA(10, 10, opaqueWhite)
	canvas := Rasterize(src, 128, 64, ScaleStretch)

	for _, p := range []image.Point{{0, 0}, {127, 0}, {0, 63}, {127, 63}, {64, 32}} {
		assert.GreaterOrEqual(t, canvas.GrayAt(p.X, p.Y).Y, uint8(250), "pixel %v", p)
	}
}

func TestRasterizeFitWidthCropsVerticalOverflow(t *testing.T) {
	// 64x64 source becomes 128x128 under fit_width; the canvas shows the
	// vertical middle, so the source's halves split the canvas rows.
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			if y < 32 {
				src.SetNRGBA(x, y, color.NRGBA{A: 255})
			} else {
				src.SetNRGBA(x, y, opaqueWhite)
			}
		}
	}

	canvas := Rasterize(src, 128, 64, ScaleFitWidth)
	assert.Less(t, canvas.GrayAt(64, 5).Y, uint8(50))
	assert.GreaterOrEqual(t, canvas.GrayAt(64, 58).Y, uint8(250))
}

func TestRasterizeFitHeightMatchesHeight(t *testing.T) {
	// 16x32 source scales by 2 under fit_height to 32x64, centered at x=48.
	src := uniformNRGBA(16, 32, opaqueWhite)
	canvas := Rasterize(src, 128, 64, ScaleFitHeight)

	assert.Equal(t, uint8(0), canvas.GrayAt(47, 32).Y)
	assert.GreaterOrEqual(t, canvas.GrayAt(48, 32).Y, uint8(250))
	assert.GreaterOrEqual(t, canvas.GrayAt(79, 32).Y, uint8(250))
	assert.Equal(t, uint8(0), canvas.GrayAt(80, 32).Y)
	assert.GreaterOrEqual(t, canvas.GrayAt(64, 0).Y, uint8(250))
	assert.GreaterOrEqual(t, canvas.GrayAt(64, 63).Y, uint8(250))
}

func TestRasterizeDegenerateRatioKeepsOnePixel(t *testing.T) {
	src := uniformNRGBA(1000, 1, opaqueWhite)
	canvas := Rasterize(src, 128, 64, ScaleFit)
	require.Equal(t, image.Rect(0, 0, 128, 64), canvas.Bounds())
}

func TestRasterizeCompositesTransparencyOverBlack(t *testing.T) {
	src := uniformNRGBA(128, 64, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	canvas := Rasterize(src, 128, 64, ScaleStretch)
	assert.Equal(t, uint8(0), canvas.GrayAt(64, 32).Y, "fully transparent white must flatten to black")

	src = uniformNRGBA(128, 64, color.NRGBA{R: 255, G: 255, B: 255, A: 128})
	canvas = Rasterize(src, 128, 64, ScaleStretch)
	mid := canvas.GrayAt(64, 32).Y
	assert.Greater(t, mid, uint8(100))
	assert.Less(t, mid, uint8(160))
}

func TestRasterizeGrayscaleUsesLuma(t *testing.T) {
	src := uniformNRGBA(128, 64, color.NRGBA{R: 255, A: 255})
	canvas := Rasterize(src, 128, 64, ScaleStretch)

	// Pure red lands near 76 under ITU-R 601 weighting.
	red := canvas.GrayAt(64, 32).Y
	assert.Greater(t, red, uint8(60))
	assert.Less(t, red, uint8(95))
}
