package qgif

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// whiteCanvas returns an all-white grayscale canvas.
func whiteCanvas(w, h int) *image.Gray {
	canvas := image.NewGray(image.Rect(0, 0, w, h))
	for i := range canvas.Pix {
		canvas.Pix[i] = 0xff
	}
	return canvas
}

func TestPackBitOrder(t *testing.T) {
	canvas := whiteCanvas(16, 2)
	canvas.Pix[canvas.PixOffset(0, 0)] = 0  // first bit of byte 0
	canvas.Pix[canvas.PixOffset(7, 0)] = 0  // last bit of byte 0
	canvas.Pix[canvas.PixOffset(8, 0)] = 0  // first bit of byte 1
	canvas.Pix[canvas.PixOffset(11, 1)] = 0 // bit 4 of the second row's first byte

	packed, err := Pack(canvas, 128, false)
	require.NoError(t, err)
	require.Len(t, packed, 4)

	assert.Equal(t, byte(0x81), packed[0])
	assert.Equal(t, byte(0x80), packed[1])
	assert.Equal(t, byte(0x10), packed[2])
	assert.Equal(t, byte(0x00), packed[3])
}

func TestPackThresholdBoundary(t *testing.T) {
	canvas := whiteCanvas(8, 1)
	canvas.Pix[0] = 127 // below threshold: on
	canvas.Pix[1] = 128 // at threshold: off

	packed, err := Pack(canvas, 128, false)
	require.NoError(t, err)
	assert.Equal(t, byte(0x80), packed[0])
}

func TestPackInvertComplementsEveryBit(t *testing.T) {
	canvas := image.NewGray(image.Rect(0, 0, 32, 16))
	for i := range canvas.Pix {
		canvas.Pix[i] = byte((i * 37) & 0xff)
	}

	normal, err := Pack(canvas, 128, false)
	require.NoError(t, err)
	inverted, err := Pack(canvas, 128, true)
	require.NoError(t, err)

	require.Len(t, inverted, len(normal))
	for i := range normal {
		assert.Equal(t, ^normal[i], inverted[i], "byte %d", i)
	}
}

func TestPackDeterminism(t *testing.T) {
	canvas := image.NewGray(image.Rect(0, 0, 64, 8))
	for i := range canvas.Pix {
		canvas.Pix[i] = byte((i*13 + 5) & 0xff)
	}

	first, err := Pack(canvas, 90, false)
	require.NoError(t, err)
	second, err := Pack(canvas, 90, false)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPackRejectsUnpackableWidth(t *testing.T) {
	canvas := image.NewGray(image.Rect(0, 0, 10, 4))
	_, err := Pack(canvas, 128, false)
	require.ErrorIs(t, err, ErrCanvasSize)
}

func TestPackNonZeroOriginBounds(t *testing.T) {
	canvas := image.NewGray(image.Rect(4, 4, 12, 6))
	for i := range canvas.Pix {
		canvas.Pix[i] = 0xff
	}
	canvas.Pix[canvas.PixOffset(4, 4)] = 0 // top-left pixel dark

	packed, err := Pack(canvas, 128, false)
	require.NoError(t, err)
	require.Len(t, packed, 2)
	assert.Equal(t, byte(0x80), packed[0])
}

func TestDitherProducesBinaryValues(t *testing.T) {
	canvas := image.NewGray(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			canvas.Pix[canvas.PixOffset(x, y)] = byte(x * 8)
		}
	}

	out := Dither(canvas)
	require.Equal(t, canvas.Bounds(), out.Bounds())

	ones := 0
	for _, v := range out.Pix {
		require.Contains(t, []byte{0x00, 0xff}, v)
		if v == 0xff {
			ones++
		}
	}
	// A horizontal gradient must diffuse into a mix of both levels.
	assert.Greater(t, ones, 0)
	assert.Less(t, ones, len(out.Pix))
}
