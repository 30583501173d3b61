package qgif

import (
	"image"
	"image/draw"
	"image/gif"
)

// Flatten composites the frames of a decoded GIF onto a persistent canvas,
// honoring per-frame disposal methods, and returns one full-canvas snapshot
// per frame plus its delay in milliseconds. Undrawn regions stay
// transparent; Rasterize composites them over black later.
//
// GIF stores delays in hundredths of a second. Values beyond the container's
// uint16 millisecond range are clamped.
func Flatten(g *gif.GIF) ([]*image.NRGBA, []int) {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() && len(g.Image) > 0 {
		bounds = g.Image[0].Bounds()
	}

	screen := image.NewNRGBA(bounds)
	frames := make([]*image.NRGBA, 0, len(g.Image))
	delays := make([]int, 0, len(g.Image))

	for i, frame := range g.Image {
		// Dispose previous means draw, snapshot, then undo.
		var previous *image.NRGBA
		if disposal(g, i) == gif.DisposalPrevious {
			previous = image.NewNRGBA(bounds)
			copy(previous.Pix, screen.Pix)
		}

		draw.Draw(screen, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		snapshot := image.NewNRGBA(bounds)
		copy(snapshot.Pix, screen.Pix)
		frames = append(frames, snapshot)
		delays = append(delays, delayMS(g, i))

		switch disposal(g, i) {
		case gif.DisposalBackground:
			// Background replaces what was just drawn with the
			// background canvas, which flattens to black here.
			draw.Draw(screen, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			screen = previous
		}
	}

	return frames, delays
}

func disposal(g *gif.GIF, i int) byte {
	if i < len(g.Disposal) {
		return g.Disposal[i]
	}
	return gif.DisposalNone
}

func delayMS(g *gif.GIF, i int) int {
	if i >= len(g.Delay) {
		return 0
	}
	ms := g.Delay[i] * 10
	if ms > MaxDelayMS {
		ms = MaxDelayMS
	}
	return ms
}
