package qgif

import "fmt"

const (
	// DisplayWidth and DisplayHeight are the QBIT panel geometry and the
	// default conversion target.
	DisplayWidth  = 128
	DisplayHeight = 64

	// MaxFrames is the most frames a container can hold (one byte field).
	MaxFrames = 255

	// HeaderSize is the fixed container header length in bytes.
	HeaderSize = 5

	// DefaultDelayMS replaces missing or non-positive source durations.
	DefaultDelayMS = 100

	// MaxDelayMS is the largest delay the u16 field can carry.
	MaxDelayMS = 0xffff

	// Extension is the conventional container file suffix. With no magic
	// number in the format, the suffix is all that identifies it.
	Extension = ".qgif"
)

// Animation is one .qgif container in memory: an ordered sequence of packed
// 1-bit frames sharing a single geometry, with a delay per frame.
type Animation struct {
	Width  int
	Height int
	Delays []uint16 // milliseconds, one per frame
	Frames [][]byte // packed bitmaps, FrameSize bytes each
}

// FrameCount returns the number of frames.
func (a *Animation) FrameCount() int { return len(a.Frames) }

// FrameSize returns the packed byte length of one frame, recomputed from
// the geometry with floor division exactly as the consumer does.
func (a *Animation) FrameSize() int { return a.Width / 8 * a.Height }

// Size returns the total encoded container length in bytes.
func (a *Animation) Size() int {
	return HeaderSize + 2*len(a.Frames) + len(a.Frames)*a.FrameSize()
}

func (a *Animation) validate() error {
	if a.Width <= 0 || a.Height <= 0 || a.Width%8 != 0 ||
		a.Width > 0xffff || a.Height > 0xffff {
		return fmt.Errorf("%w: %dx%d", ErrBadGeometry, a.Width, a.Height)
	}
	if len(a.Frames) == 0 {
		return ErrNoFrames
	}
	if len(a.Frames) > MaxFrames {
		return fmt.Errorf("%w: %d", ErrTooManyFrames, len(a.Frames))
	}
	if len(a.Delays) != len(a.Frames) {
		return fmt.Errorf("%w: %d delays for %d frames", ErrDelayCount, len(a.Delays), len(a.Frames))
	}
	size := a.FrameSize()
	for i, f := range a.Frames {
		if len(f) != size {
			return fmt.Errorf("%w: frame %d is %d bytes, want %d", ErrFrameSize, i, len(f), size)
		}
	}
	return nil
}
