package qgif

import "errors"

var (
	// ErrNoFrames indicates an animation with zero frames.
	ErrNoFrames = errors.New("no frames")
	// ErrTooManyFrames indicates more frames than the one-byte count field can hold.
	ErrTooManyFrames = errors.New("too many frames")
	// ErrBadGeometry indicates a non-positive dimension or a width not divisible by 8.
	ErrBadGeometry = errors.New("bad geometry")
	// ErrFrameSize indicates a packed frame whose length does not match the geometry.
	ErrFrameSize = errors.New("frame size mismatch")
	// ErrDelayCount indicates a delay table shorter or longer than the frame count.
	ErrDelayCount = errors.New("delay count mismatch")
	// ErrTruncatedHeader indicates a container shorter than the fixed header.
	ErrTruncatedHeader = errors.New("container header truncated")
	// ErrTruncatedDelays indicates a container ending inside the delay table.
	ErrTruncatedDelays = errors.New("delay table truncated")
	// ErrTruncatedFrame indicates a container ending inside a frame payload.
	ErrTruncatedFrame = errors.New("frame truncated")
	// ErrCanvasSize indicates a grayscale canvas whose bounds cannot be bit-packed.
	ErrCanvasSize = errors.New("canvas size not packable")
	// ErrUnknownScaleMode indicates an unrecognized scale mode name.
	ErrUnknownScaleMode = errors.New("unknown scale mode")
	// ErrBadIdentifier indicates a symbol identifier with no usable characters.
	ErrBadIdentifier = errors.New("bad identifier")
	// ErrNoInputs indicates a batch whose expansion produced no source files.
	ErrNoInputs = errors.New("no input files")
)
