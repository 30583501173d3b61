package qgif

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Decode parses a .qgif container from r. The container is read whole; a
// stream ending inside the delay table or a frame payload fails with the
// offending index and shortfall rather than padding silently.
func Decode(r io.Reader) (*Animation, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read container: %w", err)
	}
	return decode(data)
}

// DecodeFile parses the .qgif container at path.
func DecodeFile(path string) (*Animation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return decode(data)
}

func decode(data []byte) (*Animation, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedHeader, len(data))
	}

	count := int(data[0])
	if count == 0 {
		return nil, ErrNoFrames
	}
	a := &Animation{
		Width:  int(binary.LittleEndian.Uint16(data[1:3])),
		Height: int(binary.LittleEndian.Uint16(data[3:5])),
	}

	offset := HeaderSize
	if len(data) < offset+2*count {
		return nil, fmt.Errorf("%w: %d of %d delays", ErrTruncatedDelays, (len(data)-offset)/2, count)
	}
	a.Delays = make([]uint16, count)
	for i := range a.Delays {
		a.Delays[i] = binary.LittleEndian.Uint16(data[offset:])
		offset += 2
	}

	// Frame size is recomputed from the parsed geometry; the container
	// stores no independent length field.
	frameSize := a.FrameSize()
	if frameSize <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrBadGeometry, a.Width, a.Height)
	}

	a.Frames = make([][]byte, count)
	for i := range a.Frames {
		if len(data) < offset+frameSize {
			short := offset + frameSize - len(data)
			return nil, fmt.Errorf("%w: frame %d is %d bytes short", ErrTruncatedFrame, i, short)
		}
		frame := make([]byte, frameSize)
		copy(frame, data[offset:offset+frameSize])
		a.Frames[i] = frame
		offset += frameSize
	}

	return a, nil
}
