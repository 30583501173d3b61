package qgif

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Encode writes the Animation a to w in .qgif container format. The whole
// container is assembled in memory first, so a failing writer never
// receives a partial stream.
func Encode(w io.Writer, a *Animation) error {
	buf, err := appendContainer(make([]byte, 0, a.Size()), a)
	if err != nil {
		return err
	}
	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write container: %w", err)
	}
	return nil
}

// WriteFile encodes a and writes the container to path in a single write.
// On any error before the write, path is left untouched.
func WriteFile(path string, a *Animation) error {
	buf, err := appendContainer(make([]byte, 0, a.Size()), a)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func appendContainer(buf []byte, a *Animation) ([]byte, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	buf = append(buf, byte(len(a.Frames)))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(a.Width))
	buf = binary.LittleEndian.AppendUint16(buf, uint16(a.Height))
	for _, d := range a.Delays {
		buf = binary.LittleEndian.AppendUint16(buf, d)
	}
	for _, f := range a.Frames {
		buf = append(buf, f...)
	}
	return buf, nil
}
