package qgif

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// hexPerLine is the number of frame bytes rendered per source line, chosen
// so a 128x64 frame row spans exactly one line.
const hexPerLine = 16

// WriteHeader renders the animation as a C header for firmware linkage: a
// PROGMEM frame table, a delay array, and an AnimatedGIF descriptor
// aggregating them. All generated symbols derive from name, sanitized to a
// valid C identifier. Output is byte-for-byte deterministic for a given
// container and identifier, so generated headers are reproducible and
// diffable.
func WriteHeader(w io.Writer, a *Animation, name string) error {
	if err := a.validate(); err != nil {
		return err
	}
	ident, err := sanitizeIdentifier(name)
	if err != nil {
		return err
	}

	upper := strings.ToUpper(ident)
	guard := upper + "_H"
	countSym := upper + "_FRAME_COUNT"
	frameSize := a.FrameSize()

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "#ifndef %s\n#define %s\n\n", guard, guard)
	bw.WriteString("#include <stdint.h>\n#include <pgmspace.h>\n\n")

	// The descriptor shape is shared by every generated header in a
	// build, so it carries its own guard independent of the identifier.
	bw.WriteString("// Definition of data structure for GIF\n")
	bw.WriteString("#ifndef ANIMATED_GIF_DEFINED\n#define ANIMATED_GIF_DEFINED\n")
	bw.WriteString("typedef struct {\n")
	bw.WriteString("    const uint8_t frame_count;\n")
	bw.WriteString("    const uint16_t width;\n")
	bw.WriteString("    const uint16_t height;\n")
	bw.WriteString("    const uint16_t* delays;\n")
	fmt.Fprintf(bw, "    const uint8_t (* frames)[%d];\n", frameSize)
	bw.WriteString("} AnimatedGIF;\n")
	bw.WriteString("#endif // ANIMATED_GIF_DEFINED\n\n")

	fmt.Fprintf(bw, "#define %s %d\n", countSym, a.FrameCount())
	fmt.Fprintf(bw, "#define %s_WIDTH %d\n", upper, a.Width)
	fmt.Fprintf(bw, "#define %s_HEIGHT %d\n\n", upper, a.Height)

	delays := make([]string, len(a.Delays))
	for i, d := range a.Delays {
		delays[i] = fmt.Sprintf("%d", d)
	}
	fmt.Fprintf(bw, "const uint16_t %s_delays[%s] = {%s};\n\n", ident, countSym, strings.Join(delays, ", "))

	fmt.Fprintf(bw, "PROGMEM const uint8_t %s_frames[%s][%d] = {\n", ident, countSym, frameSize)
	for fi, frame := range a.Frames {
		bw.WriteString("  {\n")
		for start := 0; start < len(frame); start += hexPerLine {
			end := start + hexPerLine
			if end > len(frame) {
				end = len(frame)
			}
			hexed := make([]string, end-start)
			for i, b := range frame[start:end] {
				hexed[i] = fmt.Sprintf("0x%02x", b)
			}
			comma := ","
			if end == len(frame) {
				comma = ""
			}
			fmt.Fprintf(bw, "    %s%s\n", strings.Join(hexed, ", "), comma)
		}
		comma := ","
		if fi == len(a.Frames)-1 {
			comma = ""
		}
		fmt.Fprintf(bw, "  }%s\n", comma)
	}
	bw.WriteString("};\n\n")

	fmt.Fprintf(bw, "const AnimatedGIF %s_gif = {\n", ident)
	fmt.Fprintf(bw, "    %s,\n", countSym)
	fmt.Fprintf(bw, "    %s_WIDTH,\n", upper)
	fmt.Fprintf(bw, "    %s_HEIGHT,\n", upper)
	fmt.Fprintf(bw, "    %s_delays,\n", ident)
	fmt.Fprintf(bw, "    %s_frames\n", ident)
	bw.WriteString("};\n\n")

	fmt.Fprintf(bw, "#endif // %s\n", guard)

	return bw.Flush()
}

// WriteHeaderFile renders the header to path in a single write; no partial
// file is left on failure.
func WriteHeaderFile(path string, a *Animation, name string) error {
	var buf bytes.Buffer
	if err := WriteHeader(&buf, a, name); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitizeIdentifier maps name onto a valid C identifier: disallowed runes
// become underscores and a leading digit gains an underscore prefix, so
// repeated inclusion with distinct names cannot collide.
func sanitizeIdentifier(name string) (string, error) {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	ident := b.String()
	if strings.Trim(ident, "_") == "" {
		return "", fmt.Errorf("%w: %q", ErrBadIdentifier, name)
	}
	if ident[0] >= '0' && ident[0] <= '9' {
		ident = "_" + ident
	}
	return ident, nil
}
