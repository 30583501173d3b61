package qgif

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
)

// Options control one source-to-container conversion.
type Options struct {
	Width     int
	Height    int
	Threshold uint8
	Invert    bool
	Dither    bool
	Scale     ScaleMode
}

// DefaultOptions returns the conversion defaults for the QBIT panel.
func DefaultOptions() Options {
	return Options{
		Width:     DisplayWidth,
		Height:    DisplayHeight,
		Threshold: 128,
		Scale:     ScaleFit,
	}
}

// Converter turns animated or still image sources into .qgif containers.
// Sources are converted independently; the converter holds no state across
// them beyond its options and logger.
type Converter struct {
	opts Options
	log  zerolog.Logger
}

// NewConverter returns a Converter with the given options. Use
// zerolog.Nop() to silence diagnostics.
func NewConverter(opts Options, log zerolog.Logger) *Converter {
	return &Converter{opts: opts, log: log}
}

// Convert decodes one image source and encodes it as an Animation. Animated
// GIFs contribute every frame; any other decodable format becomes a single
// frame. Delays that are missing or non-positive default to DefaultDelayMS.
// Sources longer than MaxFrames are truncated to the first MaxFrames frames
// with a warning rather than failing; the returned bool reports whether
// truncation happened.
func (c *Converter) Convert(r io.Reader) (*Animation, bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, false, fmt.Errorf("read source: %w", err)
	}

	frames, delays, err := decodeSource(data)
	if err != nil {
		return nil, false, err
	}
	if len(frames) == 0 {
		return nil, false, ErrNoFrames
	}

	truncated := false
	if len(frames) > MaxFrames {
		c.log.Warn().Int("frames", len(frames)).Int("max", MaxFrames).Msg("truncating animation")
		frames = frames[:MaxFrames]
		delays = delays[:MaxFrames]
		truncated = true
	}

	anim := &Animation{
		Width:  c.opts.Width,
		Height: c.opts.Height,
		Delays: make([]uint16, 0, len(frames)),
		Frames: make([][]byte, 0, len(frames)),
	}
	for i, frame := range frames {
		canvas := Rasterize(frame, c.opts.Width, c.opts.Height, c.opts.Scale)
		if c.opts.Dither {
			canvas = Dither(canvas)
		}
		packed, err := Pack(canvas, c.opts.Threshold, c.opts.Invert)
		if err != nil {
			return nil, false, err
		}
		anim.Frames = append(anim.Frames, packed)

		delay := delays[i]
		if delay <= 0 {
			delay = DefaultDelayMS
		}
		anim.Delays = append(anim.Delays, uint16(delay))
	}

	return anim, truncated, nil
}

// decodeSource extracts the frame sequence from an encoded image. GIF data
// goes through full multi-frame decoding; everything else is a single
// frame with no intrinsic delay.
func decodeSource(data []byte) ([]image.Image, []int, error) {
	if _, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil && format == "gif" {
		g, err := gif.DecodeAll(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("decode gif: %w", err)
		}
		flat, delays := Flatten(g)
		frames := make([]image.Image, len(flat))
		for i, f := range flat {
			frames[i] = f
		}
		return frames, delays, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, fmt.Errorf("decode image: %w", err)
	}
	return []image.Image{img}, []int{0}, nil
}

// Result reports the outcome of converting one source file.
type Result struct {
	Input     string
	Output    string
	Frames    int
	Bytes     int
	Truncated bool
	Err       error
}

// Summary aggregates a batch of conversion results.
type Summary struct {
	Attempted int
	Succeeded int
}

// ConvertFile converts one source image file into a container file. An
// empty outPath derives the output from the input base name with the
// container suffix. On failure no output file is created.
func (c *Converter) ConvertFile(inPath, outPath string) Result {
	if outPath == "" {
		outPath = strings.TrimSuffix(inPath, filepath.Ext(inPath)) + Extension
	}
	res := Result{Input: inPath, Output: outPath}

	f, err := os.Open(inPath)
	if err != nil {
		res.Err = fmt.Errorf("open %s: %w", inPath, err)
		return res
	}
	defer f.Close()

	anim, truncated, err := c.Convert(f)
	if err != nil {
		res.Err = fmt.Errorf("convert %s: %w", inPath, err)
		return res
	}
	if err := WriteFile(outPath, anim); err != nil {
		res.Err = err
		return res
	}

	res.Frames = anim.FrameCount()
	res.Bytes = anim.Size()
	res.Truncated = truncated
	return res
}

// ConvertAll converts each source independently; one source's failure never
// aborts its siblings. outPath applies only when there is a single input.
func (c *Converter) ConvertAll(inputs []string, outPath string) ([]Result, Summary) {
	results := make([]Result, 0, len(inputs))
	var sum Summary

	for _, in := range inputs {
		out := ""
		if len(inputs) == 1 {
			out = outPath
		}

		res := c.ConvertFile(in, out)
		sum.Attempted++
		if res.Err != nil {
			c.log.Error().Err(res.Err).Str("input", res.Input).Msg("conversion failed")
		} else {
			sum.Succeeded++
			c.log.Info().
				Str("input", filepath.Base(res.Input)).
				Str("output", filepath.Base(res.Output)).
				Int("frames", res.Frames).
				Int("bytes", res.Bytes).
				Msg("converted")
		}
		results = append(results, res)
	}

	return results, sum
}

// ExpandInputs resolves a mix of file paths and directories into the list
// of source files to convert. Directories contribute their .gif entries
// sorted by name; missing paths are skipped with a warning. Expansion
// happens once, before any conversion starts.
func (c *Converter) ExpandInputs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		switch {
		case err != nil:
			c.log.Warn().Str("path", arg).Msg("not found, skipping")
		case info.IsDir():
			matches, err := filepath.Glob(filepath.Join(arg, "*.gif"))
			if err != nil {
				return nil, fmt.Errorf("glob %s: %w", arg, err)
			}
			sort.Strings(matches)
			files = append(files, matches...)
		default:
			files = append(files, arg)
		}
	}
	if len(files) == 0 {
		return nil, ErrNoInputs
	}
	return files, nil
}
