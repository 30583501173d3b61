package main

import (
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v2"

	"github.com/qbitworks/qgif"
)

// convertConfig holds the convert flag values before validation.
type convertConfig struct {
	Threshold int
	Invert    bool
	Dither    bool
	Scale     string
	Width     int
	Height    int
}

// fileConfig mirrors convertConfig for TOML defaults files. Pointer fields
// distinguish "absent" from zero values.
type fileConfig struct {
	Threshold *int   `toml:"threshold"`
	Invert    *bool  `toml:"invert"`
	Dither    *bool  `toml:"dither"`
	Scale     string `toml:"scale"`
	Width     *int   `toml:"width"`
	Height    *int   `toml:"height"`
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, fmt.Errorf("parse %s: %w", path, err)
	}
	return fc, nil
}

// applyFileConfig overlays file values onto cfg, skipping any flag the user
// set explicitly. Flags beat file values, file values beat defaults.
func applyFileConfig(cfg *convertConfig, fc fileConfig, changed map[string]bool) {
	if fc.Threshold != nil && !changed["threshold"] {
		cfg.Threshold = *fc.Threshold
	}
	if fc.Invert != nil && !changed["invert"] {
		cfg.Invert = *fc.Invert
	}
	if fc.Dither != nil && !changed["dither"] {
		cfg.Dither = *fc.Dither
	}
	if fc.Scale != "" && !changed["scale"] {
		cfg.Scale = fc.Scale
	}
	if fc.Width != nil && !changed["width"] {
		cfg.Width = *fc.Width
	}
	if fc.Height != nil && !changed["height"] {
		cfg.Height = *fc.Height
	}
}

// options validates the merged configuration at the encoder boundary so
// out-of-range values never reach the packing stage.
func (cfg convertConfig) options() (qgif.Options, error) {
	if cfg.Threshold < 0 || cfg.Threshold > 255 {
		return qgif.Options{}, fmt.Errorf("threshold %d out of range 0-255", cfg.Threshold)
	}
	mode, err := qgif.ParseScaleMode(cfg.Scale)
	if err != nil {
		return qgif.Options{}, err
	}
	if cfg.Width <= 0 || cfg.Width%8 != 0 {
		return qgif.Options{}, fmt.Errorf("width %d must be a positive multiple of 8", cfg.Width)
	}
	if cfg.Height <= 0 {
		return qgif.Options{}, fmt.Errorf("height %d must be positive", cfg.Height)
	}

	return qgif.Options{
		Width:     cfg.Width,
		Height:    cfg.Height,
		Threshold: uint8(cfg.Threshold),
		Invert:    cfg.Invert,
		Dither:    cfg.Dither,
		Scale:     mode,
	}, nil
}

// resolveOptions merges flags with an optional TOML defaults file and
// validates the result.
func resolveOptions(c *cli.Context) (qgif.Options, error) {
	cfg := convertConfig{
		Threshold: c.Int("threshold"),
		Invert:    c.Bool("invert"),
		Dither:    c.Bool("dither"),
		Scale:     c.String("scale"),
		Width:     c.Int("width"),
		Height:    c.Int("height"),
	}

	if path := c.String("config"); path != "" {
		fc, err := loadFileConfig(path)
		if err != nil {
			return qgif.Options{}, err
		}
		changed := map[string]bool{}
		for _, name := range []string{"threshold", "invert", "dither", "scale", "width", "height"} {
			if c.IsSet(name) {
				changed[name] = true
			}
		}
		applyFileConfig(&cfg, fc, changed)
	}

	return cfg.options()
}
