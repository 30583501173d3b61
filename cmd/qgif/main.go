package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/qbitworks/qgif"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger().Level(zerolog.InfoLevel)

func main() {
	app := &cli.App{
		Name:  "qgif",
		Usage: "Convert animated images to the QBIT .qgif bitmap format",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "increase verbosity",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool("verbose") {
				logger = logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			convertCommand(),
			headerCommand(),
			infoCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Fatal().Msg(err.Error())
	}
}

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert image files or directories of GIFs to .qgif containers",
		ArgsUsage: "FILE|DIRECTORY...",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output path (single input only)",
			},
			&cli.IntFlag{
				Name:    "threshold",
				Aliases: []string{"t"},
				Value:   128,
				Usage:   "black/white threshold 0-255",
			},
			&cli.BoolFlag{
				Name:  "invert",
				Usage: "invert colours (swap black and white)",
			},
			&cli.BoolFlag{
				Name:  "dither",
				Usage: "Floyd-Steinberg dither before thresholding",
			},
			&cli.StringFlag{
				Name:  "scale",
				Value: string(qgif.ScaleFit),
				Usage: "scale mode: fit, stretch, fit_width, fit_height",
			},
			&cli.IntFlag{
				Name:  "width",
				Value: qgif.DisplayWidth,
				Usage: "target width, multiple of 8",
			},
			&cli.IntFlag{
				Name:  "height",
				Value: qgif.DisplayHeight,
				Usage: "target height",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "TOML file with conversion defaults",
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowSubcommandHelpAndExit(c, 1)
			}

			opts, err := resolveOptions(c)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}

			conv := qgif.NewConverter(opts, logger)
			inputs, err := conv.ExpandInputs(c.Args().Slice())
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			if c.String("output") != "" && len(inputs) > 1 {
				return cli.Exit(fmt.Sprintf("--output needs a single input, have %d", len(inputs)), 1)
			}

			_, sum := conv.ConvertAll(inputs, c.String("output"))
			fmt.Printf("Done: %d/%d converted successfully.\n", sum.Succeeded, sum.Attempted)
			if sum.Succeeded == 0 {
				return cli.Exit("no conversions succeeded", 1)
			}
			return nil
		},
	}
}

func headerCommand() *cli.Command {
	return &cli.Command{
		Name:      "header",
		Usage:     "Render a .qgif container as a C PROGMEM header",
		ArgsUsage: "INPUT.qgif OUTPUT.h NAME",
		Action: func(c *cli.Context) error {
			if c.NArg() != 3 {
				cli.ShowSubcommandHelpAndExit(c, 1)
			}
			in, out, name := c.Args().Get(0), c.Args().Get(1), c.Args().Get(2)

			anim, err := qgif.DecodeFile(in)
			if err != nil {
				return cli.Exit(err.Error(), 1)
			}
			logger.Debug().
				Int("frames", anim.FrameCount()).
				Str("size", fmt.Sprintf("%dx%d", anim.Width, anim.Height)).
				Msg("decoded container")

			if err := qgif.WriteHeaderFile(out, anim, name); err != nil {
				return cli.Exit(err.Error(), 1)
			}
			fmt.Printf("Generated %s (%d frames, %dx%d)\n", out, anim.FrameCount(), anim.Width, anim.Height)
			return nil
		},
	}
}

func infoCommand() *cli.Command {
	return &cli.Command{
		Name:      "info",
		Usage:     "Print the structure of .qgif containers",
		ArgsUsage: "FILE...",
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				cli.ShowSubcommandHelpAndExit(c, 1)
			}

			failed := 0
			for _, path := range c.Args().Slice() {
				anim, err := qgif.DecodeFile(path)
				if err != nil {
					logger.Error().Err(err).Str("input", path).Msg("decode failed")
					failed++
					continue
				}
				fmt.Printf("%s: %d frames, %dx%d, %d bytes, delays %v\n",
					path, anim.FrameCount(), anim.Width, anim.Height, anim.Size(), anim.Delays)
			}
			if failed > 0 {
				return cli.Exit(fmt.Sprintf("%d container(s) failed to decode", failed), 1)
			}
			return nil
		},
	}
}
