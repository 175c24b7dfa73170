package main

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bodgit/gct"
	"github.com/bodgit/gct/texture"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
	// -h is taken by --height
	cli.HelpFlag = &cli.BoolFlag{
		Name:  "help",
		Usage: "show help",
	}
}

// parseOffset accepts a hex offset with or without a leading 0x
func parseOffset(s string) (int64, error) {
	if s == "" {
		return 0, nil
	}
	offset, err := strconv.ParseInt(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 64)
	if err != nil || offset < 0 {
		return 0, fmt.Errorf("invalid offset %q", s)
	}
	return offset, nil
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func newGCT(c *cli.Context) (*gct.GCT, func() error, error) {
	logger := newLogger(c)

	if c.String("cache") == "" {
		return gct.New(nil, logger), func() error { return nil }, nil
	}

	cache, err := gct.NewCache(c.String("cache"))
	if err != nil {
		return nil, nil, err
	}

	return gct.New(cache, logger), cache.Close, nil
}

func options(c *cli.Context) (*texture.Options, error) {
	offset, err := parseOffset(c.String("offset"))
	if err != nil {
		return nil, err
	}

	o := &texture.Options{
		Offset: offset,
	}
	if c.Command.Name == "inject" {
		o.WriteDimensions = c.Bool("write-dimensions")
	} else {
		o.Width, o.Height = c.Int("width"), c.Int("height")
	}
	return o, nil
}

func offsetFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "offset",
		Aliases: []string{"s"},
		Value:   fmt.Sprintf("%x", texture.DefaultOffset),
		Usage:   "start of the block stream in hex",
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "gct"
	app.Usage = "GCT texture conversion utility"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"GCT_CACHE"},
			Usage:   "path to database of previously encoded images",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "extract",
			Aliases:     []string{"e"},
			Usage:       "Extract a GCT texture to an image",
			Description: "The output format is chosen by the extension, one of .png, .bmp, .tif or .tiff",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "width",
					Aliases: []string{"w"},
					Usage:   "override the width in the header",
				},
				&cli.IntFlag{
					Name:    "height",
					Aliases: []string{"h"},
					Usage:   "override the height in the header",
				},
				offsetFlag(),
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "output image, defaults to FILE with a .png extension",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				o, err := options(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				g, closer, err := newGCT(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				output := c.String("output")
				if output == "" {
					output = gct.Output(c.Args().First())
				}

				if err := g.Extract(c.Args().First(), output, o); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "inject",
			Aliases:     []string{"i"},
			Usage:       "Inject an image into a GCT texture",
			Description: "If the target exists only the block stream is replaced, otherwise a new file is created",
			ArgsUsage:   "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "target",
					Aliases:  []string{"t"},
					Usage:    "GCT file to write",
					Required: true,
				},
				offsetFlag(),
				&cli.BoolFlag{
					Name:    "write-dimensions",
					Aliases: []string{"wd"},
					Usage:   "also update the dimensions of an existing target",
				},
				&cli.BoolFlag{
					Name:  "fit",
					Usage: "resize the image to a multiple of 8 pixels",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				o, err := options(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				g, closer, err := newGCT(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := g.Inject(c.Args().First(), c.String("target"), o, c.Bool("fit")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "scan",
			Usage:       "Extract every GCT texture under a directory",
			Description: "Each texture is written as a PNG alongside the original",
			ArgsUsage:   "DIRECTORY",
			Flags: []cli.Flag{
				offsetFlag(),
				&cli.IntFlag{
					Name:  "workers",
					Value: gct.DefaultWorkers,
					Usage: "number of textures to extract at once",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				o, err := options(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				g, closer, err := newGCT(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer closer()

				if err := g.ExtractAll(c.Args().First(), c.Int("workers"), o); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
