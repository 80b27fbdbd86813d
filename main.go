package main

import (
	"os"

	"github.com/df07/go-weekend-raytracer/cmd"
	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

var logger = log.New("main")

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-weekend-raytracer"
	app.Usage = "render sphere scenes with a Monte-Carlo ray tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene",
			Description: `
Render a built-in scene and write it as a plain-text PPM to stdout, or to the
file given with --out. The file extension selects the format (.ppm, .png or
.bmp) and an extra .gz or .zst suffix compresses the output.

Every flag can also be set through its RT_* environment variable or a .env
file in the working directory. Flags override the scene's own settings only
when given explicitly.`,
			Flags:  cmd.RenderFlags,
			Action: cmd.RenderFrame,
		},
		{
			Name:   "list-scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:      "compare",
			Usage:     "compare two rendered images",
			ArgsUsage: "image1 image2",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "tolerance",
					Value: 0,
					Usage: "largest accepted difference per 8-bit channel",
				},
			},
			Action: cmd.CompareImages,
		},
	}

	return app
}

func main() {
	// Settings from .env are optional
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
