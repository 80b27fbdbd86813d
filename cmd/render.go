package cmd

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/output"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli"
)

// RenderFlags are the options accepted by the render command. Values set on
// the command line or in the environment override the scene's defaults.
var RenderFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "scene",
		Value:  "default",
		Usage:  "name of the scene to render (see list-scenes)",
		EnvVar: "RT_SCENE",
	},
	cli.IntFlag{
		Name:   "width",
		Value:  400,
		Usage:  "image width in pixels",
		EnvVar: "RT_WIDTH",
	},
	cli.Float64Flag{
		Name:   "aspect",
		Value:  16.0 / 9.0,
		Usage:  "image aspect ratio (width / height)",
		EnvVar: "RT_ASPECT",
	},
	cli.IntFlag{
		Name:   "spp",
		Value:  100,
		Usage:  "samples per pixel",
		EnvVar: "RT_SPP",
	},
	cli.IntFlag{
		Name:   "depth",
		Value:  50,
		Usage:  "maximum number of ray bounces",
		EnvVar: "RT_DEPTH",
	},
	cli.Uint64Flag{
		Name:   "seed",
		Value:  1,
		Usage:  "seed of the per-pixel random streams",
		EnvVar: "RT_SEED",
	},
	cli.IntFlag{
		Name:   "workers",
		Value:  0,
		Usage:  "number of render workers (0 = one per CPU)",
		EnvVar: "RT_WORKERS",
	},
	cli.StringFlag{
		Name:   "out, o",
		Value:  "-",
		Usage:  "output file (.ppm, .png, .bmp, optionally .gz or .zst); - for stdout",
		EnvVar: "RT_OUT",
	},
	cli.BoolFlag{
		Name:   "no-progress",
		Usage:  "do not show a progress bar",
		EnvVar: "RT_NO_PROGRESS",
	},
}

// Render a still frame.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := scene.Lookup(ctx.String("scene"))
	if err != nil {
		return err
	}

	camera, err := renderer.NewCamera(cameraConfig(ctx, sc.Camera))
	if err != nil {
		return err
	}

	config := renderer.Config{
		Seed:       ctx.Uint64("seed"),
		NumWorkers: ctx.Int("workers"),
	}
	if !ctx.Bool("no-progress") {
		config.Progress = newProgressBar
	}
	rt := renderer.NewRaytracer(camera, sc.World, config)

	sink, err := output.Create(ctx.String("out"), os.Stdout)
	if err != nil {
		return err
	}

	logger.Noticef(`rendering scene "%s" (%d objects) at %dx%d`, sc.Name, sc.World.Len(), camera.Width(), camera.Height())

	var stats renderer.RenderStats
	if sink.Streaming() {
		stats, err = rt.Render(sink)
	} else {
		img, imgStats := rt.RenderImage()
		stats = imgStats
		err = sink.WriteImage(img)
	}
	if closeErr := sink.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	displayRenderStats(stats)
	return nil
}

// cameraConfig applies explicitly set flags on top of the scene defaults
func cameraConfig(ctx *cli.Context, defaults renderer.CameraConfig) renderer.CameraConfig {
	config := defaults
	if ctx.IsSet("width") {
		config.ImageWidth = ctx.Int("width")
	}
	if ctx.IsSet("aspect") {
		config.AspectRatio = ctx.Float64("aspect")
	}
	if ctx.IsSet("spp") {
		config.SamplesPerPixel = ctx.Int("spp")
	}
	if ctx.IsSet("depth") {
		config.MaxDepth = ctx.Int("depth")
	}
	return config
}

// progressBar adapts a terminal progress bar on stderr to renderer.Progress
type progressBar struct {
	bar *progressbar.ProgressBar
}

func newProgressBar(total int) renderer.Progress {
	return &progressBar{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("px"),
			progressbar.OptionShowIts(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(os.Stderr)
			}),
		),
	}
}

func (p *progressBar) Increment(n int) {
	_ = p.bar.Add(n)
}

func (p *progressBar) Finish() {
	_ = p.bar.Finish()
}

func displayRenderStats(stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Rows", "% of frame", "Render time"})
	for _, ws := range stats.Workers {
		table.Append([]string{
			fmt.Sprintf("%d", ws.ID),
			fmt.Sprintf("%d", ws.Rows),
			fmt.Sprintf("%02.1f %%", 100*stats.RowShare(ws)),
			ws.RenderTime.String(),
		})
	}
	table.SetFooter([]string{
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d spp", stats.SamplesPerPixel),
		"TOTAL",
		stats.Duration.String(),
	})

	table.Render()
	logger.Noticef("frame statistics (%d samples)\n%s", stats.TotalSamples, buf.String())
}
