package renderer

import (
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/output"
)

// shadowAcneEpsilon is the lower bound of every intersection query; hits closer
// than this to the ray origin are treated as the surface the ray just left
const shadowAcneEpsilon = 0.001

var logger = log.New("renderer")

var (
	skyWhite = core.NewColor(1.0, 1.0, 1.0)
	skyBlue  = core.NewColor(0.5, 0.7, 1.0)
)

// Config contains settings that do not change the rendered pixels, except Seed
type Config struct {
	Seed       uint64          // Base of every per-pixel random stream
	NumWorkers int             // Parallel workers (0 = use CPU count)
	Progress   ProgressFactory // Progress indicator (nil = none)
}

// Raytracer handles the rendering process
type Raytracer struct {
	camera *Camera
	world  geometry.Hittable
	config Config
}

// NewRaytracer creates a new raytracer. The world must not change while rendering.
func NewRaytracer(camera *Camera, world geometry.Hittable, config Config) *Raytracer {
	if config.Progress == nil {
		config.Progress = NoopProgress
	}
	return &Raytracer{
		camera: camera,
		world:  world,
		config: config,
	}
}

// Camera returns the camera the raytracer renders through
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// Sky returns the background gradient seen by a ray that escapes the scene
func Sky(r core.Ray) core.Color {
	unitDirection := r.Direction.Normalize()
	a := 0.5 * (unitDirection.Y + 1.0)
	return skyWhite.Multiply(1.0 - a).Add(skyBlue.Multiply(a))
}

// RayColor estimates the radiance arriving along r with depth bounces left
func (rt *Raytracer) RayColor(r core.Ray, depth int, sampler core.Sampler) core.Color {
	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Black
	}

	hit, isHit := rt.world.Hit(r, core.NewInterval(shadowAcneEpsilon, math.Inf(1)))
	if !isHit {
		return Sky(r)
	}

	scatter, didScatter := hit.Material.Scatter(r, *hit, sampler)
	if !didScatter {
		return core.Black // Material absorbed the ray
	}

	return scatter.Attenuation.Attenuate(rt.RayColor(scatter.Scattered, depth-1, sampler))
}

// PixelColor returns the sample-averaged linear color of pixel (i, j).
// The result depends only on the seed and the pixel coordinates.
func (rt *Raytracer) PixelColor(i, j int) core.Color {
	sampler := core.NewPixelSampler(rt.config.Seed, i, j)
	samples := rt.camera.SamplesPerPixel()

	var colorAccum core.Color
	for s := 0; s < samples; s++ {
		ray := rt.camera.GetRay(i, j, sampler)
		colorAccum.AddAssign(rt.RayColor(ray, rt.camera.MaxDepth(), sampler).Vec3)
	}
	return colorAccum.Multiply(1.0 / float64(samples))
}

// RenderRow returns the colors of scanline j from left to right
func (rt *Raytracer) RenderRow(j int) []core.Color {
	row := make([]core.Color, rt.camera.Width())
	for i := range row {
		row[i] = rt.PixelColor(i, j)
	}
	return row
}

// Render streams the image to w as a P3 pixmap in raster order
func (rt *Raytracer) Render(w io.Writer) (RenderStats, error) {
	enc := output.NewPPMEncoder(w)
	if err := enc.WriteHeader(rt.camera.Width(), rt.camera.Height()); err != nil {
		return RenderStats{}, err
	}

	stats, err := rt.render(func(row int, pixels []core.Color) error {
		for _, c := range pixels {
			if err := enc.WritePixel(c); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return stats, err
	}
	return stats, enc.Flush()
}

// RenderImage renders into an in-memory raster with the same pixel values as Render
func (rt *Raytracer) RenderImage() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.camera.Width(), rt.camera.Height()))
	stats, _ := rt.render(func(row int, pixels []core.Color) error {
		for i, c := range pixels {
			img.SetRGBA(i, row, c.ToRGBA())
		}
		return nil
	})
	return img, stats
}

// render fans scanlines out to the worker pool and hands them to emit strictly
// top to bottom, buffering rows that finish early
func (rt *Raytracer) render(emit func(row int, pixels []core.Color) error) (RenderStats, error) {
	start := time.Now()
	width, height := rt.camera.Width(), rt.camera.Height()

	pool := NewWorkerPool(rt, rt.config.NumWorkers)
	stats := RenderStats{
		Width:           width,
		Height:          height,
		SamplesPerPixel: rt.camera.SamplesPerPixel(),
		MaxDepth:        rt.camera.MaxDepth(),
		Workers:         make([]WorkerStats, pool.GetNumWorkers()),
	}
	for i := range stats.Workers {
		stats.Workers[i].ID = i
	}

	logger.Infof("rendering %dx%d, %d samples per pixel, max depth %d, %d workers",
		width, height, stats.SamplesPerPixel, stats.MaxDepth, pool.GetNumWorkers())

	progress := rt.config.Progress(width * height)
	defer progress.Finish()

	pool.Start()
	for j := 0; j < height; j++ {
		pool.SubmitTask(RowTask{Row: j})
	}

	pending := make(map[int][]core.Color)
	next := 0
	for next < height {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		stats.addRow(result)
		pending[result.Row] = result.Pixels

		for pixels, ready := pending[next]; ready; pixels, ready = pending[next] {
			delete(pending, next)
			if err := emit(next, pixels); err != nil {
				pool.Abort()
				pool.Stop()
				return stats, fmt.Errorf("renderer: emit row %d: %w", next, err)
			}
			for range pixels {
				progress.Increment(1)
			}
			next++
		}
	}
	pool.Stop()

	stats.Duration = time.Since(start)
	logger.Infof("render finished in %v (%d samples)", stats.Duration, stats.TotalSamples)
	for _, ws := range stats.Workers {
		logger.Debugf("worker %d rendered %d rows in %v", ws.ID, ws.Rows, ws.RenderTime)
	}

	return stats, nil
}
