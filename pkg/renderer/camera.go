package renderer

import (
	"errors"
	"fmt"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// ErrInvalidCamera is returned for camera settings that cannot be normalized
var ErrInvalidCamera = errors.New("renderer: invalid camera configuration")

// CameraConfig contains the user-facing camera and sampling parameters
type CameraConfig struct {
	AspectRatio     float64 // Ideal width over height
	ImageWidth      int     // Rendered image width in pixels
	SamplesPerPixel int     // Number of jittered rays per pixel
	MaxDepth        int     // Maximum number of bounces per path
}

// DefaultCameraConfig returns the settings used when a scene does not override them
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		AspectRatio:     16.0 / 9.0,
		ImageWidth:      400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
	}
}

// Camera generates rays for rendering.
// The camera sits at the origin looking down -Z through a viewport of height 2
// one unit in front of it; scanline 0 is the top of the image.
type Camera struct {
	config      CameraConfig
	imageHeight int
	center      core.Point3
	pixel00     core.Point3 // Center of the top-left pixel
	pixelDeltaU core.Vec3   // Offset to the pixel on the right
	pixelDeltaV core.Vec3   // Offset to the pixel below
}

// NewCamera derives the viewport geometry from config
func NewCamera(config CameraConfig) (*Camera, error) {
	switch {
	case config.ImageWidth < 1:
		return nil, fmt.Errorf("%w: image width %d", ErrInvalidCamera, config.ImageWidth)
	case !(config.AspectRatio > 0):
		return nil, fmt.Errorf("%w: aspect ratio %v", ErrInvalidCamera, config.AspectRatio)
	case config.SamplesPerPixel < 1:
		return nil, fmt.Errorf("%w: samples per pixel %d", ErrInvalidCamera, config.SamplesPerPixel)
	case config.MaxDepth < 0:
		return nil, fmt.Errorf("%w: max depth %d", ErrInvalidCamera, config.MaxDepth)
	}

	imageHeight := max(1, int(float64(config.ImageWidth)/config.AspectRatio))

	focalLength := 1.0
	viewportHeight := 2.0
	viewportWidth := viewportHeight * float64(config.ImageWidth) / float64(imageHeight)
	center := core.NewVec3(0, 0, 0)
	focalPoint := core.NewVec3(0, 0, focalLength)

	viewportU := core.NewVec3(viewportWidth, 0, 0)
	viewportV := core.NewVec3(0, -viewportHeight, 0)

	pixelDeltaU := viewportU.Divide(float64(config.ImageWidth))
	pixelDeltaV := viewportV.Divide(float64(imageHeight))

	viewportUpperLeft := center.Subtract(focalPoint)
	viewportUpperLeft.SubtractAssign(viewportU.Divide(2))
	viewportUpperLeft.SubtractAssign(viewportV.Divide(2))

	pixel00 := viewportUpperLeft.Add(pixelDeltaU.Add(pixelDeltaV).Multiply(0.5))

	return &Camera{
		config:      config,
		imageHeight: imageHeight,
		center:      center,
		pixel00:     pixel00,
		pixelDeltaU: pixelDeltaU,
		pixelDeltaV: pixelDeltaV,
	}, nil
}

// Width returns the image width in pixels
func (c *Camera) Width() int { return c.config.ImageWidth }

// Height returns the image height in pixels
func (c *Camera) Height() int { return c.imageHeight }

// SamplesPerPixel returns the number of rays averaged per pixel
func (c *Camera) SamplesPerPixel() int { return c.config.SamplesPerPixel }

// MaxDepth returns the bounce budget of every path
func (c *Camera) MaxDepth() int { return c.config.MaxDepth }

// Center returns the ray origin shared by all camera rays
func (c *Camera) Center() core.Point3 { return c.center }

// PixelCenter returns the viewport position of pixel (i, j)
func (c *Camera) PixelCenter(i, j int) core.Point3 {
	return c.pixelPoint(float64(i), float64(j))
}

// GetRay generates a ray from the camera center through a random point in pixel (i, j)
func (c *Camera) GetRay(i, j int, sampler core.Sampler) core.Ray {
	offset := sampler.Get2D()
	sample := c.pixelPoint(float64(i)+offset.X-0.5, float64(j)+offset.Y-0.5)
	return core.NewRay(c.center, sample.Subtract(c.center))
}

func (c *Camera) pixelPoint(x, y float64) core.Point3 {
	return c.pixel00.Add(c.pixelDeltaU.Multiply(x)).Add(c.pixelDeltaV.Multiply(y))
}
