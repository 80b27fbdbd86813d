package output

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// PPMEncoder writes a plain-text (P3) portable pixmap.
// Write errors are sticky: after the first failure every call returns it.
type PPMEncoder struct {
	w   *bufio.Writer
	err error
}

// NewPPMEncoder creates an encoder writing to w
func NewPPMEncoder(w io.Writer) *PPMEncoder {
	return &PPMEncoder{w: bufio.NewWriter(w)}
}

// WriteHeader emits the magic number, the image dimensions and the max channel value
func (e *PPMEncoder) WriteHeader(width, height int) error {
	return e.printf("P3\n%d %d\n255\n", width, height)
}

// WritePixel quantizes a linear color and emits it as one "R G B" line
func (e *PPMEncoder) WritePixel(c core.Color) error {
	r, g, b := c.Quantize()
	return e.WriteRGB(r, g, b)
}

// WriteRGB emits an already quantized pixel
func (e *PPMEncoder) WriteRGB(r, g, b uint8) error {
	return e.printf("%d %d %d\n", r, g, b)
}

// Flush pushes buffered pixels to the underlying writer
func (e *PPMEncoder) Flush() error {
	if e.err != nil {
		return e.err
	}
	if err := e.w.Flush(); err != nil {
		e.err = fmt.Errorf("output: flush ppm: %w", err)
	}
	return e.err
}

func (e *PPMEncoder) printf(format string, args ...interface{}) error {
	if e.err != nil {
		return e.err
	}
	if _, err := fmt.Fprintf(e.w, format, args...); err != nil {
		e.err = fmt.Errorf("output: write ppm: %w", err)
	}
	return e.err
}

// EncodePPM writes a full raster as P3 in row-major order
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	enc := NewPPMEncoder(w)
	if err := enc.WriteHeader(bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if err := enc.WriteRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8)); err != nil {
				return err
			}
		}
	}
	return enc.Flush()
}
