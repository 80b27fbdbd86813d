package loaders

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // PNG decoder
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	_ "golang.org/x/image/bmp" // BMP decoder
)

var (
	// ErrInvalidPPM is returned for malformed P3 data
	ErrInvalidPPM = errors.New("loaders: invalid ppm")
	// ErrSizeMismatch is returned when comparing images of different dimensions
	ErrSizeMismatch = errors.New("loaders: image sizes differ")
)

func init() {
	image.RegisterFormat("ppm", "P3", DecodePPM, DecodePPMConfig)
}

// LoadImage loads a PPM, PNG or BMP image, optionally gzip or zstd compressed
func LoadImage(filename string) (*image.RGBA, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		zr, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream: %w", err)
		}
		defer zr.Close()
		r = zr
	case ".zst":
		zr, err := zstd.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	// Decode image (auto-detects the format from the file header)
	img, _, err := image.Decode(bufio.NewReader(r))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return toRGBA(img), nil
}

// DecodePPMConfig reads only the header of a P3 stream
func DecodePPMConfig(r io.Reader) (image.Config, error) {
	tokens, err := ppmTokens(r)
	if err != nil {
		return image.Config{}, err
	}
	width, height, _, err := ppmHeader(tokens)
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: width, Height: height}, nil
}

// DecodePPM decodes a plain-text (P3) portable pixmap
func DecodePPM(r io.Reader) (image.Image, error) {
	tokens, err := ppmTokens(r)
	if err != nil {
		return nil, err
	}
	width, height, maxValue, err := ppmHeader(tokens)
	if err != nil {
		return nil, err
	}

	samples := tokens[4:]
	if len(samples) != width*height*3 {
		return nil, fmt.Errorf("%w: expected %d samples, got %d", ErrInvalidPPM, width*height*3, len(samples))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < width*height; i++ {
		var rgb [3]uint8
		for c := 0; c < 3; c++ {
			v, err := strconv.Atoi(samples[3*i+c])
			if err != nil || v < 0 || v > maxValue {
				return nil, fmt.Errorf("%w: bad sample %q", ErrInvalidPPM, samples[3*i+c])
			}
			rgb[c] = uint8(v * 255 / maxValue)
		}
		img.SetRGBA(i%width, i/width, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
	}
	return img, nil
}

// ppmTokens splits the stream into whitespace-separated tokens with comments removed
func ppmTokens(r io.Reader) ([]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read ppm: %w", err)
	}
	var tokens []string
	for _, line := range bytes.Split(data, []byte("\n")) {
		if i := bytes.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, field := range bytes.Fields(line) {
			tokens = append(tokens, string(field))
		}
	}
	return tokens, nil
}

func ppmHeader(tokens []string) (width, height, maxValue int, err error) {
	if len(tokens) < 4 || tokens[0] != "P3" {
		return 0, 0, 0, fmt.Errorf("%w: missing P3 header", ErrInvalidPPM)
	}
	values := make([]int, 3)
	for i := range values {
		values[i], err = strconv.Atoi(tokens[i+1])
		if err != nil || values[i] <= 0 {
			return 0, 0, 0, fmt.Errorf("%w: bad header field %q", ErrInvalidPPM, tokens[i+1])
		}
	}
	if values[2] > 255 {
		return 0, 0, 0, fmt.Errorf("%w: max value %d above 255", ErrInvalidPPM, values[2])
	}
	return values[0], values[1], values[2], nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return rgba
}

// MaxChannelDifference returns the largest absolute difference between any
// pair of corresponding 8-bit channels, and how many pixels differ at all
func MaxChannelDifference(a, b *image.RGBA) (maxDiff, differing int, err error) {
	if a.Bounds().Size() != b.Bounds().Size() {
		return 0, 0, fmt.Errorf("%w: %v vs %v", ErrSizeMismatch, a.Bounds().Size(), b.Bounds().Size())
	}
	size := a.Bounds().Size()
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			pa := a.RGBAAt(a.Bounds().Min.X+x, a.Bounds().Min.Y+y)
			pb := b.RGBAAt(b.Bounds().Min.X+x, b.Bounds().Min.Y+y)
			d := max(absDiff(pa.R, pb.R), absDiff(pa.G, pb.G), absDiff(pa.B, pb.B))
			if d > 0 {
				differing++
			}
			maxDiff = max(maxDiff, d)
		}
	}
	return maxDiff, differing, nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
