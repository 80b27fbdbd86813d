package output

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/image/bmp"
)

// ErrUnsupportedFormat is returned for output paths with an unknown extension
var ErrUnsupportedFormat = errors.New("output: unsupported image format")

// Sink is a destination for a rendered image.
// Streaming sinks take the P3 stream through Write as pixels are produced;
// raster sinks need the finished image through WriteImage.
type Sink interface {
	io.Writer
	Streaming() bool
	WriteImage(img image.Image) error
	Close() error
}

// Formats lists the accepted image extensions; each may carry a Compressions suffix
var (
	Formats      = []string{".ppm", ".png", ".bmp"}
	Compressions = []string{".gz", ".zst"}
)

type sink struct {
	format     string
	w          io.Writer
	compressor io.WriteCloser
	file       io.Closer
}

// Create opens the sink for path. The empty path and "-" write P3 to stdout.
func Create(path string, stdout io.Writer) (Sink, error) {
	if path == "" || path == "-" {
		return &sink{format: ".ppm", w: stdout}, nil
	}

	format, compression := splitExtension(path)
	switch format {
	case ".ppm", ".png", ".bmp":
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Base(path))
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("output: create %s: %w", path, err)
	}

	s := &sink{format: format, w: file, file: file}
	switch compression {
	case ".gz":
		s.compressor = gzip.NewWriter(file)
	case ".zst":
		enc, err := zstd.NewWriter(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("output: zstd encoder: %w", err)
		}
		s.compressor = enc
	}
	if s.compressor != nil {
		s.w = s.compressor
	}

	return s, nil
}

// splitExtension separates an optional compression suffix from the image extension
func splitExtension(path string) (format, compression string) {
	lower := strings.ToLower(path)
	compression = filepath.Ext(lower)
	if compression == ".gz" || compression == ".zst" {
		lower = strings.TrimSuffix(lower, compression)
	} else {
		compression = ""
	}
	return filepath.Ext(lower), compression
}

func (s *sink) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *sink) Streaming() bool {
	return s.format == ".ppm"
}

func (s *sink) WriteImage(img image.Image) error {
	var err error
	switch s.format {
	case ".png":
		err = png.Encode(s.w, img)
	case ".bmp":
		err = bmp.Encode(s.w, img)
	default:
		err = EncodePPM(s.w, img)
	}
	if err != nil {
		return fmt.Errorf("output: encode %s: %w", s.format, err)
	}
	return nil
}

// Close flushes the compressor and closes the file; stdout is left open
func (s *sink) Close() error {
	var errs []error
	if s.compressor != nil {
		errs = append(errs, s.compressor.Close())
	}
	if s.file != nil {
		errs = append(errs, s.file.Close())
	}
	return errors.Join(errs...)
}
