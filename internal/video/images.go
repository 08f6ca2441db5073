package video

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// ImageDirSink writes each frame to its own file, frame_0000.png and so on.
type ImageDirSink struct {
	Dir    string
	Format string

	digits int
	encode func(io.Writer, image.Image) error
}

var encoders = map[string]func(io.Writer, image.Image) error{
	"png": func(w io.Writer, img image.Image) error {
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		return enc.Encode(w, img)
	},
	"bmp": bmp.Encode,
	"tiff": func(w io.Writer, img image.Image) error {
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	},
}

// Formats lists the supported frame file formats
func Formats() []string {
	return []string{"png", "bmp", "tiff"}
}

// NewImageDirSink creates dir if needed. Frame numbers are zero padded to at
// least four digits, more when frameCount needs them.
func NewImageDirSink(dir, format string, frameCount int) (*ImageDirSink, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		format = "png"
	}
	enc, ok := encoders[format]
	if !ok {
		return nil, fmt.Errorf("unsupported frame format %q (supported: %s)", format, strings.Join(Formats(), ", "))
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create frames dir: %w", err)
	}

	digits := len(strconv.Itoa(max(frameCount-1, 0)))
	if digits < 4 {
		digits = 4
	}

	return &ImageDirSink{Dir: dir, Format: format, digits: digits, encode: enc}, nil
}

// FramePath is the file a frame index is written to
func (s *ImageDirSink) FramePath(index int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("frame_%0*d.%s", s.digits, index, s.Format))
}

func (s *ImageDirSink) WriteFrame(ctx context.Context, index int, img *image.RGBA) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.FramePath(index)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func (s *ImageDirSink) Close() error {
	return nil
}
