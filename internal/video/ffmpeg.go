package video

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"os/exec"
	"strings"
)

// EncodeParams describes the video ffmpeg produces from the raw frames
type EncodeParams struct {
	Width, Height int
	FPS           float64
	Encoder       string
	Quality       int
}

// FFmpegSink pipes frames as raw RGBA into an ffmpeg process.
// Frames must arrive in order; the video is finalized by Close.
type FFmpegSink struct {
	Path string

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	out    *bytes.Buffer
	params EncodeParams
	closed bool
}

// NewFFmpegSink starts ffmpeg writing to path.
func NewFFmpegSink(ctx context.Context, path string, params EncodeParams) (*FFmpegSink, error) {
	if params.Encoder == "" {
		params.Encoder = "libx264"
	}
	if params.Quality == 0 {
		params.Quality = DefaultQuality(params.Encoder)
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", buildFFmpegArgs(path, params)...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	return &FFmpegSink{
		Path:   path,
		cmd:    cmd,
		stdin:  stdin,
		out:    &out,
		params: params,
	}, nil
}

// DefaultQuality picks a quality value suited to the encoder
func DefaultQuality(encoder string) int {
	switch encoder {
	case "h264_videotoolbox":
		return 75 // bitrate = Q*100 kbit/s
	case "h264_nvenc":
		return 28
	default:
		return 23 // x264 CRF
	}
}

func buildFFmpegArgs(path string, params EncodeParams) []string {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", params.Width, params.Height),
		"-framerate", formatFPS(params.FPS),
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", params.Encoder,
	}

	switch params.Encoder {
	case "h264_videotoolbox":
		// VideoToolbox does not take -q:v everywhere, use a bitrate instead
		args = append(args, "-b:v", fmt.Sprintf("%dk", params.Quality*100))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", params.Quality))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", params.Quality), "-preset", "medium")
	}

	// yuv420p needs even dimensions
	if params.Width%2 != 0 || params.Height%2 != 0 {
		args = append(args, "-vf", "pad=ceil(iw/2)*2:ceil(ih/2)*2")
	}

	return append(args, path)
}

func formatFPS(fps float64) string {
	s := fmt.Sprintf("%f", fps)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func (s *FFmpegSink) WriteFrame(ctx context.Context, index int, img *image.RGBA) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if b := img.Bounds(); b.Dx() != s.params.Width || b.Dy() != s.params.Height {
		return fmt.Errorf("frame %d is %dx%d, encoder expects %dx%d", index, b.Dx(), b.Dy(), s.params.Width, s.params.Height)
	}
	if err := writeRawRGBA(s.stdin, img); err != nil {
		return fmt.Errorf("write raw error: %w\nLog: %s", err, s.out.String())
	}
	return nil
}

// writeRawRGBA writes the pixels row by row when img is a sub-image
func writeRawRGBA(w io.Writer, img *image.RGBA) error {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	if img.Stride == rowLen {
		start := img.PixOffset(b.Min.X, b.Min.Y)
		_, err := w.Write(img.Pix[start : start+rowLen*b.Dy()])
		return err
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		if _, err := w.Write(img.Pix[start : start+rowLen]); err != nil {
			return err
		}
	}
	return nil
}

// Close ends the input stream and waits for ffmpeg to finish the file.
func (s *FFmpegSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.stdin.Close()
	if err := s.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %w\nLog: %s", err, s.out.String())
	}
	return nil
}
