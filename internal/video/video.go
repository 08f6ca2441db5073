package video

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/ivlev/beaverstudio/internal/config"
)

// FrameSink receives rendered frames in increasing index order.
// The frame image is only valid during the call; sinks must not retain it.
type FrameSink interface {
	WriteFrame(ctx context.Context, index int, img *image.RGBA) error
	Close() error
}

// MultiSink writes every frame to all of its sinks, stopping at the first error.
type MultiSink []FrameSink

func (m MultiSink) WriteFrame(ctx context.Context, index int, img *image.RGBA) error {
	for _, s := range m {
		if err := s.WriteFrame(ctx, index, img); err != nil {
			return err
		}
	}
	return nil
}

// Close closes every sink and joins their errors
func (m MultiSink) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// OpenSinks builds the sinks requested by cfg: per-frame image files when
// FramesDir is set and an ffmpeg-encoded video when OutputVideo is set.
func OpenSinks(ctx context.Context, cfg *config.Config, frameCount int) (FrameSink, error) {
	var sinks MultiSink

	if cfg.FramesDir != "" {
		s, err := NewImageDirSink(cfg.FramesDir, cfg.FrameFormat, frameCount)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
	}

	if cfg.OutputVideo != "" {
		params := EncodeParams{
			Width:   cfg.Width,
			Height:  cfg.Height,
			FPS:     cfg.FPS,
			Encoder: cfg.VideoEncoder,
			Quality: cfg.Quality,
		}
		s, err := NewFFmpegSink(ctx, cfg.OutputVideo, params)
		if err != nil {
			sinks.Close()
			return nil, err
		}
		sinks = append(sinks, s)
	}

	switch len(sinks) {
	case 0:
		return nil, fmt.Errorf("no output configured: set a frames directory or an output video")
	case 1:
		return sinks[0], nil
	}
	return sinks, nil
}
