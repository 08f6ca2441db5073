package config

import (
	"errors"
	"fmt"

	"github.com/ivlev/beaverstudio/internal/geom"
)

// Config holds the render settings. The same struct is the `video:` section
// of a scene file; command line flags override it.
type Config struct {
	Width        int     `yaml:"width,omitempty"`
	Height       int     `yaml:"height,omitempty"`
	Background   []int   `yaml:"background,omitempty"` // RGB, 0-255 each
	FPS          float64 `yaml:"fps,omitempty"`
	Duration     float64 `yaml:"duration,omitempty"` // seconds
	Preset       string  `yaml:"preset,omitempty"`
	SamplingStep float64 `yaml:"sampling_step,omitempty"`

	Workers     int `yaml:"workers,omitempty"`
	MaxInFlight int `yaml:"max_in_flight,omitempty"`

	FramesDir    string `yaml:"frames_dir,omitempty"`
	FrameFormat  string `yaml:"frame_format,omitempty"`
	OutputVideo  string `yaml:"output_video,omitempty"`
	VideoEncoder string `yaml:"video_encoder,omitempty"`
	Quality      int    `yaml:"quality,omitempty"`

	ShowStats    bool   `yaml:"show_stats,omitempty"`
	BuildVersion string `yaml:"-"`
}

// Default returns the settings used when neither the scene nor flags set them
func Default() Config {
	return Config{
		Width:        1280,
		Height:       720,
		Background:   []int{0, 0, 0},
		FPS:          30,
		Duration:     5,
		SamplingStep: geom.DefaultStep,
		FramesDir:    "frames",
		FrameFormat:  "png",
	}
}

// Merge overrides c with every non-zero field of o
func (c *Config) Merge(o Config) {
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.Height != 0 {
		c.Height = o.Height
	}
	if o.Background != nil {
		c.Background = append([]int(nil), o.Background...)
	}
	if o.FPS != 0 {
		c.FPS = o.FPS
	}
	if o.Duration != 0 {
		c.Duration = o.Duration
	}
	if o.Preset != "" {
		c.Preset = o.Preset
	}
	if o.SamplingStep != 0 {
		c.SamplingStep = o.SamplingStep
	}
	if o.Workers != 0 {
		c.Workers = o.Workers
	}
	if o.MaxInFlight != 0 {
		c.MaxInFlight = o.MaxInFlight
	}
	if o.FramesDir != "" {
		c.FramesDir = o.FramesDir
	}
	if o.FrameFormat != "" {
		c.FrameFormat = o.FrameFormat
	}
	if o.OutputVideo != "" {
		c.OutputVideo = o.OutputVideo
	}
	if o.VideoEncoder != "" {
		c.VideoEncoder = o.VideoEncoder
	}
	if o.Quality != 0 {
		c.Quality = o.Quality
	}
	if o.ShowStats {
		c.ShowStats = true
	}
}

// ApplyPreset replaces the size with a named aspect preset
func (c *Config) ApplyPreset() error {
	switch c.Preset {
	case "":
	case "16:9":
		c.Width, c.Height = 1280, 720
	case "9:16":
		c.Width, c.Height = 720, 1280
	case "4:5":
		c.Width, c.Height = 1080, 1350
	default:
		return fmt.Errorf("unknown preset %q", c.Preset)
	}
	return nil
}

// BackgroundRGB converts the background triple
func (c *Config) BackgroundRGB() (geom.RGB, error) {
	return ParseRGB(c.Background)
}

// ParseRGB converts a [r, g, b] triple with channels in 0-255
func ParseRGB(v []int) (geom.RGB, error) {
	if len(v) != 3 {
		return geom.RGB{}, fmt.Errorf("color needs 3 channels, got %d", len(v))
	}
	for _, ch := range v {
		if ch < 0 || ch > 255 {
			return geom.RGB{}, fmt.Errorf("color channel %d out of range 0-255", ch)
		}
	}
	return geom.RGB{R: uint8(v[0]), G: uint8(v[1]), B: uint8(v[2])}, nil
}

// Validate reports every invalid setting
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %g", c.FPS))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %g", c.Duration))
	}
	if c.SamplingStep < 0 || c.SamplingStep > 1 {
		errs = append(errs, fmt.Errorf("sampling step must be in [0, 1] (0 = default), got %g", c.SamplingStep))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if _, err := c.BackgroundRGB(); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	if c.FramesDir == "" && c.OutputVideo == "" {
		errs = append(errs, errors.New("nothing to write: frames dir and output video are both empty"))
	}
	return errors.Join(errs...)
}
