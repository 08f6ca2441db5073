package renderer

import (
	"math"
)

// Window is the frame range an animation instance is active in, both ends inclusive
type Window struct {
	Start int
	End   int
}

// WindowFromSeconds converts a time range to frames with round(seconds * fps)
func WindowFromSeconds(start, end, fps float64) Window {
	return Window{
		Start: FrameAt(start, fps),
		End:   FrameAt(end, fps),
	}
}

// FrameAt converts seconds into a frame index
func FrameAt(seconds, fps float64) int {
	return int(math.Round(seconds * fps))
}

// FrameCount is the number of frames in a video of the given duration
func FrameCount(duration, fps float64) int {
	n := FrameAt(duration, fps)
	if n < 0 {
		return 0
	}
	return n
}

// Progress returns the linear progress of frame inside w.
// The second value is false when the frame is outside [Start, End] or the
// window is empty or reversed (End <= Start), in which case nothing should
// be drawn.
func (w Window) Progress(frame int) (float64, bool) {
	if w.End <= w.Start {
		return 0, false
	}
	if frame < w.Start || frame > w.End {
		return 0, false
	}

	p := float64(frame-w.Start) / float64(w.End-w.Start)
	return clamp01(p), true
}

// EasedProgress is Progress passed through Ease
func (w Window) EasedProgress(frame int) (float64, bool) {
	p, ok := w.Progress(frame)
	if !ok {
		return 0, false
	}
	return Ease(p), true
}

// Ease applies the cosine ease-in-out: slow start, fast middle, slow end.
func Ease(t float64) float64 {
	t = clamp01(t)
	switch t {
	case 0:
		return 0
	case 1:
		return 1
	}
	return 0.5 - 0.5*math.Cos(t*math.Pi)
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
