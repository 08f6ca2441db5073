package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"github.com/ivlev/beaverstudio/internal/animation"
	"github.com/ivlev/beaverstudio/internal/geom"
	"github.com/ivlev/beaverstudio/internal/renderer"
	"github.com/ivlev/beaverstudio/internal/system"
	"github.com/ivlev/beaverstudio/internal/video"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// ErrOutput wraps failures of the frame sink. A render stops at the first one;
// frames written before it stay where the sink put them.
var ErrOutput = errors.New("frame output failed")

// Instance is an animation placed on the canvas for a window of frames.
type Instance struct {
	Animation animation.Animation
	Placement geom.Vector
	Window    renderer.Window
}

// Video sequences animation instances into frames.
//
// Instances are added before rendering and are only read afterwards, so a
// render may use several workers. Add must not be called during Render.
type Video struct {
	Width      int
	Height     int
	Background geom.RGB
	FPS        float64
	Duration   float64

	instances []Instance
}

// New creates an empty video
func New(width, height int, background geom.RGB, fps, duration float64) *Video {
	return &Video{
		Width:      width,
		Height:     height,
		Background: background,
		FPS:        fps,
		Duration:   duration,
	}
}

// Add schedules anim between start and end seconds at placement.
// Times are converted to frames once, with round(seconds * fps). Windows
// outside the video, reversed or empty are accepted: an instance draws only
// on frames with start <= frame <= end and start != end, if any.
func (v *Video) Add(anim animation.Animation, placement geom.Vector, start, end float64) {
	v.instances = append(v.instances, Instance{
		Animation: anim,
		Placement: placement,
		Window:    renderer.WindowFromSeconds(start, end, v.FPS),
	})
}

// Instances returns the scheduled instances in drawing order
func (v *Video) Instances() []Instance {
	out := make([]Instance, len(v.instances))
	copy(out, v.instances)
	return out
}

// FrameCount is round(duration * fps)
func (v *Video) FrameCount() int {
	return renderer.FrameCount(v.Duration, v.FPS)
}

// Bounds is the frame rectangle
func (v *Video) Bounds() image.Rectangle {
	return image.Rect(0, 0, v.Width, v.Height)
}

// RenderFrame paints frame index into img: background first, then every
// active instance in the order it was added.
func (v *Video) RenderFrame(index int, img *image.RGBA) {
	draw.Draw(img, img.Bounds(), image.NewUniform(v.Background.RGBA()), image.Point{}, draw.Src)

	for _, inst := range v.instances {
		p, ok := inst.Window.EasedProgress(index)
		if !ok {
			continue
		}
		inst.Animation.Play(p).Draw(inst.Placement, img)
	}
}

// Frame renders frame index into a new image
func (v *Video) Frame(index int) *image.RGBA {
	img := image.NewRGBA(v.Bounds())
	v.RenderFrame(index, img)
	return img
}

// RenderOptions tunes Render
type RenderOptions struct {
	// Workers rendering frames in parallel, runtime.NumCPU() when 0
	Workers int
	// MaxInFlight bounds frames rendered but not yet written, 2*Workers when smaller than Workers
	MaxInFlight int
	// OnFrame is called after each frame is written, with a strictly increasing count
	OnFrame func(done, total int)
}

type frameResult struct {
	index int
	img   *image.RGBA
}

// Render paints every frame and hands it to sink in frame order.
// Frames are rendered by a pool of workers, each owning its frame buffer;
// finished frames wait in a reorder buffer until all earlier ones are written.
// The sink is not closed.
func (v *Video) Render(ctx context.Context, sink video.FrameSink, opts RenderOptions) error {
	total := v.FrameCount()
	if total == 0 {
		return nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > total {
		workers = total
	}
	inFlight := opts.MaxInFlight
	if inFlight < workers {
		inFlight = 2 * workers
	}

	log := Logger()
	log.Info("render started", "frames", total, "size", fmt.Sprintf("%dx%d", v.Width, v.Height), "workers", workers)
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(inFlight))
	jobs := make(chan int)
	results := make(chan frameResult, inFlight)
	rect := v.Bounds()

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < total; i++ {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			select {
			case jobs <- i:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := range jobs {
				img := system.GetImage(rect)
				v.RenderFrame(i, img)
				log.Debug("frame rendered", "index", i)
				select {
				case results <- frameResult{index: i, img: img}:
				case <-gctx.Done():
					system.PutImage(img)
					return gctx.Err()
				}
			}
			return nil
		})
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- g.Wait()
		close(results)
	}()

	var writeErr error
	pending := make(map[int]*image.RGBA)
	next := 0
	for res := range results {
		pending[res.index] = res.img
		for {
			img, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)

			if writeErr == nil {
				if err := sink.WriteFrame(ctx, next, img); err != nil {
					writeErr = fmt.Errorf("%w: frame %d: %w", ErrOutput, next, err)
					cancel()
				} else {
					log.Debug("frame written", "index", next)
					if opts.OnFrame != nil {
						opts.OnFrame(next+1, total)
					}
				}
			}

			system.PutImage(img)
			sem.Release(1)
			next++
		}
	}
	for _, img := range pending {
		system.PutImage(img)
	}

	err := <-waitErr
	if writeErr != nil {
		log.Warn("render aborted", "frame", next, "err", writeErr)
		return writeErr
	}
	if err != nil {
		log.Warn("render aborted", "err", err)
		return err
	}
	if next != total {
		return fmt.Errorf("render stopped after %d of %d frames", next, total)
	}

	log.Info("render finished", "frames", total, "elapsed", time.Since(start))
	return nil
}
