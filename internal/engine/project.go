package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ivlev/beaverstudio/internal/config"
	"github.com/ivlev/beaverstudio/internal/system"
	"github.com/ivlev/beaverstudio/internal/video"
)

// BenchmarkLog collects one line per run when stats are enabled
const BenchmarkLog = "benchmark.log"

// VideoProject ties a built video to its outputs
type VideoProject struct {
	Config *config.Config
	Video  *Video
	Sink   video.FrameSink
	Scene  string

	// Progress is called after each written frame; nil prints "[>] Frame i/n"
	Progress func(done, total int)
}

func NewVideoProject(cfg *config.Config, v *Video, sink video.FrameSink) *VideoProject {
	return &VideoProject{
		Config: cfg,
		Video:  v,
		Sink:   sink,
	}
}

// Run renders every frame into the sink and closes it.
func (p *VideoProject) Run(ctx context.Context) (err error) {
	startTime := time.Now()
	frames := p.Video.FrameCount()
	if frames == 0 {
		p.Sink.Close()
		return fmt.Errorf("video has no frames (duration %gs at %g fps)", p.Video.Duration, p.Video.FPS)
	}

	defer func() {
		if cerr := p.Sink.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrOutput, cerr)
		}
	}()

	workers := p.Config.Workers
	if workers <= 0 {
		workers = system.DefaultWorkers()
	}
	inFlight := p.Config.MaxInFlight
	if inFlight <= 0 {
		inFlight = system.MaxInFlight(workers, p.Video.Width, p.Video.Height)
	}

	fmt.Println("--- [PROJECT: BEAVER STUDIO] ---")
	if p.Scene != "" {
		fmt.Printf("[*] Scene: %s | Animations: %d\n", p.Scene, len(p.Video.Instances()))
	}
	fmt.Printf("[*] Resolution: %dx%d @ %g FPS | Frames: %d | Workers: %d\n", p.Video.Width, p.Video.Height, p.Video.FPS, frames, workers)
	fmt.Println("-----------------------------")

	progress := p.Progress
	if progress == nil {
		progress = func(done, total int) {
			fmt.Printf("[>] Frame %d/%d\n", done, total)
		}
	}

	renderStart := time.Now()
	err = p.Video.Render(ctx, p.Sink, RenderOptions{
		Workers:     workers,
		MaxInFlight: inFlight,
		OnFrame:     progress,
	})
	if err != nil {
		return err
	}
	renderTime := time.Since(renderStart)

	if p.Config.ShowStats {
		p.report(frames, workers, time.Since(startTime), renderTime)
	}
	return nil
}

func (p *VideoProject) report(frames, workers int, total, render time.Duration) {
	host := system.ReadHostInfo()
	fps := float64(frames) / total.Seconds()

	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"Workers: %d (CPUs: %d logical, %d physical)\n"+
			"Memory: %s RSS, %s of %s available\n"+
			"Frame buffers allocated: %d\n"+
			"----------------------------\n",
		p.Config.BuildVersion, total.Seconds(), render.Seconds(), fps,
		workers, host.LogicalCPUs, host.PhysicalCPUs,
		system.FormatBytes(host.ProcessRSS), system.FormatBytes(host.MemAvailable), system.FormatBytes(host.MemTotal),
		system.AllocatedFrames(),
	)
	fmt.Print(report)

	logEntry := fmt.Sprintf("[%s] Build: %s | Scene: %s | Frames: %d | Size: %dx%d | Total: %.2fs | Render: %.2fs | FPS: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		filepath.Base(p.Scene),
		frames,
		p.Video.Width, p.Video.Height,
		total.Seconds(),
		render.Seconds(),
		fps,
	)

	if err := appendLine(BenchmarkLog, logEntry); err != nil {
		fmt.Printf("[!] Could not write %s: %v\n", BenchmarkLog, err)
	}
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
