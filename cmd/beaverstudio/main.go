package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/ivlev/beaverstudio/internal/config"
	"github.com/ivlev/beaverstudio/internal/engine"
	"github.com/ivlev/beaverstudio/internal/scene"
	"github.com/ivlev/beaverstudio/internal/system"
	"github.com/ivlev/beaverstudio/internal/video"
)

var buildVersion = "dev"

const scenesDir = "input/scenes"

func main() {
	scenePtr := flag.String("scene", "", "Scene file (default: the newest file in input/scenes/)")
	initPtr := flag.Bool("init", false, "Write an example scene to input/scenes/ and exit")
	framesPtr := flag.String("frames", "", "Directory for frame images (default: frames)")
	formatPtr := flag.String("format", "", "Frame image format: "+strings.Join(video.Formats(), ", "))
	noFramesPtr := flag.Bool("no-frames", false, "Do not write frame images")
	outputPtr := flag.String("output", "", "Encode an mp4 with ffmpeg; \"auto\" names it after the scene in output/")
	widthPtr := flag.Int("width", 0, "Width")
	heightPtr := flag.Int("height", 0, "Height")
	fpsPtr := flag.Float64("fps", 0, "FPS")
	durationPtr := flag.Float64("duration", 0, "Video duration in seconds")
	presetPtr := flag.String("preset", "", "Format preset: 16:9, 9:16 (Shorts/TikTok), 4:5 (Instagram)")
	stepPtr := flag.Float64("step", 0, "Curve sampling step in (0, 1]")
	workersPtr := flag.Int("workers", 0, "Render workers (0 = one per CPU)")
	qualityPtr := flag.Int("quality", 0, "Video quality (0 = auto, x264: CRF 1-51, VideoToolbox: bitrate = Q*100kbit/s)")
	statsPtr := flag.Bool("stats", false, "Print a performance report and append it to benchmark.log")
	verbosePtr := flag.Bool("v", false, "Log render progress to stderr")

	flag.Parse()

	if *verbosePtr {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *initPtr {
		if err := os.MkdirAll(scenesDir, 0755); err != nil {
			log.Fatalf("[-] Error: %v", err)
		}
		path := scene.GenerateScenePath(scenesDir)
		if err := scene.WriteScene(scene.Example(), path); err != nil {
			log.Fatalf("[-] Could not write the example scene: %v", err)
		}
		fmt.Printf("[+++] Success! Example scene saved: %s\n", path)
		return
	}

	scenePath := *scenePtr
	if scenePath == "" {
		latest, err := system.FindLatestScene(scenesDir)
		if err != nil {
			log.Fatalf("[-] Error: %v. Put a scene into %s/ or run with -init", err, scenesDir)
		}
		scenePath = latest
		fmt.Printf("[*] Selected scene: %s\n", scenePath)
	}

	sc, err := scene.ReadScene(scenePath)
	if err != nil {
		log.Fatalf("[-] Scene error: %v", err)
	}

	cfg := config.Default()
	cfg.Merge(sc.Video)
	cfg.Merge(config.Config{
		FPS:          *fpsPtr,
		Duration:     *durationPtr,
		Preset:       *presetPtr,
		SamplingStep: *stepPtr,
		Workers:      *workersPtr,
		FramesDir:    *framesPtr,
		FrameFormat:  *formatPtr,
		Quality:      *qualityPtr,
		ShowStats:    *statsPtr,
	})
	if err := cfg.ApplyPreset(); err != nil {
		log.Fatalf("[-] Error: %v", err)
	}
	// explicit sizes win over the preset
	cfg.Merge(config.Config{Width: *widthPtr, Height: *heightPtr})

	if *noFramesPtr {
		cfg.FramesDir = ""
	}
	if *outputPtr != "" {
		cfg.OutputVideo = *outputPtr
	}
	if cfg.OutputVideo == "auto" {
		cfg.OutputVideo = outputPath(scenePath)
	}
	cfg.BuildVersion = buildVersion

	if cfg.OutputVideo != "" {
		system.InitResourceLimits()
		if err := os.MkdirAll(filepath.Dir(cfg.OutputVideo), 0755); err != nil {
			log.Fatalf("[-] Error: %v", err)
		}
		if cfg.VideoEncoder == "" {
			cfg.VideoEncoder = system.GetBestH264Encoder()
			if cfg.VideoEncoder != "libx264" {
				fmt.Printf("[*] Hardware acceleration detected: %s\n", cfg.VideoEncoder)
			}
		}
		if cfg.Quality == 0 {
			cfg.Quality = video.DefaultQuality(cfg.VideoEncoder)
		}
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("[-] Invalid settings:\n%v", err)
	}

	v, err := scene.Build(sc, cfg)
	if err != nil {
		log.Fatalf("[-] Scene error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, err := video.OpenSinks(ctx, &cfg, v.FrameCount())
	if err != nil {
		log.Fatalf("[-] Output error: %v", err)
	}

	project := engine.NewVideoProject(&cfg, v, sink)
	project.Scene = scenePath
	if err := project.Run(ctx); err != nil {
		log.Fatalf("[-] Project error: %v", err)
	}

	if cfg.FramesDir != "" {
		fmt.Printf("[+++] Success! Frames: %s\n", cfg.FramesDir)
	}
	if cfg.OutputVideo != "" {
		fmt.Printf("[+++] Success! Result: %s\n", cfg.OutputVideo)
	}
}

func outputPath(scenePath string) string {
	baseName := filepath.Base(scenePath)
	nameOnly := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
}
