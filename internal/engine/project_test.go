package engine

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivlev/beaverstudio/internal/animation"
	"github.com/ivlev/beaverstudio/internal/config"
	"github.com/ivlev/beaverstudio/internal/geom"
)

func TestProjectRun(t *testing.T) {
	cfg := config.Default()
	cfg.Workers = 2

	v := New(32, 18, black, 10, 0.5)
	v.Add(animation.NewDisplay(lineShape(t, geom.NewVector(-8, 0), geom.NewVector(8, 0))), geom.Zero(), 0, 0.5)

	sink := newMemorySink()
	var done []int
	p := NewVideoProject(&cfg, v, sink)
	p.Progress = func(n, total int) { done = append(done, n) }

	if err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.frames) != 5 {
		t.Errorf("expected 5 frames, got %d", len(sink.frames))
	}
	if len(done) != 5 || done[4] != 5 {
		t.Errorf("progress %v", done)
	}
	if !sink.closed {
		t.Error("sink was not closed")
	}
}

func TestProjectRunNoFrames(t *testing.T) {
	cfg := config.Default()
	sink := newMemorySink()
	p := NewVideoProject(&cfg, New(8, 8, black, 30, 0.01), sink)

	if err := p.Run(context.Background()); err == nil {
		t.Error("expected an error for a video without frames")
	}
	if !sink.closed {
		t.Error("sink was not closed")
	}
}

type failingCloser struct{ *memorySink }

func (failingCloser) Close() error { return errors.New("ffmpeg exited with status 1") }

func TestProjectRunCloseError(t *testing.T) {
	cfg := config.Default()
	p := NewVideoProject(&cfg, New(8, 8, black, 10, 0.2), failingCloser{newMemorySink()})
	p.Progress = func(int, int) {}

	if err := p.Run(context.Background()); !errors.Is(err, ErrOutput) {
		t.Errorf("expected ErrOutput, got %v", err)
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })

	v := New(8, 8, black, 10, 0.3)
	if err := v.Render(context.Background(), newMemorySink(), RenderOptions{Workers: 1}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"render started", "frame written", "render finished"} {
		if !strings.Contains(out, want) {
			t.Errorf("log is missing %q:\n%s", want, out)
		}
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("nil logger should be silent")
	}
}

func TestAppendLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), BenchmarkLog)
	for _, line := range []string{"first\n", "second\n"} {
		if err := appendLine(path, line); err != nil {
			t.Fatalf("appendLine: %v", err)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "first\nsecond\n" {
		t.Errorf("log content %q", got)
	}

	missing := filepath.Join(t.TempDir(), "missing", BenchmarkLog)
	if err := appendLine(missing, "x\n"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected fs.ErrNotExist, got %v", err)
	}
}
