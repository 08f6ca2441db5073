package scene

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ivlev/beaverstudio/internal/config"
)

// GenerateScenePath creates a timestamped scene filename inside dir
func GenerateScenePath(dir string) string {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("scene_%s.yaml", timestamp))
}

// Example is a starter scene: a grid, a square traced in and morphed into
// a diamond, and a circle shown for the whole video.
func Example() *Scene {
	return &Scene{
		Version: "1.0",
		Video: config.Config{
			Width:      640,
			Height:     360,
			Background: []int{16, 16, 24},
			FPS:        30,
			Duration:   4,
		},
		Shapes: []ShapeSpec{
			{
				Name: "grid",
				Axes: &AxesSpec{Spacing: 40, X: []int{7, 7}, Y: []int{4, 4}},
			},
			{
				Name:      "square",
				Color:     []int{255, 200, 0},
				Thickness: 4,
				Rect:      &RectSpec{Width: 120, Height: 120},
			},
			{
				Name:      "diamond",
				Color:     []int{0, 200, 255},
				Thickness: 4,
				Polygon:   [][]float64{{0, 90}, {-90, 0}, {0, -90}, {90, 0}},
			},
			{
				Name:      "ring",
				Color:     []int{255, 80, 80},
				Thickness: 2,
				Origin:    []float64{200, 0},
				Circle:    &CircleSpec{Radius: 50},
			},
		},
		Animations: []AnimationSpec{
			{Kind: KindDisplay, Shape: "grid", Start: 0, End: 4},
			{Kind: KindTrace, Shape: "square", Start: 0, End: 1.5},
			{Kind: KindInterpolate, Shape: "square", To: "diamond", Start: 1.5, End: 3},
			{Kind: KindDisplay, Shape: "diamond", Start: 3, End: 4},
			{Kind: KindTrace, Shape: "ring", Placement: []float64{0, 0}, Start: 0.5, End: 3.5},
		},
	}
}
