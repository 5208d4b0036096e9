package renderer

import "github.com/K2017/sdfmarch/pkg/core"

// RenderStats summarizes one completed pass over a tile or the whole frame.
type RenderStats struct {
	TotalPixels    int     // Number of pixels covered
	TotalSamples   int     // Sum of samples taken across those pixels
	AverageSamples float64 // TotalSamples / TotalPixels
	TilesDone      int     // Tiles completed so far this pass
	TotalTiles     int     // Tiles in the frame
}

// PixelAccum accumulates jittered antialiasing samples for a single pixel
// across progressive passes. Unlike the teacher's PixelStats, it carries no
// luminance/variance bookkeeping: there is no Monte Carlo path integral to
// converge here, so passes add a fixed number of AA samples rather than
// sampling adaptively until variance drops.
type PixelAccum struct {
	ColorAccum  core.Vec3
	SampleCount int
}

// AddSample folds one more jittered sample into the running average.
func (pa *PixelAccum) AddSample(color core.Vec3) {
	pa.ColorAccum = pa.ColorAccum.Add(color)
	pa.SampleCount++
}

// GetColor returns the current average color for this pixel.
func (pa *PixelAccum) GetColor() core.Vec3 {
	if pa.SampleCount == 0 {
		return core.Vec3{}
	}
	return pa.ColorAccum.Multiply(1.0 / float64(pa.SampleCount))
}

// NewPixelGrid allocates a width x height grid of accumulators in image
// (row-major, [y][x]) order.
func NewPixelGrid(width, height int) [][]PixelAccum {
	grid := make([][]PixelAccum, height)
	for y := range grid {
		grid[y] = make([]PixelAccum, width)
	}
	return grid
}
