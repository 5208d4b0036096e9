package renderer

import (
	"image"
	"math/rand"

	"github.com/K2017/sdfmarch/pkg/camera"
	"github.com/K2017/sdfmarch/pkg/scene"
)

// TileRenderer traces rays for a rectangular region of the frame against
// one scene, jittering sub-pixel offsets so successive passes refine
// antialiasing rather than sampling a BRDF integral.
type TileRenderer struct {
	scene         *scene.Scene
	width, height int
}

// NewTileRenderer creates a tile renderer for a width x height frame of sc.
func NewTileRenderer(sc *scene.Scene, width, height int) *TileRenderer {
	return &TileRenderer{scene: sc, width: width, height: height}
}

// RenderTileBounds takes samplesThisPass additional jittered samples per
// pixel within bounds and folds them into pixels, a shared accumulator grid
// in global image coordinates. Bounds never overlap between concurrent
// calls from different tiles, so writes within a tile's own rows and
// columns need no synchronization.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixels [][]PixelAccum, random *rand.Rand, samplesThisPass int) RenderStats {
	cam := tr.scene.GetActiveCamera()
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy()}

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			for s := 0; s < samplesThisPass; s++ {
				x := float64(i) + random.Float64()
				y := float64(j) + random.Float64()
				ray := camera.RayFromViewF(x, y, tr.width, tr.height, cam)
				color := tr.scene.Trace(ray)
				pixels[j][i].AddSample(color)
			}
			stats.TotalSamples += samplesThisPass
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return stats
}
