package renderer

import (
	"context"
	"fmt"
	"image"
	"math/rand"
	"time"

	"github.com/K2017/sdfmarch/pkg/core"
	"github.com/K2017/sdfmarch/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout.
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a logger that writes to stdout.
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// ProgressiveConfig configures a ProgressiveRenderer.
type ProgressiveConfig struct {
	TileSize           int // Tile edge length in pixels, 32 recommended
	InitialSamples     int // AA samples/pixel for the first, fast pass
	MaxSamplesPerPixel int // Total AA samples/pixel once all passes complete
	MaxPasses          int // Number of passes to spread InitialSamples..MaxSamplesPerPixel over
	NumWorkers         int // 0 = runtime.NumCPU()
}

// DefaultProgressiveConfig returns sensible defaults.
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:           32,
		InitialSamples:     1,
		MaxSamplesPerPixel: 8,
		MaxPasses:          4,
		NumWorkers:         0,
	}
}

// Tile is a rectangular region of the frame scheduled as one unit of work.
type Tile struct {
	ID              int
	Bounds          image.Rectangle
	PassesCompleted int
	Random          *rand.Rand // Deterministic per-tile jitter source
}

// NewTile creates a tile with a deterministic random source seeded from id.
func NewTile(id int, bounds image.Rectangle) *Tile {
	return &Tile{
		ID:     id,
		Bounds: bounds,
		Random: rand.New(rand.NewSource(int64(id) + 42)), // +42 to avoid seed 0
	}
}

// NewTileGrid partitions a width x height frame into non-overlapping tiles
// of at most tileSize x tileSize, left-to-right then top-to-bottom.
func NewTileGrid(width, height, tileSize int) []*Tile {
	var tiles []*Tile
	id := 0

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize

	for ty := 0; ty < tilesY; ty++ {
		for tx := 0; tx < tilesX; tx++ {
			x0, y0 := tx*tileSize, ty*tileSize
			x1, y1 := min(x0+tileSize, width), min(y0+tileSize, height)
			tiles = append(tiles, NewTile(id, image.Rect(x0, y0, x1, y1)))
			id++
		}
	}

	return tiles
}

// getSamplesForPass returns the total (cumulative) AA samples/pixel target
// for passNumber, spreading InitialSamples..MaxSamplesPerPixel evenly across
// MaxPasses, with the final pass always landing exactly on MaxSamplesPerPixel.
func (pr *ProgressiveRenderer) getSamplesForPass(passNumber int) int {
	if pr.config.MaxPasses == 1 {
		return pr.config.MaxSamplesPerPixel
	}
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	target := pr.config.InitialSamples + (passNumber-1)*samplesPerPass
	if passNumber == pr.config.MaxPasses {
		target = pr.config.MaxSamplesPerPixel
	}
	return target
}

// ProgressiveRenderer renders a frame as a sequence of increasing-AA
// passes, suitable for a live preview: each pass refines the same shared
// pixel grid rather than starting over.
type ProgressiveRenderer struct {
	scene         *scene.Scene
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile
	pixels        [][]PixelAccum
	workerPool    *WorkerPool
	logger        core.Logger
}

// NewProgressiveRenderer creates a progressive renderer for sc at width x
// height, using config and logging through logger.
func NewProgressiveRenderer(sc *scene.Scene, width, height int, config ProgressiveConfig, logger core.Logger) *ProgressiveRenderer {
	return &ProgressiveRenderer{
		scene:      sc,
		width:      width,
		height:     height,
		config:     config,
		tiles:      NewTileGrid(width, height, config.TileSize),
		pixels:     NewPixelGrid(width, height),
		workerPool: NewWorkerPool(sc, width, height, config.TileSize, config.NumWorkers),
		logger:     logger,
	}
}

// PassResult is what RenderProgressive sends for each completed pass.
type PassResult struct {
	PassNumber int
	Sink       *RGBASink
	Stats      RenderStats
	IsLast     bool
}

// RenderPass runs one progressive pass: every tile takes
// getSamplesForPass(passNumber) cumulative AA samples, then the whole frame
// is assembled into a sink.
func (pr *ProgressiveRenderer) RenderPass(passNumber int) (*RGBASink, RenderStats, error) {
	targetCumulative := pr.getSamplesForPass(passNumber)
	priorCumulative := 0
	if passNumber > 1 {
		priorCumulative = pr.getSamplesForPass(passNumber - 1)
	}
	samplesThisPass := targetCumulative - priorCumulative

	pr.logger.Printf("Pass %d: %d additional AA samples/pixel (using %d workers)...\n",
		passNumber, samplesThisPass, pr.workerPool.GetNumWorkers())

	if passNumber == 1 {
		pr.workerPool.Start()
	}

	for i, tile := range pr.tiles {
		pr.workerPool.SubmitTask(TileTask{
			Tile:            tile,
			SamplesThisPass: samplesThisPass,
			TaskID:          i,
			Pixels:          pr.pixels,
		})
	}

	for i := 0; i < len(pr.tiles); i++ {
		result, ok := pr.workerPool.GetResult()
		if !ok {
			return nil, RenderStats{}, fmt.Errorf("renderer: worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return nil, RenderStats{}, result.Error
		}
		pr.tiles[result.TaskID].PassesCompleted++
	}

	sink, stats := pr.assembleFrame()
	stats.TotalTiles = len(pr.tiles)
	stats.TilesDone = len(pr.tiles)
	return sink, stats, nil
}

// assembleFrame copies the current state of the shared pixel grid into a
// fresh sink and computes whole-frame statistics.
func (pr *ProgressiveRenderer) assembleFrame() (*RGBASink, RenderStats) {
	sink := NewRGBASink(pr.width, pr.height)
	stats := RenderStats{TotalPixels: pr.width * pr.height}

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixels[y][x]
			sink.SetPixel(x, y, pixel.GetColor())
			stats.TotalSamples += pixel.SampleCount
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	return sink, stats
}

// RenderProgressive drives every configured pass in the background,
// streaming a PassResult after each one completes. It stops early, before
// exhausting MaxPasses, if ctx is cancelled.
func (pr *ProgressiveRenderer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)
		defer pr.workerPool.Stop()

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			start := time.Now()
			sink, stats, err := pr.RenderPass(pass)
			if err != nil {
				errChan <- err
				return
			}
			pr.logger.Printf("Pass %d completed in %v (%d samples/pixel)\n", pass, time.Since(start), int(stats.AverageSamples))

			result := PassResult{
				PassNumber: pass,
				Sink:       sink,
				Stats:      stats,
				IsLast:     pass == pr.config.MaxPasses,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return passChan, errChan
}
