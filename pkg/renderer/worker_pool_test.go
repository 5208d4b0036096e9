package renderer

import (
	"testing"
)

func TestWorkerPool_RendersAllTiles(t *testing.T) {
	sc := testScene()
	width, height, tileSize := 16, 16, 8

	pool := NewWorkerPool(sc, width, height, tileSize, 2)
	pool.Start()

	pixels := NewPixelGrid(width, height)
	tiles := NewTileGrid(width, height, tileSize)

	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, SamplesThisPass: 2, TaskID: i, Pixels: pixels})
	}

	got := 0
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			t.Fatalf("result queue closed early after %d results", got)
		}
		if result.Error != nil {
			t.Fatalf("tile %d returned error: %v", result.TaskID, result.Error)
		}
		got++
	}
	pool.Stop()

	if got != len(tiles) {
		t.Errorf("got %d results, want %d", got, len(tiles))
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if pixels[y][x].SampleCount != 2 {
				t.Fatalf("pixel (%d,%d) has %d samples, want 2", x, y, pixels[y][x].SampleCount)
			}
		}
	}
}

func TestNewWorkerPool_DefaultsToNumCPU(t *testing.T) {
	sc := testScene()
	pool := NewWorkerPool(sc, 8, 8, 8, 0)
	if pool.GetNumWorkers() <= 0 {
		t.Errorf("GetNumWorkers() = %d, want > 0", pool.GetNumWorkers())
	}
}

func TestNewWorkerPool_RespectsExplicitCount(t *testing.T) {
	sc := testScene()
	pool := NewWorkerPool(sc, 8, 8, 8, 3)
	if pool.GetNumWorkers() != 3 {
		t.Errorf("GetNumWorkers() = %d, want 3", pool.GetNumWorkers())
	}
}

