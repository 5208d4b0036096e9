package renderer

import (
	"runtime"
	"sync"

	"github.com/K2017/sdfmarch/pkg/scene"
)

// TileTask represents one tile's work for a single progressive pass.
type TileTask struct {
	Tile            *Tile
	SamplesThisPass int
	TaskID          int          // Echoed in TileResult; results arrive in completion order
	Pixels          [][]PixelAccum // Shared accumulator grid to write into
}

// TileResult carries the outcome of rendering one TileTask.
type TileResult struct {
	TaskID int
	Stats  RenderStats
	Error  error
}

// WorkerPool drains a channel of TileTasks across a fixed number of
// goroutines, each owning its own TileRenderer.
type WorkerPool struct {
	taskQueue   chan TileTask
	resultQueue chan TileResult
	workers     []*poolWorker
	numWorkers  int
	wg          sync.WaitGroup
}

type poolWorker struct {
	id          int
	renderer    *TileRenderer
	taskQueue   chan TileTask
	resultQueue chan TileResult
}

// NewWorkerPool creates a pool of numWorkers workers (runtime.NumCPU() if
// numWorkers <= 0), each rendering width x height tiles of sc.
func NewWorkerPool(sc *scene.Scene, width, height, tileSize, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	tilesX := (width + tileSize - 1) / tileSize
	tilesY := (height + tileSize - 1) / tileSize
	maxTiles := tilesX * tilesY

	wp := &WorkerPool{
		taskQueue:   make(chan TileTask, maxTiles),
		resultQueue: make(chan TileResult, maxTiles),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &poolWorker{
			id:          i,
			renderer:    NewTileRenderer(sc, width, height),
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start launches all workers.
func (wp *WorkerPool) Start() {
	for _, w := range wp.workers {
		wp.wg.Add(1)
		go w.run(&wp.wg)
	}
}

// Stop closes the task queue, waits for every worker to drain it, then
// closes the result queue.
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask enqueues a tile task.
func (wp *WorkerPool) SubmitTask(task TileTask) {
	wp.taskQueue <- task
}

// GetResult blocks for the next completed tile result. ok is false once
// the result queue has been closed and drained.
func (wp *WorkerPool) GetResult() (TileResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers reports the pool's worker count.
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

func (w *poolWorker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		// Each tile owns a disjoint pixel range, so concurrent workers
		// writing into the shared Pixels grid need no locking.
		stats := w.renderer.RenderTileBounds(task.Tile.Bounds, task.Pixels, task.Tile.Random, task.SamplesThisPass)
		w.resultQueue <- TileResult{TaskID: task.TaskID, Stats: stats}
	}
}
