package renderer

import (
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
)

// RowTask asks a worker to render one scanline
type RowTask struct {
	Row int
}

// RowResult contains a finished scanline in left-to-right order
type RowResult struct {
	Row        int
	Pixels     []core.Color // Sample-averaged linear colors
	WorkerID   int
	RenderTime time.Duration
}

// WorkerPool manages parallel scanline rendering.
// Workers only read the raytracer; every row buffer belongs to a single task.
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
}

// Worker handles individual row rendering tasks
type Worker struct {
	ID          int
	raytracer   *Raytracer
	taskQueue   chan RowTask
	resultQueue chan RowResult
	stopChan    chan struct{}
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// Queues are sized for every row of the image so neither side ever blocks.
func NewWorkerPool(raytracer *Raytracer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	rows := raytracer.camera.Height()
	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, rows),
		resultQueue: make(chan RowResult, rows),
		numWorkers:  numWorkers,
		stopChan:    make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		worker := &Worker{
			ID:          i,
			raytracer:   raytracer,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
			stopChan:    wp.stopChan,
		}
		wp.workers = append(wp.workers, worker)
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop gracefully shuts down all workers after the queued tasks are done
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// Abort makes workers skip every task that has not started yet.
// Stop must still be called to release the pool.
func (wp *WorkerPool) Abort() {
	wp.stopOnce.Do(func() { close(wp.stopChan) })
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed row
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		select {
		case <-w.stopChan:
			continue
		default:
		}

		start := time.Now()
		pixels := w.raytracer.RenderRow(task.Row)

		w.resultQueue <- RowResult{
			Row:        task.Row,
			Pixels:     pixels,
			WorkerID:   w.ID,
			RenderTime: time.Since(start),
		}
	}
}
