package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width           int           // Image width in pixels
	Height          int           // Image height in pixels
	TotalPixels     int           // Total number of pixels rendered
	SamplesPerPixel int           // Rays averaged per pixel
	TotalSamples    int           // Total number of camera rays traced
	MaxDepth        int           // Bounce budget per path
	Workers         []WorkerStats // Per-worker breakdown
	Duration        time.Duration // Wall time of the whole render
}

// WorkerStats tracks how much of the image a single worker rendered
type WorkerStats struct {
	ID         int           // Worker index
	Rows       int           // Scanlines rendered
	RenderTime time.Duration // Time spent tracing, excluding queue waits
}

// RowShare returns the fraction of scanlines rendered by the worker
func (s RenderStats) RowShare(w WorkerStats) float64 {
	if s.Height == 0 {
		return 0
	}
	return float64(w.Rows) / float64(s.Height)
}

// addRow records a finished scanline in the stats of the worker that rendered it
func (s *RenderStats) addRow(result RowResult) {
	s.Workers[result.WorkerID].Rows++
	s.Workers[result.WorkerID].RenderTime += result.RenderTime
	s.TotalPixels += len(result.Pixels)
	s.TotalSamples += len(result.Pixels) * s.SamplesPerPixel
}
