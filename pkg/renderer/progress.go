package renderer

// Progress receives one increment per completed pixel.
// Implementations must not write to the image sink.
type Progress interface {
	Increment(n int)
	Finish()
}

// ProgressFactory creates a progress indicator for a render of total pixels
type ProgressFactory func(total int) Progress

type noopProgress struct{}

func (noopProgress) Increment(int) {}
func (noopProgress) Finish()       {}

// NoopProgress discards all progress updates
func NoopProgress(int) Progress {
	return noopProgress{}
}
