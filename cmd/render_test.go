package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/log"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

func TestDisplayRenderStats(t *testing.T) {
	var buf bytes.Buffer
	log.SetSink(&buf)
	defer log.SetSink(os.Stderr)

	stats := renderer.RenderStats{
		Width:           8,
		Height:          4,
		SamplesPerPixel: 10,
		TotalSamples:    320,
		Workers: []renderer.WorkerStats{
			{ID: 0, Rows: 3, RenderTime: 30 * time.Millisecond},
			{ID: 1, Rows: 1, RenderTime: 10 * time.Millisecond},
		},
		Duration: 42 * time.Millisecond,
	}
	displayRenderStats(stats)

	out := buf.String()
	for _, want := range []string{"frame statistics (320 samples)", "Worker", "75.0 %", "25.0 %", "TOTAL", "42ms", "8x4"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in stats output:\n%s", want, out)
		}
	}
}

func TestProgressBarAdapter(t *testing.T) {
	p := newProgressBar(10).(*progressBar)
	for i := 0; i < 10; i++ {
		p.Increment(1)
	}
	p.Finish()

	if !p.bar.IsFinished() {
		t.Error("Expected the bar to be finished after every pixel was reported")
	}
}
