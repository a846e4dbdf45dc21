// Package perf measures how long operations take and logs the result.
package perf

import (
	"sync"
	"time"

	"github.com/MikeBiancalana/dateprompt/internal/logger"
)

// Timer measures a single operation
type Timer struct {
	name      string
	start     time.Time
	threshold time.Duration
	attrs     []any
}

// Start begins timing name. attrs are added to the log records.
func Start(name string, threshold time.Duration, attrs ...any) *Timer {
	return &Timer{name: name, start: time.Now(), threshold: threshold, attrs: attrs}
}

// Stop logs the elapsed time at debug level, or as a warning when it
// exceeded the threshold, and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	args := append([]any{"duration_ms", elapsed.Milliseconds()}, t.attrs...)
	if t.threshold > 0 && elapsed > t.threshold {
		logger.Warn(t.name+" slow", append(args, "threshold_ms", t.threshold.Milliseconds())...)
	} else {
		logger.Debug(t.name, args...)
	}
	return elapsed
}

// Stats summarizes the durations seen by a Recorder
type Stats struct {
	Name  string
	Count int
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
}

// Mean is zero when nothing was recorded
func (s Stats) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

// Recorder aggregates durations of a repeated operation
type Recorder struct {
	mu    sync.Mutex
	stats Stats
}

func NewRecorder(name string) *Recorder {
	return &Recorder{stats: Stats{Name: name}}
}

func (r *Recorder) Record(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stats.Count == 0 || d < r.stats.Min {
		r.stats.Min = d
	}
	if d > r.stats.Max {
		r.stats.Max = d
	}
	r.stats.Count++
	r.stats.Total += d
}

func (r *Recorder) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

// Log writes the summary at info level
func (r *Recorder) Log() {
	s := r.Stats()
	logger.Info(s.Name,
		"count", s.Count,
		"total_ms", s.Total.Milliseconds(),
		"mean_ms", s.Mean().Milliseconds(),
		"min_ms", s.Min.Milliseconds(),
		"max_ms", s.Max.Milliseconds(),
	)
}
