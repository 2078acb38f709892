// Package throughput implements the periodic rate reporting shared by the producer and consumers.
package throughput

import (
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-tweet-indexer/internal/adapter"
)

// Snapshot is one emitted window
type Snapshot struct {
	Elapsed    time.Duration
	Counts     map[string]int64
	Rates      map[string]float64
	QueueDepth int
}

// Reporter keeps windowed counters for one component and logs their rates once the
// window exceeds the interval. A Reporter belongs to a single goroutine; it is not
// safe for concurrent use, and it never blocks on anything but the logger.
type Reporter struct {
	component   string
	interval    time.Duration
	clock       adapter.Clock
	log         *zap.Logger
	names       []string
	counts      map[string]int64
	windowStart time.Time
	queueDepth  func() int
}

// NewReporter creates a reporter for the named counters
func NewReporter(component string, interval time.Duration, clock adapter.Clock, log *zap.Logger, counters ...string) *Reporter {
	counts := make(map[string]int64, len(counters))
	for _, name := range counters {
		counts[name] = 0
	}

	return &Reporter{
		component:   component,
		interval:    interval,
		clock:       clock,
		log:         log,
		names:       counters,
		counts:      counts,
		windowStart: clock.Now(),
	}
}

// WithQueueDepth includes the queue depth in every emitted window
func (r *Reporter) WithQueueDepth(fn func() int) *Reporter {
	r.queueDepth = fn
	return r
}

// Add increments a counter; unknown names are ignored
func (r *Reporter) Add(counter string, n int64) {
	if _, ok := r.counts[counter]; ok {
		r.counts[counter] += n
	}
}

// Inc increments a counter by one
func (r *Reporter) Inc(counter string) {
	r.Add(counter, 1)
}

// Observe emits and resets the window when more than the interval has elapsed.
// It returns the emitted snapshot, or nil when the window is still open.
func (r *Reporter) Observe() *Snapshot {
	now := r.clock.Now()
	elapsed := now.Sub(r.windowStart)
	if elapsed <= r.interval {
		return nil
	}

	snapshot := &Snapshot{
		Elapsed: elapsed,
		Counts:  make(map[string]int64, len(r.names)),
		Rates:   make(map[string]float64, len(r.names)),
	}

	fields := make([]zap.Field, 0, len(r.names)+3)
	fields = append(fields, zap.String("component", r.component))
	for _, name := range r.names {
		count := r.counts[name]
		rate := float64(count) / elapsed.Seconds()
		snapshot.Counts[name] = count
		snapshot.Rates[name] = rate
		fields = append(fields, zap.Float64("rate_"+name, rate))
		r.counts[name] = 0
	}
	fields = append(fields, zap.Float64("elapsed_seconds", elapsed.Seconds()))
	if r.queueDepth != nil {
		snapshot.QueueDepth = r.queueDepth()
		fields = append(fields, zap.Int("queue_depth", snapshot.QueueDepth))
	}

	r.log.Info("Throughput", fields...)
	r.windowStart = now

	return snapshot
}
