// Package metrics aggregates per-request outcomes into run statistics.
package metrics

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Collector records outcomes in a thread-safe manner. It is the single
// shared aggregate between workers; total == succeeded + failed holds under
// the collector lock at all times.
type Collector struct {
	mu           sync.Mutex
	hist         *hdrhistogram.Histogram
	succeeded    int64
	failed       int64
	minLatency   time.Duration
	maxLatency   time.Duration
	sumLatency   time.Duration
	errorsByType map[string]int64
}

// Stats is a read-only snapshot of aggregated run statistics.
type Stats struct {
	Total          int64
	Succeeded      int64
	Failed         int64
	ErrorRate      float64 // percent
	MinLatency     time.Duration
	MaxLatency     time.Duration
	MeanLatency    time.Duration
	P50Latency     time.Duration
	P90Latency     time.Duration
	P99Latency     time.Duration
	Duration       time.Duration
	RequestsPerSec float64
	Errors         map[string]int64
}

func NewCollector() *Collector {
	// Track latencies from 1µs up to 60s with 3 significant figures.
	return &Collector{
		hist:         hdrhistogram.New(1, 60_000_000, 3),
		errorsByType: make(map[string]int64),
	}
}

// Record folds one outcome into the aggregate. Failed and errored dispatches
// contribute to the latency mean and percentiles on equal terms with
// successes; the summary average spans every row of the result log.
func (c *Collector) Record(o Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if o.Latency > 0 {
		us := o.Latency.Microseconds()
		if us < c.hist.LowestTrackableValue() {
			us = c.hist.LowestTrackableValue()
		}
		if us > c.hist.HighestTrackableValue() {
			us = c.hist.HighestTrackableValue()
		}
		_ = c.hist.RecordValue(us)
	}
	c.sumLatency += o.Latency

	if c.minLatency == 0 || o.Latency < c.minLatency {
		c.minLatency = o.Latency
	}
	if o.Latency > c.maxLatency {
		c.maxLatency = o.Latency
	}

	if o.Success() {
		c.succeeded++
	} else {
		c.failed++
		c.errorsByType[FailureLabel(o)]++
	}
}

// Total returns the number of outcomes recorded so far.
func (c *Collector) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.succeeded + c.failed
}

// Stats computes the aggregate statistics for the given elapsed wall time.
func (c *Collector) Stats(elapsed time.Duration) Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := c.succeeded + c.failed
	stats := Stats{
		Total:      total,
		Succeeded:  c.succeeded,
		Failed:     c.failed,
		MinLatency: c.minLatency,
		MaxLatency: c.maxLatency,
		Duration:   elapsed,
	}

	if total > 0 {
		stats.MeanLatency = time.Duration(int64(c.sumLatency) / total)
		stats.ErrorRate = float64(c.failed) / float64(total) * 100
	}
	if c.hist.TotalCount() > 0 {
		stats.P50Latency = time.Duration(c.hist.ValueAtQuantile(50)) * time.Microsecond
		stats.P90Latency = time.Duration(c.hist.ValueAtQuantile(90)) * time.Microsecond
		stats.P99Latency = time.Duration(c.hist.ValueAtQuantile(99)) * time.Microsecond
	}
	if elapsed > 0 && total > 0 {
		stats.RequestsPerSec = float64(total) / elapsed.Seconds()
	}

	if len(c.errorsByType) > 0 {
		stats.Errors = make(map[string]int64, len(c.errorsByType))
		for k, v := range c.errorsByType {
			stats.Errors[k] = v
		}
	}

	return stats
}
