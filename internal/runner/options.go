package runner

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Requester executes a single dispatch. Implementations record the outcome
// themselves and return an error only so the runner can tally failures; an
// error never stops the run.
type Requester interface {
	Do(ctx context.Context) error
}

// Mode selects the scheduling strategy for a run. The two modes are
// mutually exclusive.
type Mode string

const (
	// ModePaced runs a single dispatch loop whose completion rate converges
	// on RatePerSecond.
	ModePaced Mode = "paced"
	// ModeParallel runs Workers independent loops, each sleeping a uniform
	// random delay between dispatches.
	ModeParallel Mode = "parallel"
)

// Worker jitter bounds for parallel mode.
const (
	minJitter = 500 * time.Millisecond
	maxJitter = 2 * time.Second
)

// Options configure the Runner.
type Options struct {
	Mode          Mode
	RatePerSecond int           // paced mode target rate (requests/second)
	Workers       int           // parallel mode worker count
	Duration      time.Duration // overall run bound (required, > 0)
	Requester     Requester     // request executor (required)

	// LimiterFactory is an optional injection point for tests. The limiter
	// burst is the whole-run request budget so pacing can catch up fully
	// after slow responses.
	LimiterFactory func(rps, burst int) *rate.Limiter

	// JitterFunc overrides the parallel-mode inter-request delay; used by
	// tests to remove randomness.
	JitterFunc func() time.Duration
}

func (o *Options) normalize() {
	if o.Mode == "" {
		o.Mode = ModePaced
	}
	if o.RatePerSecond < 1 {
		o.RatePerSecond = 1
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps, burst int) *rate.Limiter {
			return rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}
