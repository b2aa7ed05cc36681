package runner

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Result captures execution totals. The authoritative outcome counts live in
// the metrics collector; these exist for the runner's own accounting.
type Result struct {
	Total    int64
	Errors   int64
	Duration time.Duration
}

// Runner drives a bounded or time-boxed stream of dispatches in one of two
// scheduling modes. Dispatch failures are tallied, never fatal; the run ends
// only at the duration bound or on context cancellation.
type Runner struct {
	opt Options
}

func New(opt Options) *Runner {
	opt.normalize()
	return &Runner{opt: opt}
}

func (r *Runner) Run(ctx context.Context) Result {
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if r.opt.Duration > 0 {
		deadlineCtx, deadlineCancel := context.WithTimeout(ctx, r.opt.Duration)
		ctx = deadlineCtx
		defer deadlineCancel()
	}

	var total, errs int64
	switch r.opt.Mode {
	case ModeParallel:
		r.runParallel(ctx, &total, &errs)
	default:
		r.runPaced(ctx, &total, &errs)
	}

	return Result{
		Total:    atomic.LoadInt64(&total),
		Errors:   atomic.LoadInt64(&errs),
		Duration: time.Since(start),
	}
}

// runPaced is the single-loop mode: one dispatch at a time, each gated by the
// paced arrival controller so the completion rate tracks the target.
func (r *Runner) runPaced(ctx context.Context, total, errs *int64) {
	arrival := newPacedArrival(r.opt)
	for {
		if ctx.Err() != nil {
			return
		}
		// Wait returns an error once the remaining schedule cannot fit
		// inside the run deadline; that is the normal stopping condition.
		if err := arrival.Wait(ctx); err != nil {
			return
		}
		r.dispatch(ctx, total, errs)
	}
}

// runParallel spawns independent workers that dispatch with their own random
// inter-request delay. There is no shared rate target; the workers share only
// the requester's aggregation sinks.
func (r *Runner) runParallel(ctx context.Context, total, errs *int64) {
	seed := time.Now().UnixNano()

	var wg sync.WaitGroup
	wg.Add(r.opt.Workers)
	for i := 0; i < r.opt.Workers; i++ {
		arrival := newJitterArrival(seed+int64(i), r.opt.JitterFunc)
		go func() {
			defer wg.Done()
			for {
				if ctx.Err() != nil {
					return
				}
				r.dispatch(ctx, total, errs)
				if err := arrival.Wait(ctx); err != nil {
					return
				}
			}
		}()
	}
	wg.Wait()
}

func (r *Runner) dispatch(ctx context.Context, total, errs *int64) {
	err := r.opt.Requester.Do(ctx)
	if ctx.Err() != nil && err != nil {
		// Dispatch aborted by cancellation; the requester recorded nothing,
		// so this attempt does not count.
		return
	}
	atomic.AddInt64(total, 1)
	if err != nil {
		atomic.AddInt64(errs, 1)
	}
}
