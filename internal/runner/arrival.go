package runner

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// arrivalController gates each dispatch. Wait blocks until the next slot in
// the schedule, or until the context is done.
type arrivalController interface {
	Wait(ctx context.Context) error
}

// pacedArrival releases dispatch n at startTime + (n-1)/rate. The limiter's
// burst is the whole-run request budget, so tokens accrued during a slow
// response are released back-to-back afterwards until the observed completion
// rate converges on the target again.
type pacedArrival struct {
	limiter *rate.Limiter
}

func newPacedArrival(opt Options) *pacedArrival {
	budget := opt.RatePerSecond * int(math.Ceil(opt.Duration.Seconds()))
	if budget < 1 {
		budget = 1
	}
	limiter := opt.LimiterFactory(opt.RatePerSecond, budget)
	// A fresh limiter starts with a full bucket, which would let the whole
	// budget fire at once. Drain all but one token so the schedule anchors
	// at the start time with an immediate first dispatch.
	limiter.AllowN(time.Now(), budget-1)
	return &pacedArrival{limiter: limiter}
}

func (p *pacedArrival) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// jitterArrival sleeps a uniform random delay between dispatches. Each
// parallel worker owns one, so workers pace independently of each other.
type jitterArrival struct {
	mu   sync.Mutex
	rnd  *rand.Rand
	next func() time.Duration
}

func newJitterArrival(seed int64, override func() time.Duration) *jitterArrival {
	j := &jitterArrival{rnd: rand.New(rand.NewSource(seed))}
	j.next = j.uniform
	if override != nil {
		j.next = override
	}
	return j
}

func (j *jitterArrival) uniform() time.Duration {
	j.mu.Lock()
	defer j.mu.Unlock()
	span := maxJitter - minJitter
	return minJitter + time.Duration(j.rnd.Int63n(int64(span)))
}

func (j *jitterArrival) Wait(ctx context.Context) error {
	delay := j.next()
	if delay <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
