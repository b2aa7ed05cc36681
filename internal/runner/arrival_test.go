package runner

import (
	"context"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestPacedArrivalDrainsInitialBurst(t *testing.T) {
	var gotRPS, gotBurst int
	opt := Options{
		RatePerSecond: 10,
		Duration:      3 * time.Second,
		LimiterFactory: func(rps, burst int) *rate.Limiter {
			gotRPS, gotBurst = rps, burst
			return rate.NewLimiter(rate.Limit(rps), burst)
		},
	}
	opt.normalize()
	arrival := newPacedArrival(opt)

	if gotRPS != 10 || gotBurst != 30 {
		t.Fatalf("expected limiter(10, 30), got limiter(%d, %d)", gotRPS, gotBurst)
	}

	// Exactly one token survives the drain: the first Wait is immediate, the
	// second must block for roughly the pacing interval.
	ctx := context.Background()
	start := time.Now()
	if err := arrival.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if since := time.Since(start); since > 20*time.Millisecond {
		t.Fatalf("first dispatch should be immediate, waited %s", since)
	}
	if err := arrival.Wait(ctx); err != nil {
		t.Fatal(err)
	}
	if since := time.Since(start); since < 60*time.Millisecond {
		t.Fatalf("second dispatch arrived too early: %s", since)
	}
}

func TestPacedArrivalMinimumBudget(t *testing.T) {
	opt := Options{RatePerSecond: 1, Duration: 0}
	opt.normalize()
	// Zero duration still yields a budget of one so Wait cannot panic.
	arrival := newPacedArrival(opt)
	if err := arrival.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestJitterArrivalBounds(t *testing.T) {
	j := newJitterArrival(1, nil)
	for i := 0; i < 1000; i++ {
		d := j.uniform()
		if d < minJitter || d >= maxJitter {
			t.Fatalf("jitter %s outside [%s, %s)", d, minJitter, maxJitter)
		}
	}
}

func TestJitterArrivalHonorsCancellation(t *testing.T) {
	j := newJitterArrival(1, func() time.Duration { return time.Minute })
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- j.Wait(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected context error from canceled Wait")
		}
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after cancellation")
	}
}

func TestJitterArrivalOverride(t *testing.T) {
	j := newJitterArrival(1, func() time.Duration { return 5 * time.Millisecond })
	start := time.Now()
	if err := j.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if time.Since(start) > 200*time.Millisecond {
		t.Fatal("override delay not used")
	}
}
