package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"restload/internal/catalog"
	"restload/internal/httpclient"
	"restload/internal/metrics"
	"restload/internal/output"
	"restload/internal/resultlog"
)

// statusError marks a completed response outside the 2xx range so the runner
// can tally it; the outcome itself is already recorded by then.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("http status %d", e.code)
}

// loadRequester performs one full dispatch: select an endpoint, issue the
// call, classify the result, and fan the outcome out to the collector, the
// console stream, and the results file.
type loadRequester struct {
	base      string
	selector  *catalog.Selector
	client    *http.Client
	collector *metrics.Collector
	console   *output.Console
	results   *resultlog.Writer
	tracer    trace.Tracer
	logger    zerolog.Logger
	seq       uint64
}

func (r *loadRequester) Do(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	ep := r.selector.Pick()

	var span trace.Span
	if r.tracer != nil {
		ctx, span = r.tracer.Start(ctx, "dispatch",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("http.request.method", ep.Method),
				attribute.String("url.path", ep.Path),
			))
		defer span.End()
	}

	start := time.Now()
	req, err := httpclient.NewRequest(ctx, r.base, ep)
	if err != nil {
		// Unresolvable target; counts as a transport-level failure.
		return r.record(span, metrics.Outcome{
			Time:       start,
			Method:     ep.Method,
			URL:        r.base + ep.Path,
			Latency:    time.Since(start),
			StatusCode: metrics.StatusTransportFailure,
			Err:        err,
		})
	}
	target := req.URL.String()

	resp, err := r.client.Do(req)
	latency := time.Since(start)
	if err != nil {
		if ctx.Err() != nil {
			// Aborted by interrupt mid-flight; not a completed dispatch, so
			// nothing is recorded.
			return ctx.Err()
		}
		return r.record(span, metrics.Outcome{
			Time:       start,
			Method:     ep.Method,
			URL:        target,
			Latency:    latency,
			StatusCode: metrics.StatusTransportFailure,
			Err:        err,
		})
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()

	return r.record(span, metrics.Outcome{
		Time:       start,
		Method:     ep.Method,
		URL:        target,
		Latency:    latency,
		StatusCode: resp.StatusCode,
	})
}

// record assigns the sequence number and delivers the outcome to every sink
// exactly once. The returned error feeds the runner's failure tally.
func (r *loadRequester) record(span trace.Span, o metrics.Outcome) error {
	o.Seq = atomic.AddUint64(&r.seq, 1)

	r.collector.Record(o)
	r.console.Dispatch(o)
	if r.results != nil {
		if err := r.results.Append(o); err != nil {
			// A row lost mid-run is worth a diagnostic but never stops the
			// test.
			r.logger.Warn().Err(err).Uint64("seq", o.Seq).Msg("failed to append result row")
		}
	}

	if span != nil {
		if o.StatusCode != metrics.StatusTransportFailure {
			span.SetAttributes(attribute.Int("http.response.status_code", o.StatusCode))
		}
		if !o.Success() {
			span.SetStatus(codes.Error, metrics.FailureLabel(o))
			if o.Err != nil {
				span.RecordError(o.Err)
			}
		}
	}

	switch {
	case o.Success():
		return nil
	case o.Err != nil:
		return o.Err
	default:
		return &statusError{code: o.StatusCode}
	}
}
