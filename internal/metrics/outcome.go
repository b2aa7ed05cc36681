package metrics

import "time"

// StatusTransportFailure is the sentinel status recorded when a dispatch
// never produced an HTTP response (timeout, connection refused, DNS failure).
const StatusTransportFailure = 0

// Outcome is the recorded result of one dispatched request.
type Outcome struct {
	Time       time.Time
	Seq        uint64
	Method     string
	URL        string
	Latency    time.Duration
	StatusCode int
	Err        error
}

// Success reports whether the outcome counts toward the succeeded tally.
// Only completed responses with a 2xx status qualify.
func (o Outcome) Success() bool {
	return o.Err == nil && o.StatusCode >= 200 && o.StatusCode < 300
}

// TransportFailure reports whether the dispatch failed below the HTTP layer.
func (o Outcome) TransportFailure() bool {
	return o.Err != nil
}
