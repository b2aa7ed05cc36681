package metrics_test

import (
	"context"
	"errors"
	"net"
	"net/url"
	"syscall"
	"testing"

	"restload/internal/metrics"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestFailureLabelHTTP(t *testing.T) {
	got := metrics.FailureLabel(metrics.Outcome{StatusCode: 404})
	if got != "HTTP 404" {
		t.Fatalf("expected HTTP 404, got %q", got)
	}
}

func TestFailureLabelTransport(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"context deadline", context.DeadlineExceeded, "timeout"},
		{"net timeout", timeoutErr{}, "timeout"},
		{"wrapped net timeout", &url.Error{Op: "Get", URL: "http://x", Err: timeoutErr{}}, "timeout"},
		{"connection refused", syscall.ECONNREFUSED, "connection refused"},
		{"wrapped refused", &net.OpError{Op: "dial", Err: syscall.ECONNREFUSED}, "connection refused"},
		{"connection reset", syscall.ECONNRESET, "connection reset"},
		{"dns", &net.DNSError{Err: "no such host", Name: "api.local"}, "dns failure"},
		{"other", errors.New("tls handshake broke"), "transport error"},
	}
	for _, tc := range cases {
		got := metrics.FailureLabel(metrics.Outcome{Err: tc.err})
		if got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}
