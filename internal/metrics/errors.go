package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
)

// FailureLabel returns the breakdown bucket for a failed outcome. Transport
// failures collapse into a few stable categories so the summary stays
// readable; HTTP failures are keyed by status code.
func FailureLabel(o Outcome) string {
	if o.Err == nil {
		return fmt.Sprintf("HTTP %d", o.StatusCode)
	}

	err := o.Err
	var dnsErr *net.DNSError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) || isNetTimeout(err):
		return "timeout"
	case errors.Is(err, syscall.ECONNREFUSED):
		return "connection refused"
	case errors.Is(err, syscall.ECONNRESET):
		return "connection reset"
	case errors.As(err, &dnsErr):
		return "dns failure"
	default:
		return "transport error"
	}
}

func isNetTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
