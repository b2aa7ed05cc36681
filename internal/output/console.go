// Package output renders the per-dispatch console stream and the final
// summary block.
package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"restload/internal/metrics"
)

var (
	successColor = color.New(color.FgGreen)
	failureColor = color.New(color.FgRed)
	headerColor  = color.New(color.FgYellow)
)

// Console writes one line per dispatched request. Lines from parallel
// workers are serialized so they never interleave mid-line.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = io.Discard
	}
	return &Console{w: w}
}

// Dispatch renders an outcome: timestamp, sequence number, method, target,
// status, and elapsed seconds. Successes are green, failures red; color is
// suppressed automatically on non-terminals and under NO_COLOR.
func (c *Console) Dispatch(o metrics.Outcome) {
	status := fmt.Sprintf("%3d", o.StatusCode)
	if o.TransportFailure() {
		status = "ERR"
	}

	line := fmt.Sprintf("[%s] #%04d %-6s %-40s Status: %s  Time: %.3fs",
		o.Time.Format("15:04:05"), o.Seq, o.Method, o.URL, status, o.Latency.Seconds())
	if o.TransportFailure() {
		line += fmt.Sprintf("  (%v)", o.Err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if o.Success() {
		_, _ = successColor.Fprintln(c.w, line)
	} else {
		_, _ = failureColor.Fprintln(c.w, line)
	}
}
