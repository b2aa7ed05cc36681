package output

import (
	"fmt"
	"io"
	"sort"
	"time"

	"restload/internal/metrics"
)

// PrintSummary writes the aggregate block shown after every run, complete or
// interrupted.
func PrintSummary(w io.Writer, runID string, stats metrics.Stats, resultsPath string) {
	fmt.Fprintln(w)
	_, _ = headerColor.Fprintln(w, "=== Test Summary ===")
	fmt.Fprintf(w, "Run ID:                %s\n", runID)
	fmt.Fprintf(w, "Total requests:        %d\n", stats.Total)
	fmt.Fprintf(w, "Successful requests:   %d\n", stats.Succeeded)
	fmt.Fprintf(w, "Failed requests:       %d\n", stats.Failed)
	fmt.Fprintf(w, "Error rate:            %.2f%%\n", stats.ErrorRate)
	fmt.Fprintf(w, "Average response time: %.3f seconds\n", stats.MeanLatency.Seconds())
	fmt.Fprintf(w, "Latency p50/p90/p99:   %s / %s / %s\n", stats.P50Latency, stats.P90Latency, stats.P99Latency)
	fmt.Fprintf(w, "Achieved rate:         %.2f req/s over %s\n", stats.RequestsPerSec, stats.Duration.Round(time.Millisecond))

	if len(stats.Errors) > 0 {
		fmt.Fprintln(w, "\nFailure breakdown:")
		for _, label := range sortedErrorLabels(stats.Errors) {
			fmt.Fprintf(w, "  %-20s %d\n", label, stats.Errors[label])
		}
	}

	if resultsPath != "" {
		fmt.Fprintf(w, "\nResults saved to: %s\n", resultsPath)
	}
}

func sortedErrorLabels(errs map[string]int64) []string {
	labels := make([]string, 0, len(errs))
	for label := range errs {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if errs[labels[i]] != errs[labels[j]] {
			return errs[labels[i]] > errs[labels[j]]
		}
		return labels[i] < labels[j]
	})
	return labels
}
