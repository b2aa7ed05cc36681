// Package resultlog persists one CSV row per dispatched request.
package resultlog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"restload/internal/metrics"
)

// Header matches the tabular format consumers already parse; the column set
// is part of the tool's contract.
var Header = []string{"timestamp", "method", "url", "response_time_seconds", "http_status_code"}

// Writer appends outcomes to a CSV file as they complete, flushing each row
// so an interrupted run still leaves a usable partial file. Safe for
// concurrent workers.
type Writer struct {
	mu   sync.Mutex
	file *os.File
	csv  *csv.Writer
	lock *flock.Flock
	path string
	rows int64
}

// Open creates (or truncates) the results file, takes a non-blocking
// advisory lock so concurrent runs cannot interleave rows, and writes the
// header. Any failure here is fatal to the run: no requests may be issued
// without a writable log.
func Open(path string) (*Writer, error) {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock results file %s: %w", path, err)
	}
	if !locked {
		return nil, fmt.Errorf("results file %s is in use by another run", path)
	}

	file, err := os.Create(path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open results file: %w", err)
	}

	w := &Writer{
		file: file,
		csv:  csv.NewWriter(file),
		lock: lock,
		path: path,
	}
	if err := w.csv.Write(Header); err != nil {
		w.closeQuietly()
		return nil, fmt.Errorf("write results header: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		w.closeQuietly()
		return nil, fmt.Errorf("write results header: %w", err)
	}
	return w, nil
}

// Append writes one outcome row and flushes it. Transport failures carry the
// sentinel status code 0.
func (w *Writer) Append(o metrics.Outcome) error {
	record := []string{
		o.Time.Format(time.RFC3339Nano),
		o.Method,
		o.URL,
		strconv.FormatFloat(o.Latency.Seconds(), 'f', 6, 64),
		strconv.Itoa(o.StatusCode),
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.csv.Write(record); err != nil {
		return fmt.Errorf("append result row: %w", err)
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fmt.Errorf("append result row: %w", err)
	}
	w.rows++
	return nil
}

// Rows returns the number of data rows written so far (excluding the header).
func (w *Writer) Rows() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rows
}

// Path returns the location of the results file.
func (w *Writer) Path() string {
	return w.path
}

// Close flushes, releases the advisory lock, and removes the lock file.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.csv.Flush()
	flushErr := w.csv.Error()
	closeErr := w.file.Close()
	_ = w.lock.Unlock()
	_ = os.Remove(w.lock.Path())

	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

func (w *Writer) closeQuietly() {
	_ = w.file.Close()
	_ = w.lock.Unlock()
	_ = os.Remove(w.lock.Path())
}
