// Package runner executes a load run in one of two mutually exclusive
// scheduling modes.
//
// Paced mode drives a single dispatch loop whose observed completion rate
// converges on a target requests/second. Pacing follows the cumulative
// schedule deadline(n) = start + n/rate: after a slow response the loop
// fires back-to-back until it has caught up, rather than sleeping a fixed
// interval and drifting.
//
// Parallel mode spawns a fixed pool of workers, each dispatching with an
// independent uniform random delay between requests. Workers share the
// outcome sinks but not a rate target.
//
// In both modes a failed dispatch is an ordinary outcome: nothing a single
// request does can end the run. Only the duration bound or context
// cancellation stops scheduling, and cancellation does not wait for
// in-flight requests.
package runner
