package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"restload/internal/catalog"
	"restload/internal/config"
	"restload/internal/httpclient"
	"restload/internal/metrics"
	"restload/internal/output"
	"restload/internal/resultlog"
	"restload/internal/runner"
	"restload/internal/tracing"
)

const tracerShutdownTimeout = 5 * time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	runID := ulid.Make().String()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, err := tracing.Init(ctx, "restload")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), tracerShutdownTimeout)
		defer cancel()
		if err := tracer.Shutdown(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("tracer shutdown failed")
		}
	}()

	endpoints := catalog.Default()
	if len(cfg.Endpoints) > 0 {
		endpoints = make([]catalog.Endpoint, len(cfg.Endpoints))
		for i, ep := range cfg.Endpoints {
			endpoints[i] = catalog.Endpoint{Method: ep.Method, Path: ep.Path}
		}
	}
	selector, err := catalog.NewSelector(endpoints, time.Now().UnixNano())
	if err != nil {
		return err
	}

	// The results file must be open and locked before the first request; a
	// run that cannot persist outcomes must not start.
	results, err := resultlog.Open(cfg.Output)
	if err != nil {
		return err
	}
	defer func() {
		if err := results.Close(); err != nil {
			logger.Warn().Err(err).Msg("closing results file failed")
		}
	}()

	collector := metrics.NewCollector()
	requester := &loadRequester{
		base:      cfg.TargetURL,
		selector:  selector,
		client:    httpclient.New(config.RequestTimeout),
		collector: collector,
		console:   output.NewConsole(os.Stdout),
		results:   results,
		logger:    logger,
	}
	if tracer.Enabled() {
		requester.tracer = tracer.Tracer()
	}

	mode := runner.ModePaced
	if cfg.Parallel {
		mode = runner.ModeParallel
	}
	r := runner.New(runner.Options{
		Mode:          mode,
		RatePerSecond: cfg.Rate,
		Workers:       cfg.Workers,
		Duration:      cfg.Duration,
		Requester:     requester,
	})

	logEvent := logger.Info().
		Str("run_id", runID).
		Str("target", cfg.TargetURL).
		Dur("duration", cfg.Duration).
		Int("endpoints", selector.Size()).
		Str("mode", string(mode))
	if cfg.Parallel {
		logEvent = logEvent.Int("workers", cfg.Workers)
	} else {
		logEvent = logEvent.Int("rate", cfg.Rate)
	}
	logEvent.Msg("starting load test")

	result := r.Run(ctx)
	interrupted := ctx.Err() != nil

	// An interrupt still yields a full summary over whatever completed; the
	// exit code stays zero either way.
	stats := collector.Stats(result.Duration)
	output.PrintSummary(os.Stdout, runID, stats, results.Path())

	logger.Info().
		Str("run_id", runID).
		Bool("interrupted", interrupted).
		Int64("requests", stats.Total).
		Int64("failed", stats.Failed).
		Int64("rows", results.Rows()).
		Msg("load test finished")

	return nil
}
