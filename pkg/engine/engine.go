// Package engine orchestrates aggregation runs: it discovers the
// countries and years present in a store, fans per-country work out
// across a bounded pool of workers, and reports per-unit outcomes.
package engine

import (
	"fmt"
	"log/slog"

	"tradegraph/pkg/metrics"
	"tradegraph/pkg/trace"
)

// DefaultWorkers is the worker pool size when none is configured.
const DefaultWorkers = 4

// Config holds configuration for the aggregation engine.
type Config struct {
	// Workers is the bounded worker pool size. Zero means
	// DefaultWorkers; negative is invalid.
	Workers int

	// Logger receives run progress. Nil disables logging.
	Logger *slog.Logger

	// Metrics receives run counters. Nil means no-op.
	Metrics metrics.Collector

	// Trace receives one run record per Run call. Nil disables
	// trace export.
	Trace trace.Exporter

	// ClearExisting removes all prior TradeAggregate nodes before
	// computing, so a run's output reflects only its input
	// measurements. With it disabled, re-runs accumulate on top of
	// whatever aggregates the store already holds (triples are
	// set-idempotent, but stale values from earlier inputs survive).
	ClearExisting bool
}

// NewConfig returns a Config with defaults applied: DefaultWorkers
// workers and ClearExisting enabled.
func NewConfig() Config {
	return Config{
		Workers:       DefaultWorkers,
		ClearExisting: true,
	}
}

// Engine runs trade aggregation over a triple store.
type Engine struct {
	workers int
	clear   bool
	log     *slog.Logger
	metrics metrics.Collector
	trace   trace.Exporter
}

// New creates an engine from the given config.
func New(cfg Config) (*Engine, error) {
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("invalid worker count %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewNoopCollector()
	}

	return &Engine{
		workers: cfg.Workers,
		clear:   cfg.ClearExisting,
		log:     cfg.Logger,
		metrics: cfg.Metrics,
		trace:   cfg.Trace,
	}, nil
}
