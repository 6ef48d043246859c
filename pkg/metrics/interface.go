package metrics

import "context"

// Collector is the interface for metrics collection.
// Implementations include the Prometheus-backed collector and the no-op
// collector used when no collector is configured.
type Collector interface {
	RecordRun(ctx context.Context, status string, durationMs int64)
	RecordCountry(ctx context.Context, status string, durationMs int64)
	AddAggregatesWritten(ctx context.Context, n int)
	AddSkippedMeasurements(ctx context.Context, reason string, n int)
	SetTripleCount(ctx context.Context, count int64)
}
