package metrics

import "context"

// NoopCollector is a no-op implementation used when no collector is
// configured.
type NoopCollector struct{}

// NewNoopCollector creates a no-op collector.
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

// RecordRun does nothing.
func (n *NoopCollector) RecordRun(ctx context.Context, status string, durationMs int64) {}

// RecordCountry does nothing.
func (n *NoopCollector) RecordCountry(ctx context.Context, status string, durationMs int64) {}

// AddAggregatesWritten does nothing.
func (n *NoopCollector) AddAggregatesWritten(ctx context.Context, count int) {}

// AddSkippedMeasurements does nothing.
func (n *NoopCollector) AddSkippedMeasurements(ctx context.Context, reason string, count int) {}

// SetTripleCount does nothing.
func (n *NoopCollector) SetTripleCount(ctx context.Context, count int64) {}
