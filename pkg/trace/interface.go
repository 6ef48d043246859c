// Package trace exports per-run timing records for the aggregation
// engine. The file exporter is compiled in with the "tracing" build tag;
// the default build gets a zero-overhead no-op.
package trace

import (
	"context"
	"time"
)

// Exporter defines the interface for exporting run traces.
// Implementations must be safe for concurrent use.
type Exporter interface {
	// Export writes a run record to the configured destination.
	Export(ctx context.Context, record *RunRecord) error

	// Close flushes any buffered records and releases resources.
	Close() error
}

// RunRecord is one aggregation run's trace: overall timing, terminal
// status and per-stage spans. It carries identifiers and counters only,
// never graph content.
type RunRecord struct {
	// Timestamp is the run start time
	Timestamp time.Time `json:"timestamp"`

	// RunID uniquely identifies this run (for log correlation)
	RunID string `json:"runId"`

	// DurationMs is the total run duration in milliseconds
	DurationMs int64 `json:"durationMs"`

	// Status is "success", "partial" or "error"
	Status string `json:"status"`

	// Spans contains per-stage timing and status
	Spans []SpanRecord `json:"spans"`

	// ErrorType classifies the error when Status is not "success"
	// Values: parse, data, storage, canceled, unknown
	ErrorType string `json:"errorType,omitempty"`

	// Counters holds run-level counts (countries, years,
	// aggregatesWritten, triples)
	Counters map[string]int64 `json:"counters,omitempty"`
}

// SpanRecord represents a single stage within a run.
type SpanRecord struct {
	// Name is the stage name: discover, clear, aggregate, save
	Name string `json:"name"`

	// DurationMs is the stage duration in milliseconds
	DurationMs int64 `json:"durationMs"`

	// OK indicates success (true) or failure (false)
	OK bool `json:"ok"`

	// ErrorType classifies the error when OK is false
	ErrorType string `json:"errorType,omitempty"`

	// Counters provides stage-specific counts
	Counters map[string]int64 `json:"counters,omitempty"`
}

// FileExporterOption configures a FileExporter.
// This type is available in both tracing and non-tracing builds to
// maintain API compatibility.
type FileExporterOption func(interface{})
