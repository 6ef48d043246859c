package metrics

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsCollector_RecordRun(t *testing.T) {
	collector := NewCollector()
	ctx := context.Background()

	collector.RecordRun(ctx, "success", 1000)
	collector.RecordRun(ctx, "success", 1500)
	collector.RecordRun(ctx, "error", 500)

	if got := testutil.CollectAndCount(collector.runsTotal); got != 2 {
		t.Errorf("expected 2 metric series (success, error), got %d", got)
	}

	success := testutil.ToFloat64(collector.runsTotal.WithLabelValues("success"))
	if success != 2 {
		t.Errorf("expected 2 successful runs, got %f", success)
	}

	failed := testutil.ToFloat64(collector.runsTotal.WithLabelValues("error"))
	if failed != 1 {
		t.Errorf("expected 1 failed run, got %f", failed)
	}
}

func TestMetricsCollector_RecordCountry(t *testing.T) {
	collector := NewCollector()
	ctx := context.Background()

	collector.RecordCountry(ctx, "completed", 120)
	collector.RecordCountry(ctx, "completed", 80)
	collector.RecordCountry(ctx, "failed", 5)

	completed := testutil.ToFloat64(collector.countriesTotal.WithLabelValues("completed"))
	if completed != 2 {
		t.Errorf("expected 2 completed countries, got %f", completed)
	}
}

func TestMetricsCollector_Counters(t *testing.T) {
	collector := NewCollector()
	ctx := context.Background()

	collector.AddAggregatesWritten(ctx, 3)
	collector.AddAggregatesWritten(ctx, 2)
	if got := testutil.ToFloat64(collector.aggregatesWritten); got != 5 {
		t.Errorf("expected 5 aggregates written, got %f", got)
	}

	collector.AddSkippedMeasurements(ctx, "invalid_numeric_value", 4)
	collector.AddSkippedMeasurements(ctx, "non_positive_value", 1)
	if got := testutil.ToFloat64(collector.skippedTotal.WithLabelValues("invalid_numeric_value")); got != 4 {
		t.Errorf("expected 4 invalid_numeric_value skips, got %f", got)
	}

	collector.SetTripleCount(ctx, 1234)
	if got := testutil.ToFloat64(collector.tripleCount); got != 1234 {
		t.Errorf("expected triple count 1234, got %f", got)
	}
}

func TestNoopCollector_Satisfies(t *testing.T) {
	var c Collector = NewNoopCollector()
	ctx := context.Background()

	// Must not panic.
	c.RecordRun(ctx, "success", 1)
	c.RecordCountry(ctx, "completed", 1)
	c.AddAggregatesWritten(ctx, 1)
	c.AddSkippedMeasurements(ctx, "untyped", 1)
	c.SetTripleCount(ctx, 1)
}
