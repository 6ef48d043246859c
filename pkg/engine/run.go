package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"tradegraph/pkg/aggregate"
	"tradegraph/pkg/discover"
	"tradegraph/pkg/store"
	"tradegraph/pkg/trace"
	"tradegraph/pkg/vocab"
)

// UnitState is the lifecycle of one per-country unit of work.
type UnitState string

const (
	UnitPending   UnitState = "pending"
	UnitRunning   UnitState = "running"
	UnitCompleted UnitState = "completed"
	UnitFailed    UnitState = "failed"
)

// UnitReport records the outcome of one country's aggregation.
type UnitReport struct {
	ISO          string
	State        UnitState
	YearsWritten int
	Scan         aggregate.ScanStats
	Duration     time.Duration
	Err          error
}

// Report summarizes one aggregation run.
type Report struct {
	RunID             string
	StartedAt         time.Time
	Duration          time.Duration
	Years             []int
	Cleared           int
	AggregatesWritten int
	Units             []UnitReport
}

// Failed returns the units that reached the Failed state.
func (r *Report) Failed() []UnitReport {
	var out []UnitReport
	for _, u := range r.Units {
		if u.State == UnitFailed {
			out = append(out, u)
		}
	}
	return out
}

// Run computes trade aggregates for every country and year in the store.
//
// One unit of work is one country across all years, dispatched to a
// bounded pool of workers. A unit's failure never halts the others: all
// dispatched units reach a terminal state before the joined unit errors
// are returned, and successful units' aggregates stay in the store.
// Context cancellation stops dispatch of new units; in-flight units run
// to completion so no write is torn mid-unit.
//
// A nil report is returned only when the run fails before any work is
// dispatched (discovery or clear failure).
func (e *Engine) Run(ctx context.Context, st store.TripleStore) (*Report, error) {
	start := time.Now()
	runID := uuid.NewString()
	log := e.log.With("run_id", runID)

	rec := &trace.RunRecord{
		Timestamp: start,
		RunID:     runID,
		Counters:  make(map[string]int64),
	}

	discoverStart := time.Now()
	years, err := discover.ListYears(ctx, st,
		store.IRI(vocab.ClassGoodsTrade), store.IRI(vocab.ClassServicesTrade))
	if err != nil {
		return nil, e.failRun(ctx, rec, start, fmt.Errorf("discover years: %w", err))
	}
	countries, err := discover.ListCountries(ctx, st, store.IRI(vocab.ClassCountry))
	if err != nil {
		return nil, e.failRun(ctx, rec, start, fmt.Errorf("discover countries: %w", err))
	}
	rec.Spans = append(rec.Spans, trace.SpanRecord{
		Name:       "discover",
		DurationMs: time.Since(discoverStart).Milliseconds(),
		OK:         true,
		Counters:   map[string]int64{"countries": int64(len(countries)), "years": int64(len(years))},
	})
	log.Info("discovered input",
		"countries", len(countries),
		"years", len(years))

	cleared := 0
	if e.clear {
		clearStart := time.Now()
		cleared, err = aggregate.Clear(ctx, st)
		if err != nil {
			return nil, e.failRun(ctx, rec, start, fmt.Errorf("clear prior aggregates: %w", err))
		}
		rec.Spans = append(rec.Spans, trace.SpanRecord{
			Name:       "clear",
			DurationMs: time.Since(clearStart).Milliseconds(),
			OK:         true,
			Counters:   map[string]int64{"cleared": int64(cleared)},
		})
		if cleared > 0 {
			log.Info("cleared prior aggregates", "nodes", cleared)
		}
	}

	aggStart := time.Now()
	units := make([]UnitReport, len(countries))
	for i, c := range countries {
		units[i] = UnitReport{ISO: c.ISO, State: UnitPending}
	}

	var written atomic.Int64
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				e.processUnit(ctx, st, countries[i], years, &units[i], &written, log)
			}
		}()
	}

	dispatched := len(countries)
dispatch:
	for i := range countries {
		select {
		case <-ctx.Done():
			dispatched = i
			break dispatch
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	var errs []error
	for i := range units {
		if units[i].Err != nil {
			errs = append(errs, units[i].Err)
		}
	}
	if ctx.Err() != nil && dispatched < len(countries) {
		errs = append(errs, fmt.Errorf("dispatch stopped after %d of %d countries: %w",
			dispatched, len(countries), ctx.Err()))
	}
	runErr := errors.Join(errs...)

	report := &Report{
		RunID:             runID,
		StartedAt:         start,
		Duration:          time.Since(start),
		Years:             years,
		Cleared:           cleared,
		AggregatesWritten: int(written.Load()),
		Units:             units,
	}

	rec.Spans = append(rec.Spans, trace.SpanRecord{
		Name:       "aggregate",
		DurationMs: time.Since(aggStart).Milliseconds(),
		OK:         runErr == nil,
		ErrorType:  ClassifyError(runErr),
		Counters:   map[string]int64{"aggregatesWritten": written.Load()},
	})
	rec.DurationMs = report.Duration.Milliseconds()
	rec.Counters["countries"] = int64(len(countries))
	rec.Counters["years"] = int64(len(years))
	rec.Counters["aggregatesWritten"] = written.Load()
	if n, lenErr := st.Len(ctx); lenErr == nil {
		rec.Counters["triples"] = n
		e.metrics.SetTripleCount(ctx, n)
	}

	switch {
	case runErr == nil:
		rec.Status = "success"
		e.metrics.RecordRun(ctx, "success", rec.DurationMs)
		log.Info("run completed",
			"aggregates_written", written.Load(),
			"duration", report.Duration)
	case len(report.Failed()) < len(units):
		rec.Status = "partial"
		rec.ErrorType = ClassifyError(runErr)
		e.metrics.RecordRun(ctx, "error", rec.DurationMs)
		log.Warn("run partially failed",
			"failed_countries", len(report.Failed()),
			"total_countries", len(units),
			"error", runErr)
	default:
		rec.Status = "error"
		rec.ErrorType = ClassifyError(runErr)
		e.metrics.RecordRun(ctx, "error", rec.DurationMs)
		log.Error("run failed", "error", runErr)
	}
	e.exportTrace(ctx, rec, log)

	return report, runErr
}

func (e *Engine) processUnit(ctx context.Context, st store.TripleStore, c discover.Country, years []int, u *UnitReport, written *atomic.Int64, log *slog.Logger) {
	u.State = UnitRunning
	start := time.Now()

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		for _, year := range years {
			totals, stats, err := aggregate.CalculateYearTotals(ctx, st, c.URI, year)
			if err != nil {
				return err
			}
			u.Scan.Merge(stats)
			if totals == nil {
				continue
			}
			id := aggregate.ID{Country: c.URI, Year: year}
			if err := aggregate.Write(ctx, st, id, totals); err != nil {
				return err
			}
			u.YearsWritten++
		}
		return nil
	}()

	u.Duration = time.Since(start)
	for reason, n := range u.Scan.Skipped {
		e.metrics.AddSkippedMeasurements(ctx, string(reason), n)
	}

	if err != nil {
		u.State = UnitFailed
		u.Err = fmt.Errorf("country %s: %w", c.ISO, err)
		e.metrics.RecordCountry(ctx, string(UnitFailed), u.Duration.Milliseconds())
		log.Warn("country failed", "iso", c.ISO, "error", err)
		return
	}

	u.State = UnitCompleted
	written.Add(int64(u.YearsWritten))
	e.metrics.AddAggregatesWritten(ctx, u.YearsWritten)
	e.metrics.RecordCountry(ctx, string(UnitCompleted), u.Duration.Milliseconds())
	log.Info("country completed",
		"iso", c.ISO,
		"years_written", u.YearsWritten,
		"duration", u.Duration)
}

// failRun handles errors raised before any unit was dispatched.
func (e *Engine) failRun(ctx context.Context, rec *trace.RunRecord, start time.Time, err error) error {
	rec.Status = "error"
	rec.ErrorType = ClassifyError(err)
	rec.DurationMs = time.Since(start).Milliseconds()
	e.metrics.RecordRun(ctx, "error", rec.DurationMs)
	e.exportTrace(ctx, rec, e.log)
	return err
}

func (e *Engine) exportTrace(ctx context.Context, rec *trace.RunRecord, log *slog.Logger) {
	if e.trace == nil {
		return
	}
	if err := e.trace.Export(ctx, rec); err != nil {
		log.Warn("trace export failed", "error", err)
	}
}
