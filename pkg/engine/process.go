package engine

import (
	"context"
	"errors"
	"fmt"

	"tradegraph/pkg/store"
)

// ProcessFile loads a serialized graph, runs the aggregation and saves
// the result.
//
// A load failure is fatal and nothing is dispatched. A save failure is
// fatal and reported to the caller; the in-memory state is unaffected.
// Unit failures do not prevent the save: the aggregates computed for
// the remaining countries are persisted and the joined unit error is
// returned alongside the report showing which countries failed.
func (e *Engine) ProcessFile(ctx context.Context, inputPath, outputPath string) (*Report, error) {
	st, err := store.Load(inputPath)
	if err != nil {
		e.metrics.RecordRun(ctx, "error", 0)
		return nil, err
	}
	defer st.Close()
	e.log.Info("graph loaded", "path", inputPath)

	report, runErr := e.Run(ctx, st)
	if report == nil {
		return nil, runErr
	}

	if err := store.Save(ctx, st, outputPath); err != nil {
		return report, errors.Join(runErr, fmt.Errorf("persist graph: %w", err))
	}
	e.log.Info("graph saved", "path", outputPath)

	return report, runErr
}
