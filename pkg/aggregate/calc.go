package aggregate

import (
	"context"
	"fmt"

	"tradegraph/pkg/store"
	"tradegraph/pkg/vocab"
)

// CalculateYearTotals scans every measurement record linked from the
// country node and sums the values matching the target year into the
// four buckets. Records that are untyped, the wrong category, the wrong
// year, missing a field, unparseable or non-positive are counted in the
// stats and skipped, never failed on.
//
// Returns a nil Totals when every bucket would be zero: sparse periods
// produce no aggregate. A non-nil error means the store itself failed.
func CalculateYearTotals(ctx context.Context, st store.TripleStore, country store.Term, year int) (*Totals, *ScanStats, error) {
	nodes, err := store.Objects(ctx, st, country, store.IRI(vocab.PropHasTradeMeasurement))
	if err != nil {
		return nil, nil, fmt.Errorf("scan measurements of %s: %w", country, err)
	}

	var totals Totals
	stats := newScanStats()
	for _, node := range nodes {
		stats.Scanned++
		m, reason, err := parseMeasurement(ctx, st, node, year)
		if err != nil {
			return nil, nil, err
		}
		if reason != "" {
			stats.skip(reason)
			continue
		}
		stats.Used++
		totals.add(m)
	}

	if !totals.HasData() {
		return nil, stats, nil
	}
	return &totals, stats, nil
}
