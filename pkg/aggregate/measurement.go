// Package aggregate computes per-(country, year) trade aggregates from a
// populated graph: a validating parse of measurement records, bucket
// summation, deterministic aggregate identity and the writer that
// materializes aggregate nodes back into the store.
package aggregate

import (
	"context"
	"fmt"

	"tradegraph/pkg/store"
	"tradegraph/pkg/vocab"
)

// Category classifies a measurement as goods or services trade.
type Category string

const (
	CategoryGoods    Category = "goods"
	CategoryServices Category = "services"
)

// Direction is the flow of a trade measurement.
type Direction string

const (
	DirectionExport Direction = "export"
	DirectionImport Direction = "import"
)

// SkipReason explains why a measurement record was excluded from a scan.
// Skips are expected data conditions, never errors; the reasons feed
// metrics counters.
type SkipReason string

const (
	SkipUntyped      SkipReason = "untyped"
	SkipWrongType    SkipReason = "unrecognized_type"
	SkipYearMismatch SkipReason = "year_mismatch"
	SkipMissingField SkipReason = "missing_field"
	SkipInvalidValue SkipReason = "invalid_numeric_value"
	SkipNonPositive  SkipReason = "non_positive_value"
	SkipUnknownFlow  SkipReason = "unrecognized_flow"
)

// Measurement is the validated form of one trade measurement record.
type Measurement struct {
	Category  Category
	Direction Direction
	Year      int
	Value     float64
}

// ScanStats counts the outcome of one scan over a country's measurement
// records.
type ScanStats struct {
	Scanned int
	Used    int
	Skipped map[SkipReason]int
}

func newScanStats() *ScanStats {
	return &ScanStats{Skipped: make(map[SkipReason]int)}
}

func (s *ScanStats) skip(reason SkipReason) {
	s.Skipped[reason]++
}

// Merge folds another scan's counts into this one.
func (s *ScanStats) Merge(o *ScanStats) {
	if o == nil {
		return
	}
	s.Scanned += o.Scanned
	s.Used += o.Used
	for reason, n := range o.Skipped {
		if s.Skipped == nil {
			s.Skipped = make(map[SkipReason]int)
		}
		s.Skipped[reason] += n
	}
}

// parseMeasurement validates one measurement node against a target year.
// Returns (measurement, "", nil) for a usable record, (zero, reason, nil)
// for a record to skip, and a non-nil error only on store failure.
func parseMeasurement(ctx context.Context, st store.TripleStore, node store.Term, year int) (Measurement, SkipReason, error) {
	types, err := store.Objects(ctx, st, node, store.IRI(vocab.RDFType))
	if err != nil {
		return Measurement{}, "", fmt.Errorf("measurement %s: %w", node, err)
	}
	if len(types) == 0 {
		return Measurement{}, SkipUntyped, nil
	}

	var category Category
	switch {
	case containsIRI(types, vocab.ClassGoodsTrade):
		category = CategoryGoods
	case containsIRI(types, vocab.ClassServicesTrade):
		category = CategoryServices
	default:
		return Measurement{}, SkipWrongType, nil
	}

	yearTerm, ok, err := store.FirstObject(ctx, st, node, store.IRI(vocab.PropYear))
	if err != nil {
		return Measurement{}, "", fmt.Errorf("measurement %s: %w", node, err)
	}
	if !ok {
		return Measurement{}, SkipYearMismatch, nil
	}
	recordYear, yerr := yearTerm.Int()
	if yerr != nil || recordYear != year {
		return Measurement{}, SkipYearMismatch, nil
	}

	flowTerm, flowOK, err := store.FirstObject(ctx, st, node, store.IRI(vocab.PropFlowType))
	if err != nil {
		return Measurement{}, "", fmt.Errorf("measurement %s: %w", node, err)
	}
	valueTerm, valueOK, err := store.FirstObject(ctx, st, node, store.IRI(vocab.PropTradeValue))
	if err != nil {
		return Measurement{}, "", fmt.Errorf("measurement %s: %w", node, err)
	}
	if !flowOK || !valueOK {
		return Measurement{}, SkipMissingField, nil
	}

	value, verr := valueTerm.Float()
	if verr != nil {
		return Measurement{}, SkipInvalidValue, nil
	}
	if value <= 0 {
		return Measurement{}, SkipNonPositive, nil
	}

	var direction Direction
	switch flowTerm.Value {
	case vocab.FlowExport:
		direction = DirectionExport
	case vocab.FlowImport:
		direction = DirectionImport
	default:
		return Measurement{}, SkipUnknownFlow, nil
	}

	return Measurement{
		Category:  category,
		Direction: direction,
		Year:      recordYear,
		Value:     value,
	}, "", nil
}

func containsIRI(terms []store.Term, iri string) bool {
	for _, t := range terms {
		if t.IsIRI() && t.Value == iri {
			return true
		}
	}
	return false
}
