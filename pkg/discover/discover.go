// Package discover enumerates the entities and time periods present in a
// populated trade graph. Both listings are sorted so iteration order, and
// therefore logs and reports, are reproducible across runs.
package discover

import (
	"context"
	"fmt"
	"sort"

	"tradegraph/pkg/store"
	"tradegraph/pkg/vocab"
)

// Country is one discovered entity: its graph node and its ISO code.
type Country struct {
	URI store.Term
	ISO string
}

// ListCountries returns all entities of the given class that carry an
// isoCode, sorted by code. Entities without a code are skipped; they
// cannot be addressed in reports and the original data never produces
// them.
func ListCountries(ctx context.Context, st store.TripleStore, class store.Term) ([]Country, error) {
	rdfType := store.IRI(vocab.RDFType)
	isoCode := store.IRI(vocab.PropISOCode)

	subjects, err := store.Subjects(ctx, st, rdfType, class)
	if err != nil {
		return nil, fmt.Errorf("list countries: %w", err)
	}

	countries := make([]Country, 0, len(subjects))
	for _, subj := range subjects {
		code, ok, err := store.FirstObject(ctx, st, subj, isoCode)
		if err != nil {
			return nil, fmt.Errorf("list countries: %w", err)
		}
		if !ok {
			continue
		}
		countries = append(countries, Country{URI: subj, ISO: code.Value})
	}

	sort.Slice(countries, func(i, j int) bool { return countries[i].ISO < countries[j].ISO })
	return countries, nil
}

// ListYears returns the distinct years found on measurements of the
// given classes, ascending. Non-numeric year literals are silently
// skipped: a single bad record must not abort discovery.
func ListYears(ctx context.Context, st store.TripleStore, classes ...store.Term) ([]int, error) {
	rdfType := store.IRI(vocab.RDFType)
	yearProp := store.IRI(vocab.PropYear)

	seen := make(map[int]struct{})
	for _, class := range classes {
		subjects, err := store.Subjects(ctx, st, rdfType, class)
		if err != nil {
			return nil, fmt.Errorf("list years: %w", err)
		}
		for _, subj := range subjects {
			objs, err := store.Objects(ctx, st, subj, yearProp)
			if err != nil {
				return nil, fmt.Errorf("list years: %w", err)
			}
			for _, obj := range objs {
				year, err := obj.Int()
				if err != nil {
					continue
				}
				seen[year] = struct{}{}
			}
		}
	}

	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}
