package store

import (
	"context"
	"errors"
)

// TripleStore defines the interface for triple storage backends.
// A store is a set of triples: adding an existing triple is a no-op.
// Implementations must be safe for concurrent Add and Match calls, since
// the aggregation engine writes from multiple workers into one shared
// store (distinct workers touch disjoint subjects, but they share the
// container).
type TripleStore interface {
	// Add inserts one triple. Duplicate inserts are idempotent.
	Add(ctx context.Context, t Triple) error

	// Match returns all triples consistent with the given pattern.
	// A nil position acts as a wildcard. The result order is not
	// specified.
	Match(ctx context.Context, subj, pred, obj *Term) ([]Triple, error)

	// Remove deletes all triples matching the pattern and returns how
	// many were deleted. A nil position acts as a wildcard.
	Remove(ctx context.Context, subj, pred, obj *Term) (int, error)

	// Len returns the number of stored triples.
	Len(ctx context.Context) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}

// ErrClosed indicates an operation on a closed store.
var ErrClosed = errors.New("store is closed")

// Objects returns the objects of all (subj, pred, *) triples.
func Objects(ctx context.Context, st TripleStore, subj, pred Term) ([]Term, error) {
	triples, err := st.Match(ctx, &subj, &pred, nil)
	if err != nil {
		return nil, err
	}
	objs := make([]Term, 0, len(triples))
	for _, t := range triples {
		objs = append(objs, t.Obj)
	}
	return objs, nil
}

// Subjects returns the subjects of all (*, pred, obj) triples.
func Subjects(ctx context.Context, st TripleStore, pred, obj Term) ([]Term, error) {
	triples, err := st.Match(ctx, nil, &pred, &obj)
	if err != nil {
		return nil, err
	}
	subjs := make([]Term, 0, len(triples))
	for _, t := range triples {
		subjs = append(subjs, t.Subj)
	}
	return subjs, nil
}

// FirstObject returns the object of one (subj, pred, *) triple, or
// (zero, false) when none exists. When several objects are present an
// arbitrary one is returned, matching the lookup discipline of the
// measurement scan which expects single-valued properties.
func FirstObject(ctx context.Context, st TripleStore, subj, pred Term) (Term, bool, error) {
	objs, err := Objects(ctx, st, subj, pred)
	if err != nil {
		return Term{}, false, err
	}
	if len(objs) == 0 {
		return Term{}, false, nil
	}
	return objs[0], true, nil
}
