package store

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory TripleStore backed by a set with a
// by-subject index. Thread-safe via RWMutex: pattern matching takes the
// read lock, insertion and removal the write lock. Insertion is cheap
// relative to the measurement scans, so the coarse write lock is an
// acceptable serialization point for concurrent workers.
type MemoryStore struct {
	mu     sync.RWMutex
	set    map[Triple]struct{}
	bySubj map[Term][]Triple
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		set:    make(map[Triple]struct{}),
		bySubj: make(map[Term][]Triple),
	}
}

// Add inserts one triple. Adding an existing triple is a no-op.
func (m *MemoryStore) Add(ctx context.Context, t Triple) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if _, ok := m.set[t]; ok {
		return nil
	}
	m.set[t] = struct{}{}
	m.bySubj[t.Subj] = append(m.bySubj[t.Subj], t)
	return nil
}

// Match returns all triples consistent with the pattern; nil positions
// are wildcards.
func (m *MemoryStore) Match(ctx context.Context, subj, pred, obj *Term) ([]Triple, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrClosed
	}

	var out []Triple
	if subj != nil {
		for _, t := range m.bySubj[*subj] {
			if matches(t, subj, pred, obj) {
				out = append(out, t)
			}
		}
		return out, nil
	}
	for t := range m.set {
		if matches(t, subj, pred, obj) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Remove deletes all triples matching the pattern.
func (m *MemoryStore) Remove(ctx context.Context, subj, pred, obj *Term) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, ErrClosed
	}

	var doomed []Triple
	if subj != nil {
		for _, t := range m.bySubj[*subj] {
			if matches(t, subj, pred, obj) {
				doomed = append(doomed, t)
			}
		}
	} else {
		for t := range m.set {
			if matches(t, subj, pred, obj) {
				doomed = append(doomed, t)
			}
		}
	}

	for _, t := range doomed {
		delete(m.set, t)
		kept := m.bySubj[t.Subj][:0]
		for _, s := range m.bySubj[t.Subj] {
			if s != t {
				kept = append(kept, s)
			}
		}
		if len(kept) == 0 {
			delete(m.bySubj, t.Subj)
		} else {
			m.bySubj[t.Subj] = kept
		}
	}
	return len(doomed), nil
}

// Len returns the number of stored triples.
func (m *MemoryStore) Len(ctx context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return 0, ErrClosed
	}
	return int64(len(m.set)), nil
}

// Close marks the store closed. Further operations return ErrClosed.
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func matches(t Triple, subj, pred, obj *Term) bool {
	if subj != nil && t.Subj != *subj {
		return false
	}
	if pred != nil && t.Pred != *pred {
		return false
	}
	if obj != nil && t.Obj != *obj {
		return false
	}
	return true
}
