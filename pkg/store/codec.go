package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/knakk/rdf"
)

// ParseError indicates that a serialized graph file could not be read or
// decoded. Load failures are fatal to a run: nothing is dispatched.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads an N-Triples file into a fresh in-memory store.
func Load(path string) (*MemoryStore, error) {
	st := NewMemoryStore()
	if err := LoadInto(context.Background(), path, st); err != nil {
		return nil, err
	}
	return st, nil
}

// LoadInto reads an N-Triples file into an existing store.
func LoadInto(ctx context.Context, path string, st TripleStore) error {
	f, err := os.Open(path)
	if err != nil {
		return &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	dec := rdf.NewTripleDecoder(f, rdf.NTriples)
	for {
		tr, err := dec.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return &ParseError{Path: path, Err: err}
		}
		if err := st.Add(ctx, fromRDF(tr)); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
}

// Save serializes the full store content to an N-Triples file. Triples
// are written in sorted order so identical stores produce identical
// files. Best-effort: a failure mid-write leaves the in-memory store
// unaffected but the target file in an undefined state.
func Save(ctx context.Context, st TripleStore, path string) error {
	triples, err := st.Match(ctx, nil, nil, nil)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	sort.Slice(triples, func(i, j int) bool {
		a, b := triples[i], triples[j]
		if a.Subj != b.Subj {
			return a.Subj.Value < b.Subj.Value
		}
		if a.Pred != b.Pred {
			return a.Pred.Value < b.Pred.Value
		}
		if a.Obj.Kind != b.Obj.Kind {
			return a.Obj.Kind < b.Obj.Kind
		}
		if a.Obj.Value != b.Obj.Value {
			return a.Obj.Value < b.Obj.Value
		}
		return a.Obj.DataType < b.Obj.DataType
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	enc := rdf.NewTripleEncoder(f, rdf.NTriples)
	for _, t := range triples {
		rt, err := toRDF(t)
		if err != nil {
			f.Close()
			return fmt.Errorf("save %s: %w", path, err)
		}
		if err := enc.Encode(rt); err != nil {
			f.Close()
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}

func fromRDF(t rdf.Triple) Triple {
	return Triple{
		Subj: fromRDFTerm(t.Subj),
		Pred: fromRDFTerm(t.Pred),
		Obj:  fromRDFTerm(t.Obj),
	}
}

func fromRDFTerm(term rdf.Term) Term {
	switch v := term.(type) {
	case rdf.IRI:
		return IRI(v.String())
	case rdf.Literal:
		return Term{Kind: KindLiteral, Value: v.String(), DataType: v.DataType.String()}
	default:
		// Blank nodes keep their label as an IRI-kind term.
		return IRI(term.String())
	}
}

func toRDF(t Triple) (rdf.Triple, error) {
	subj, err := rdf.NewIRI(t.Subj.Value)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("invalid subject %s: %w", t.Subj, err)
	}
	pred, err := rdf.NewIRI(t.Pred.Value)
	if err != nil {
		return rdf.Triple{}, fmt.Errorf("invalid predicate %s: %w", t.Pred, err)
	}

	var obj rdf.Object
	if t.Obj.IsIRI() {
		o, err := rdf.NewIRI(t.Obj.Value)
		if err != nil {
			return rdf.Triple{}, fmt.Errorf("invalid object %s: %w", t.Obj, err)
		}
		obj = o
	} else {
		dt, err := rdf.NewIRI(t.Obj.DataType)
		if err != nil {
			return rdf.Triple{}, fmt.Errorf("invalid datatype %q: %w", t.Obj.DataType, err)
		}
		obj = rdf.NewTypedLiteral(t.Obj.Value, dt)
	}

	return rdf.Triple{Subj: subj, Pred: pred, Obj: obj}, nil
}
