// Package store provides the triple model and storage backends for the
// trade knowledge graph: an in-memory store, a SQLite-backed store, and a
// load/save codec against the N-Triples exchange format.
package store

import (
	"fmt"
	"strconv"

	"tradegraph/pkg/vocab"
)

// TermKind distinguishes IRIs from literals.
type TermKind int

const (
	// KindIRI is a resource identifier.
	KindIRI TermKind = iota

	// KindLiteral is a typed literal value.
	KindLiteral
)

// Term is one position of a triple: an IRI or a typed literal.
// Terms are comparable values; two terms are equal when kind, lexical
// value and datatype all match.
type Term struct {
	Kind  TermKind
	Value string

	// DataType is the datatype IRI for literals, empty for IRIs.
	DataType string
}

// IRI returns an IRI term.
func IRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// Literal returns an xsd:string literal term.
func Literal(v string) Term {
	return Term{Kind: KindLiteral, Value: v, DataType: vocab.XSDString}
}

// Integer returns an xsd:integer literal term.
func Integer(i int) Term {
	return Term{Kind: KindLiteral, Value: strconv.Itoa(i), DataType: vocab.XSDInteger}
}

// Decimal returns an xsd:decimal literal term.
func Decimal(f float64) Term {
	return Term{Kind: KindLiteral, Value: strconv.FormatFloat(f, 'f', -1, 64), DataType: vocab.XSDDecimal}
}

// IsIRI reports whether the term is an IRI.
func (t Term) IsIRI() bool { return t.Kind == KindIRI }

// Int parses the term's lexical value as an integer.
func (t Term) Int() (int, error) {
	i, err := strconv.Atoi(t.Value)
	if err != nil {
		return 0, fmt.Errorf("term %q is not an integer: %w", t.Value, err)
	}
	return i, nil
}

// Float parses the term's lexical value as a float.
func (t Term) Float() (float64, error) {
	f, err := strconv.ParseFloat(t.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("term %q is not a number: %w", t.Value, err)
	}
	return f, nil
}

// String renders the term for logs and error messages.
func (t Term) String() string {
	if t.Kind == KindIRI {
		return "<" + t.Value + ">"
	}
	return strconv.Quote(t.Value)
}

// Triple is one (subject, predicate, object) statement.
type Triple struct {
	Subj Term
	Pred Term
	Obj  Term
}

// String renders the triple for logs and error messages.
func (t Triple) String() string {
	return fmt.Sprintf("%s %s %s", t.Subj, t.Pred, t.Obj)
}
