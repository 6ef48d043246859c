package aggregate

import (
	"fmt"
	"strings"

	"tradegraph/pkg/store"
	"tradegraph/pkg/vocab"
)

// ID is the typed identity of one aggregate record: the country node it
// belongs to and the year it covers. Formatting is deterministic, so
// repeated runs on identical input mint identical aggregate IRIs.
type ID struct {
	Country store.Term
	Year    int
}

// String returns the aggregate IRI string,
// Namespace + {country}_trade_aggregate_{year}. The country's local name
// passes through SanitizeLocalName, so a country node with an irregular
// local name still mints a well-formed aggregate IRI. Sanitizing is
// idempotent: ingested names come out unchanged.
func (id ID) String() string {
	local := id.Country.Value
	if i := strings.LastIndexAny(local, "#/"); i >= 0 {
		local = local[i+1:]
	}
	return fmt.Sprintf("%s%s_trade_aggregate_%d",
		vocab.Namespace, vocab.SanitizeLocalName(local), id.Year)
}

// Term returns the aggregate node as an IRI term.
func (id ID) Term() store.Term {
	return store.IRI(id.String())
}
