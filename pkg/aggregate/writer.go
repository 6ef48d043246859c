package aggregate

import (
	"context"
	"fmt"

	"tradegraph/pkg/store"
	"tradegraph/pkg/vocab"
)

// Write materializes one computed aggregate in the store: the node type,
// its year, the four raw buckets, the two totals, the three balances and
// the hasTradeAggregate link from the country. All triples carry the
// country's own identifier namespace, so concurrent Write calls for
// distinct countries have disjoint write sets.
func Write(ctx context.Context, st store.TripleStore, id ID, t *Totals) error {
	agg := id.Term()

	statements := []store.Triple{
		{Subj: agg, Pred: store.IRI(vocab.RDFType), Obj: store.IRI(vocab.ClassTradeAggregate)},
		{Subj: agg, Pred: store.IRI(vocab.PropYear), Obj: store.Integer(id.Year)},
		{Subj: id.Country, Pred: store.IRI(vocab.PropHasTradeAggregate), Obj: agg},

		{Subj: agg, Pred: store.IRI(vocab.PropTotalExportValue), Obj: store.Decimal(t.TotalExport())},
		{Subj: agg, Pred: store.IRI(vocab.PropGoodsExportValue), Obj: store.Decimal(t.GoodsExport)},
		{Subj: agg, Pred: store.IRI(vocab.PropServicesExportValue), Obj: store.Decimal(t.ServicesExport)},

		{Subj: agg, Pred: store.IRI(vocab.PropTotalImportValue), Obj: store.Decimal(t.TotalImport())},
		{Subj: agg, Pred: store.IRI(vocab.PropGoodsImportValue), Obj: store.Decimal(t.GoodsImport)},
		{Subj: agg, Pred: store.IRI(vocab.PropServicesImportValue), Obj: store.Decimal(t.ServicesImport)},

		{Subj: agg, Pred: store.IRI(vocab.PropTotalTradeBalance), Obj: store.Decimal(t.TotalBalance())},
		{Subj: agg, Pred: store.IRI(vocab.PropGoodsTradeBalance), Obj: store.Decimal(t.GoodsBalance())},
		{Subj: agg, Pred: store.IRI(vocab.PropServicesTradeBalance), Obj: store.Decimal(t.ServicesBalance())},
	}

	for _, tr := range statements {
		if err := st.Add(ctx, tr); err != nil {
			return fmt.Errorf("write aggregate %s: %w", id, err)
		}
	}
	return nil
}

// Clear removes every TradeAggregate node from the store: the node's
// own triples and the hasTradeAggregate links pointing at it. Returns
// the number of aggregate nodes removed. Run before recomputation so a
// run's output reflects only its input measurements.
func Clear(ctx context.Context, st store.TripleStore) (int, error) {
	rdfType := store.IRI(vocab.RDFType)
	aggClass := store.IRI(vocab.ClassTradeAggregate)
	hasAgg := store.IRI(vocab.PropHasTradeAggregate)

	nodes, err := store.Subjects(ctx, st, rdfType, aggClass)
	if err != nil {
		return 0, fmt.Errorf("clear aggregates: %w", err)
	}

	for _, node := range nodes {
		node := node
		if _, err := st.Remove(ctx, &node, nil, nil); err != nil {
			return 0, fmt.Errorf("clear aggregate %s: %w", node, err)
		}
		if _, err := st.Remove(ctx, nil, &hasAgg, &node); err != nil {
			return 0, fmt.Errorf("clear aggregate link %s: %w", node, err)
		}
	}
	return len(nodes), nil
}
