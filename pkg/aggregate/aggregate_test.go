package aggregate

import (
	"context"
	"math"
	"testing"

	"tradegraph/pkg/store"
	"tradegraph/pkg/vocab"
)

const tolerance = 1e-9

func addTriple(t *testing.T, st store.TripleStore, subj, pred, obj store.Term) {
	t.Helper()
	if err := st.Add(context.Background(), store.Triple{Subj: subj, Pred: pred, Obj: obj}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
}

type fixtureMeasurement struct {
	name  string
	class string // class IRI, empty for an untyped node
	year  store.Term
	flow  string
	value store.Term
}

func addCountryWithMeasurements(t *testing.T, st store.TripleStore, iso string, measurements []fixtureMeasurement) store.Term {
	t.Helper()
	uri := store.IRI(vocab.EntityIRI(iso))
	addTriple(t, st, uri, store.IRI(vocab.RDFType), store.IRI(vocab.ClassCountry))
	addTriple(t, st, uri, store.IRI(vocab.PropISOCode), store.Literal(iso))

	for _, m := range measurements {
		node := store.IRI(vocab.Namespace + m.name)
		addTriple(t, st, uri, store.IRI(vocab.PropHasTradeMeasurement), node)
		if m.class != "" {
			addTriple(t, st, node, store.IRI(vocab.RDFType), store.IRI(m.class))
		}
		if m.year != (store.Term{}) {
			addTriple(t, st, node, store.IRI(vocab.PropYear), m.year)
		}
		if m.flow != "" {
			addTriple(t, st, node, store.IRI(vocab.PropFlowType), store.Literal(m.flow))
		}
		if m.value != (store.Term{}) {
			addTriple(t, st, node, store.IRI(vocab.PropTradeValue), m.value)
		}
	}
	return uri
}

func approx(got, want float64) bool {
	return math.Abs(got-want) < tolerance
}

// TestCalculateYearTotals_ExampleScenario is the USA 2020 scenario:
// goods/export/100 and services/import/30 plus one malformed record.
func TestCalculateYearTotals_ExampleScenario(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	usa := addCountryWithMeasurements(t, st, "USA", []fixtureMeasurement{
		{name: "m_goods", class: vocab.ClassGoodsTrade, year: store.Integer(2020), flow: vocab.FlowExport, value: store.Decimal(100)},
		{name: "m_services", class: vocab.ClassServicesTrade, year: store.Integer(2020), flow: vocab.FlowImport, value: store.Decimal(30)},
		{name: "m_broken", class: vocab.ClassServicesTrade, year: store.Integer(2020), flow: vocab.FlowExport, value: store.Literal("garbage")},
	})

	totals, stats, err := CalculateYearTotals(ctx, st, usa, 2020)
	if err != nil {
		t.Fatalf("CalculateYearTotals failed: %v", err)
	}
	if totals == nil {
		t.Fatal("expected totals, got nil")
	}

	if !approx(totals.GoodsExport, 100) {
		t.Errorf("GoodsExport = %f, want 100", totals.GoodsExport)
	}
	if !approx(totals.GoodsImport, 0) {
		t.Errorf("GoodsImport = %f, want 0", totals.GoodsImport)
	}
	if !approx(totals.ServicesExport, 0) {
		t.Errorf("ServicesExport = %f, want 0", totals.ServicesExport)
	}
	if !approx(totals.ServicesImport, 30) {
		t.Errorf("ServicesImport = %f, want 30", totals.ServicesImport)
	}
	if !approx(totals.TotalBalance(), 70) {
		t.Errorf("TotalBalance = %f, want 70", totals.TotalBalance())
	}
	if !approx(totals.GoodsBalance(), 100) {
		t.Errorf("GoodsBalance = %f, want 100", totals.GoodsBalance())
	}
	if !approx(totals.ServicesBalance(), -30) {
		t.Errorf("ServicesBalance = %f, want -30", totals.ServicesBalance())
	}

	if stats.Scanned != 3 || stats.Used != 2 {
		t.Errorf("stats = %+v, want 3 scanned / 2 used", stats)
	}
	if stats.Skipped[SkipInvalidValue] != 1 {
		t.Errorf("expected 1 invalid_numeric_value skip, got %d", stats.Skipped[SkipInvalidValue])
	}
}

// TestCalculateYearTotals_Sparsity verifies all-zero periods produce no
// totals.
func TestCalculateYearTotals_Sparsity(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	usa := addCountryWithMeasurements(t, st, "USA", []fixtureMeasurement{
		{name: "m_zero", class: vocab.ClassGoodsTrade, year: store.Integer(2020), flow: vocab.FlowExport, value: store.Decimal(0)},
		{name: "m_negative", class: vocab.ClassGoodsTrade, year: store.Integer(2020), flow: vocab.FlowImport, value: store.Decimal(-5)},
		{name: "m_other_year", class: vocab.ClassGoodsTrade, year: store.Integer(2019), flow: vocab.FlowExport, value: store.Decimal(50)},
	})

	totals, stats, err := CalculateYearTotals(ctx, st, usa, 2020)
	if err != nil {
		t.Fatalf("CalculateYearTotals failed: %v", err)
	}
	if totals != nil {
		t.Errorf("expected nil totals for all-zero period, got %+v", totals)
	}
	if stats.Skipped[SkipNonPositive] != 2 {
		t.Errorf("expected 2 non_positive_value skips, got %d", stats.Skipped[SkipNonPositive])
	}
	if stats.Skipped[SkipYearMismatch] != 1 {
		t.Errorf("expected 1 year_mismatch skip, got %d", stats.Skipped[SkipYearMismatch])
	}
}

// TestCalculateYearTotals_SkipReasons covers each skip condition.
func TestCalculateYearTotals_SkipReasons(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	usa := addCountryWithMeasurements(t, st, "USA", []fixtureMeasurement{
		{name: "m_ok", class: vocab.ClassGoodsTrade, year: store.Integer(2020), flow: vocab.FlowExport, value: store.Decimal(10)},
		{name: "m_untyped", year: store.Integer(2020), flow: vocab.FlowExport, value: store.Decimal(10)},
		{name: "m_wrong_class", class: vocab.ClassEconomicMeasurement, year: store.Integer(2020), flow: vocab.FlowExport, value: store.Decimal(10)},
		{name: "m_no_year", class: vocab.ClassGoodsTrade, flow: vocab.FlowExport, value: store.Decimal(10)},
		{name: "m_no_flow", class: vocab.ClassGoodsTrade, year: store.Integer(2020), value: store.Decimal(10)},
		{name: "m_no_value", class: vocab.ClassGoodsTrade, year: store.Integer(2020), flow: vocab.FlowExport},
		{name: "m_odd_flow", class: vocab.ClassGoodsTrade, year: store.Integer(2020), flow: "Re-Export", value: store.Decimal(10)},
	})

	totals, stats, err := CalculateYearTotals(ctx, st, usa, 2020)
	if err != nil {
		t.Fatalf("CalculateYearTotals failed: %v", err)
	}
	if totals == nil || !approx(totals.GoodsExport, 10) {
		t.Fatalf("expected only the good record's value, got %+v", totals)
	}

	want := map[SkipReason]int{
		SkipUntyped:      1,
		SkipWrongType:    1,
		SkipYearMismatch: 1,
		SkipMissingField: 2,
		SkipUnknownFlow:  1,
	}
	for reason, n := range want {
		if stats.Skipped[reason] != n {
			t.Errorf("skip reason %s: got %d, want %d", reason, stats.Skipped[reason], n)
		}
	}
}

func TestID_Deterministic(t *testing.T) {
	usa := store.IRI(vocab.EntityIRI("USA"))
	id1 := ID{Country: usa, Year: 2020}
	id2 := ID{Country: usa, Year: 2020}

	if id1.String() != id2.String() {
		t.Error("identical IDs format differently")
	}
	want := vocab.Namespace + "USA_trade_aggregate_2020"
	if id1.String() != want {
		t.Errorf("ID = %q, want %q", id1.String(), want)
	}
	if id1.Term() != store.IRI(want) {
		t.Errorf("ID term = %v", id1.Term())
	}

	other := ID{Country: usa, Year: 2021}
	if other.String() == id1.String() {
		t.Error("different years produced the same ID")
	}
}

func TestID_SanitizesLocalName(t *testing.T) {
	tests := []struct {
		country string
		want    string
	}{
		{vocab.Namespace + "USA", vocab.Namespace + "USA_trade_aggregate_2020"},
		{vocab.Namespace + "north korea", vocab.Namespace + "north_korea_trade_aggregate_2020"},
		{"http://other.example/countries/c%20te", vocab.Namespace + "c_20te_trade_aggregate_2020"},
	}
	for _, tt := range tests {
		id := ID{Country: store.IRI(tt.country), Year: 2020}
		if got := id.String(); got != tt.want {
			t.Errorf("ID for %q = %q, want %q", tt.country, got, tt.want)
		}
	}
}

func TestWrite_TripleContent(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	usa := store.IRI(vocab.EntityIRI("USA"))
	id := ID{Country: usa, Year: 2020}
	totals := &Totals{GoodsExport: 100, ServicesImport: 30}

	if err := Write(ctx, st, id, totals); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	agg := id.Term()
	checks := []struct {
		pred string
		obj  store.Term
	}{
		{vocab.RDFType, store.IRI(vocab.ClassTradeAggregate)},
		{vocab.PropYear, store.Integer(2020)},
		{vocab.PropTotalExportValue, store.Decimal(100)},
		{vocab.PropGoodsExportValue, store.Decimal(100)},
		{vocab.PropServicesExportValue, store.Decimal(0)},
		{vocab.PropTotalImportValue, store.Decimal(30)},
		{vocab.PropGoodsImportValue, store.Decimal(0)},
		{vocab.PropServicesImportValue, store.Decimal(30)},
		{vocab.PropTotalTradeBalance, store.Decimal(70)},
		{vocab.PropGoodsTradeBalance, store.Decimal(100)},
		{vocab.PropServicesTradeBalance, store.Decimal(-30)},
	}
	for _, c := range checks {
		pred := store.IRI(c.pred)
		got, err := st.Match(ctx, &agg, &pred, &c.obj)
		if err != nil {
			t.Fatalf("Match failed: %v", err)
		}
		if len(got) != 1 {
			t.Errorf("missing triple %s %s %s", agg, pred, c.obj)
		}
	}

	// The country links to the aggregate.
	hasAgg := store.IRI(vocab.PropHasTradeAggregate)
	got, err := st.Match(ctx, &usa, &hasAgg, &agg)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(got) != 1 {
		t.Error("missing hasTradeAggregate link")
	}
}

func TestClear_RemovesPriorAggregates(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	defer st.Close()

	usa := addCountryWithMeasurements(t, st, "USA", []fixtureMeasurement{
		{name: "m1", class: vocab.ClassGoodsTrade, year: store.Integer(2020), flow: vocab.FlowExport, value: store.Decimal(100)},
	})
	before, _ := st.Len(ctx)

	for _, year := range []int{2019, 2020} {
		if err := Write(ctx, st, ID{Country: usa, Year: year}, &Totals{GoodsExport: 1}); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}

	removed, err := Clear(ctx, st)
	if err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("expected 2 cleared aggregate nodes, got %d", removed)
	}

	after, _ := st.Len(ctx)
	if after != before {
		t.Errorf("expected %d triples after clear, got %d", before, after)
	}

	hasAgg := store.IRI(vocab.PropHasTradeAggregate)
	links, err := st.Match(ctx, nil, &hasAgg, nil)
	if err != nil {
		t.Fatalf("Match failed: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("expected no aggregate links after clear, got %d", len(links))
	}
}
