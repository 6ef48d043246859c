package aggregate

// Totals holds the four summed trade buckets for one (country, year).
// Bucket values are sums of strictly positive measurement values, so
// every bucket is >= 0; the derived balances can be negative.
type Totals struct {
	GoodsExport    float64
	GoodsImport    float64
	ServicesExport float64
	ServicesImport float64
}

// TotalExport is goods export plus services export.
func (t Totals) TotalExport() float64 { return t.GoodsExport + t.ServicesExport }

// TotalImport is goods import plus services import.
func (t Totals) TotalImport() float64 { return t.GoodsImport + t.ServicesImport }

// TotalBalance is total export minus total import.
func (t Totals) TotalBalance() float64 { return t.TotalExport() - t.TotalImport() }

// GoodsBalance is goods export minus goods import.
func (t Totals) GoodsBalance() float64 { return t.GoodsExport - t.GoodsImport }

// ServicesBalance is services export minus services import.
func (t Totals) ServicesBalance() float64 { return t.ServicesExport - t.ServicesImport }

// HasData reports whether any bucket is strictly positive. All-zero
// periods produce no aggregate: absence means "no data", not
// "zero trade".
func (t Totals) HasData() bool {
	return t.GoodsExport > 0 || t.GoodsImport > 0 || t.ServicesExport > 0 || t.ServicesImport > 0
}

func (t *Totals) add(m Measurement) {
	switch {
	case m.Category == CategoryGoods && m.Direction == DirectionExport:
		t.GoodsExport += m.Value
	case m.Category == CategoryGoods && m.Direction == DirectionImport:
		t.GoodsImport += m.Value
	case m.Category == CategoryServices && m.Direction == DirectionExport:
		t.ServicesExport += m.Value
	case m.Category == CategoryServices && m.Direction == DirectionImport:
		t.ServicesImport += m.Value
	}
}
