package engine

import (
	"github.com/shopspring/decimal"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/catalog"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// Aggregation holds the two views of a resolved order. Totals drives pricing
// and the feasibility summary; Pieces keeps every physical lumber piece as a
// separate element in insertion order, which is exactly what the cutting
// optimizer needs (same-length pieces must not be collapsed since each may
// be cut from a different board).
type Aggregation struct {
	Totals map[string]float64
	Pieces map[string][]model.RequirementEntry

	order []string // material ids in first-seen order
}

// Aggregate groups requirement entries per material. The input is not
// modified; entry order within each material is preserved.
func Aggregate(entries []model.RequirementEntry) Aggregation {
	agg := Aggregation{
		Totals: make(map[string]float64),
		Pieces: make(map[string][]model.RequirementEntry),
	}
	for _, e := range entries {
		if _, seen := agg.Totals[e.MaterialID]; !seen {
			agg.order = append(agg.order, e.MaterialID)
		}
		agg.Totals[e.MaterialID] += e.Value
		agg.Pieces[e.MaterialID] = append(agg.Pieces[e.MaterialID], e)
	}
	return agg
}

// MaterialIDs returns the aggregated material ids in deterministic
// first-seen order.
func (a Aggregation) MaterialIDs() []string {
	return a.order
}

// Cost prices the aggregated totals: meters times price-per-meter for
// lumber, units times price-per-unit for hardware. A material missing from
// the catalog makes the whole order unpriceable.
func (a Aggregation) Cost(cat *catalog.Catalog) (model.Money, error) {
	total := decimal.Zero
	for _, id := range a.order {
		mat := cat.FindMaterial(id)
		if mat == nil {
			return decimal.Zero, &catalog.NotFoundError{Kind: "material", ID: id}
		}
		total = total.Add(mat.Price.Mul(decimal.NewFromFloat(a.Totals[id])))
	}
	return total, nil
}

// ReportLine is one row of the priced requirement report.
type ReportLine struct {
	Material model.Material
	Total    float64
	Cost     model.Money
}

// Report builds the per-material requirement report in aggregation order.
func (a Aggregation) Report(cat *catalog.Catalog) ([]ReportLine, error) {
	lines := make([]ReportLine, 0, len(a.order))
	for _, id := range a.order {
		mat := cat.FindMaterial(id)
		if mat == nil {
			return nil, &catalog.NotFoundError{Kind: "material", ID: id}
		}
		total := a.Totals[id]
		lines = append(lines, ReportLine{
			Material: *mat,
			Total:    total,
			Cost:     mat.Price.Mul(decimal.NewFromFloat(total)),
		})
	}
	return lines, nil
}
