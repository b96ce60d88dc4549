package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/catalog"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// Length comparisons tolerate float drift from repeated subtraction.
const eps = 1e-9

// Optimizer allocates resolved requirements against a stock snapshot:
// hardware by simple netting, lumber by a deterministic best-fit-decreasing
// bin packing that returns usable offcuts to stock.
type Optimizer struct {
	Settings model.PlanSettings
}

func New(settings model.PlanSettings) *Optimizer {
	return &Optimizer{Settings: settings}
}

// OptimizeResult is the outcome of one allocation pass. UpdatedStock is the
// input snapshot with consumed quantities removed and generated leftovers
// appended; it is only meaningful for committing when CanProduce is true.
type OptimizeResult struct {
	CanProduce   bool
	Missing      []string
	Plans        map[string]model.CutPlan
	UpdatedStock []model.StockEntry
}

// Optimize processes every aggregated material in deterministic order.
// Shortages are accumulated per material rather than aborting: the verdict
// is the AND across all materials, and Missing explains every gap at once.
// The input snapshot is never modified.
func (o *Optimizer) Optimize(cat *catalog.Catalog, agg Aggregation, stock []model.StockEntry) (OptimizeResult, error) {
	working := model.CloneStock(stock)
	result := OptimizeResult{
		CanProduce: true,
		Plans:      make(map[string]model.CutPlan),
	}

	var leftovers []model.StockEntry
	for _, id := range agg.MaterialIDs() {
		mat := cat.FindMaterial(id)
		if mat == nil {
			return OptimizeResult{}, &catalog.NotFoundError{Kind: "material", ID: id}
		}

		if mat.Kind == model.Hardware {
			o.netHardware(mat, agg.Totals[id], working, &result)
			continue
		}

		plan, extra := o.cutLumber(mat, agg.Pieces[id], working, &result)
		if len(plan) > 0 {
			result.Plans[id] = plan
		}
		leftovers = append(leftovers, extra...)
	}

	updated := make([]model.StockEntry, 0, len(working)+len(leftovers))
	for _, row := range working {
		if row.Quantity > 0 {
			updated = append(updated, row)
		}
	}
	result.UpdatedStock = append(updated, leftovers...)
	return result, nil
}

// netHardware checks unit counts against total stock for the material,
// ignoring lengths, and consumes rows in snapshot order when satisfied.
func (o *Optimizer) netHardware(mat *model.Material, total float64, working []model.StockEntry, result *OptimizeResult) {
	required := int(math.Ceil(total - eps))
	if required <= 0 {
		return
	}

	available := 0
	for i := range working {
		if working[i].MaterialID == mat.ID {
			available += working[i].Quantity
		}
	}

	if available < required {
		result.Missing = append(result.Missing,
			fmt.Sprintf("%s: need %d pcs, have %d (short %d)", mat.Name, required, available, required-available))
		result.CanProduce = false
		return
	}

	remaining := required
	for i := range working {
		if remaining == 0 {
			break
		}
		if working[i].MaterialID != mat.ID {
			continue
		}
		take := working[i].Quantity
		if take > remaining {
			take = remaining
		}
		working[i].Quantity -= take
		remaining -= take
	}
}

// openBoard is one board taken from stock and currently receiving cuts.
type openBoard struct {
	remaining float64
	original  float64
	cuts      []model.Cut
}

// cutLumber packs the material's pieces onto boards with best-fit
// decreasing: pieces sorted longest first (stable on ties), each assigned to
// the open board with the least remaining length that still fits, new boards
// opened lazily from the smallest sufficient stock length. Offcuts from
// boards opened in this run are not reused for later pieces; they come back
// as new stock entries for the next run.
func (o *Optimizer) cutLumber(mat *model.Material, pieces []model.RequirementEntry, working []model.StockEntry, result *OptimizeResult) (model.CutPlan, []model.StockEntry) {
	sorted := append([]model.RequirementEntry(nil), pieces...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })

	var boards []*openBoard
	satisfied := true

	for _, piece := range sorted {
		best := -1
		for i, b := range boards {
			if piece.Value <= b.remaining+eps {
				if best < 0 || b.remaining < boards[best].remaining {
					best = i
				}
			}
		}

		if best < 0 {
			board := openFromStock(mat.ID, piece.Value, working)
			if board == nil {
				result.Missing = append(result.Missing,
					fmt.Sprintf("%s: no board fits %.2f m piece (%s)", mat.Name, piece.Value, piece.Source))
				satisfied = false
				continue
			}
			boards = append(boards, board)
			best = len(boards) - 1
		}

		b := boards[best]
		b.remaining -= piece.Value
		b.cuts = append(b.cuts, model.Cut{Length: piece.Value, Source: piece.Source})
	}

	if !satisfied {
		result.CanProduce = false
	}

	var plan model.CutPlan
	var leftovers []model.StockEntry
	for _, b := range boards {
		if len(b.cuts) == 0 {
			continue
		}
		leftover := b.remaining
		if leftover < eps {
			leftover = 0
		}
		plan = append(plan, model.BoardAllocation{
			StockLength: b.original,
			Cuts:        b.cuts,
			Leftover:    leftover,
		})
		if leftover > 0 && leftover >= o.Settings.ScrapThreshold {
			leftovers = append(leftovers, model.StockEntry{
				MaterialID: mat.ID,
				Length:     leftover,
				Quantity:   1,
			})
		}
	}
	return plan, leftovers
}

// openFromStock takes one board for the material from the stock row with the
// smallest length that still fits the piece, preferring the row with the
// larger remaining quantity among equal lengths, then snapshot order.
// Returns nil when no row can supply a long enough board.
func openFromStock(materialID string, minLength float64, working []model.StockEntry) *openBoard {
	best := -1
	for i := range working {
		row := &working[i]
		if row.MaterialID != materialID || row.Quantity <= 0 || row.Length+eps < minLength {
			continue
		}
		if best < 0 {
			best = i
			continue
		}
		switch {
		case row.Length < working[best].Length-eps:
			best = i
		case math.Abs(row.Length-working[best].Length) <= eps && row.Quantity > working[best].Quantity:
			best = i
		}
	}
	if best < 0 {
		return nil
	}

	working[best].Quantity--
	return &openBoard{
		remaining: working[best].Length,
		original:  working[best].Length,
	}
}
