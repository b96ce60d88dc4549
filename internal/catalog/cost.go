package catalog

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// Coster computes catalog unit costs with explicit memoization. The memo is
// owned by the planning context that created the Coster; invalidate entries
// whenever a material price or composition changes.
type Coster struct {
	cat  *Catalog
	memo map[string]model.Money
}

func NewCoster(cat *Catalog) *Coster {
	return &Coster{
		cat:  cat,
		memo: make(map[string]model.Money),
	}
}

// Invalidate drops the memoized cost for one product. Composites that embed
// the product are recomputed lazily on the next lookup, so callers that edit
// a deep component should InvalidateAll instead.
func (c *Coster) Invalidate(productID string) {
	delete(c.memo, productID)
}

// InvalidateAll drops every memoized cost.
func (c *Coster) InvalidateAll() {
	c.memo = make(map[string]model.Money)
}

// ProductCost returns the unit production cost of a product: material price
// times quantity (times fixed length for measured lumber) for base products,
// summed component costs for composites.
func (c *Coster) ProductCost(productID string) (model.Money, error) {
	return c.productCost(productID, nil)
}

func (c *Coster) productCost(productID string, path []string) (model.Money, error) {
	if cached, ok := c.memo[productID]; ok {
		return cached, nil
	}

	product := c.cat.FindProduct(productID)
	if product == nil {
		return decimal.Zero, &NotFoundError{Kind: "product", ID: productID}
	}

	for _, seen := range path {
		if seen == productID {
			return decimal.Zero, &CycleError{Path: append(append([]string{}, path...), productID)}
		}
	}
	path = append(path, productID)

	total := decimal.Zero
	switch product.Variant {
	case model.Composite:
		for _, line := range product.Components {
			unit, err := c.productCost(line.ProductID, path)
			if err != nil {
				return decimal.Zero, err
			}
			total = total.Add(unit.Mul(decimal.NewFromFloat(line.Quantity)))
		}
	default:
		for _, line := range product.Materials {
			mat := c.cat.FindMaterial(line.MaterialID)
			if mat == nil {
				return decimal.Zero, &NotFoundError{Kind: "material", ID: line.MaterialID}
			}
			total = total.Add(materialLineCost(mat, line.Quantity, line.Length))
		}
	}

	c.memo[productID] = total
	return total, nil
}

// StageCost returns the production cost of one stage instance built at the
// given ordered length. Meter rows scale by ceil(qty x length); start/end
// rows are fixed; merge-to-single lumber runs are priced by their exact
// continuous length without rounding.
func (c *Coster) StageCost(stageID string, lengthM float64) (model.Money, error) {
	stage := c.cat.FindStage(stageID)
	if stage == nil {
		return decimal.Zero, &NotFoundError{Kind: "stage", ID: stageID}
	}

	total := decimal.Zero

	for _, line := range stage.Products {
		unit, err := c.ProductCost(line.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		count := scalePartCount(line.Quantity, line.Part, lengthM)
		total = total.Add(unit.Mul(decimal.NewFromFloat(count)))
	}

	for _, line := range stage.Materials {
		mat := c.cat.FindMaterial(line.MaterialID)
		if mat == nil {
			return decimal.Zero, &NotFoundError{Kind: "material", ID: line.MaterialID}
		}
		if line.Part == model.PartMeter && line.MergeToSingle && mat.Kind == model.Lumber && line.Length > 0 {
			run := line.Quantity * lengthM * line.Length
			total = total.Add(mat.Price.Mul(decimal.NewFromFloat(run)))
			continue
		}
		count := scalePartCount(line.Quantity, line.Part, lengthM)
		total = total.Add(materialLineCost(mat, count, line.Length))
	}

	return total, nil
}

// scalePartCount applies the start/meter/end scaling rule to a composition
// row quantity for a stage of the given ordered length.
func scalePartCount(qty float64, part model.StagePart, lengthM float64) float64 {
	if part == model.PartMeter {
		return math.Ceil(qty * lengthM)
	}
	return qty
}

func materialLineCost(mat *model.Material, qty, length float64) model.Money {
	amount := qty
	if mat.Kind == model.Lumber && length > 0 {
		amount = qty * length
	}
	return mat.Price.Mul(decimal.NewFromFloat(amount))
}
