package engine

import (
	"math"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/catalog"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// Resolve flattens order lines into raw material requirement entries. It is a
// pure function of the catalog and the order: the catalog is never mutated
// and the same inputs always produce the same entries in the same order.
//
// Fixed-length lumber demands are emitted one entry per physical piece so the
// cutting optimizer can place each piece on a different board; hardware and
// unmeasured lumber demands are emitted as a single quantity entry.
func Resolve(cat *catalog.Catalog, lines []model.OrderLine) ([]model.RequirementEntry, error) {
	var entries []model.RequirementEntry

	for _, line := range lines {
		switch line.Kind {
		case model.LineProduct:
			product := cat.FindProduct(line.RefID)
			if product == nil {
				return nil, &catalog.NotFoundError{Kind: "product", ID: line.RefID}
			}
			if err := expandProduct(cat, product, line.Quantity, product.Name, nil, &entries); err != nil {
				return nil, err
			}

		case model.LineStage:
			stage := cat.FindStage(line.RefID)
			if stage == nil {
				return nil, &catalog.NotFoundError{Kind: "stage", ID: line.RefID}
			}
			if err := expandStage(cat, stage, stageLength(line), &entries); err != nil {
				return nil, err
			}

		default:
			return nil, &catalog.NotFoundError{Kind: "order line kind", ID: string(line.Kind)}
		}
	}

	return entries, nil
}

// stageLength returns the ordered length of a stage line, falling back to a
// single meter when the order did not specify one.
func stageLength(line model.OrderLine) float64 {
	if line.LengthM > 0 {
		return line.LengthM
	}
	return 1
}

// expandProduct recursively expands a product into requirement entries with
// effective quantity qty, labelling every emitted entry with source. The
// path slice carries the composite ancestry for cycle detection.
func expandProduct(cat *catalog.Catalog, product *model.Product, qty float64, source string, path []string, entries *[]model.RequirementEntry) error {
	if product.Variant == model.Composite {
		for _, seen := range path {
			if seen == product.ID {
				return &catalog.CycleError{Path: append(append([]string{}, path...), product.ID)}
			}
		}
		path = append(path, product.ID)

		for _, comp := range product.Components {
			child := cat.FindProduct(comp.ProductID)
			if child == nil {
				return &catalog.NotFoundError{Kind: "product", ID: comp.ProductID}
			}
			if err := expandProduct(cat, child, comp.Quantity*qty, source, path, entries); err != nil {
				return err
			}
		}
		return nil
	}

	for _, line := range product.Materials {
		mat := cat.FindMaterial(line.MaterialID)
		if mat == nil {
			return &catalog.NotFoundError{Kind: "material", ID: line.MaterialID}
		}

		effective := line.Quantity * qty
		if mat.Kind == model.Lumber && line.Length > 0 {
			for i := 0; i < int(effective); i++ {
				*entries = append(*entries, model.RequirementEntry{
					MaterialID: mat.ID,
					Value:      line.Length,
					Source:     source,
				})
			}
		} else {
			*entries = append(*entries, model.RequirementEntry{
				MaterialID: mat.ID,
				Value:      effective,
				Source:     source,
			})
		}
	}
	return nil
}

// expandStage expands one stage instance of the given ordered length.
//
// Direct stage materials are labelled with the stage's own name; products
// placed inside the stage are labelled with the product name (plus a piece
// count tag) so the cutting plan attributes cuts to what is actually being
// built rather than the stage as a whole.
func expandStage(cat *catalog.Catalog, stage *model.Stage, lengthM float64, entries *[]model.RequirementEntry) error {
	for _, line := range stage.Materials {
		mat := cat.FindMaterial(line.MaterialID)
		if mat == nil {
			return &catalog.NotFoundError{Kind: "material", ID: line.MaterialID}
		}

		if line.Part == model.PartMeter && line.MergeToSingle && mat.Kind == model.Lumber && line.Length > 0 {
			// One continuous run sized exactly to the stage, no rounding.
			*entries = append(*entries, model.RequirementEntry{
				MaterialID: mat.ID,
				Value:      line.Quantity * lengthM * line.Length,
				Source:     stage.Name,
			})
			continue
		}

		count := line.Quantity
		if line.Part == model.PartMeter {
			count = math.Ceil(line.Quantity * lengthM)
		}

		if mat.Kind == model.Lumber && line.Length > 0 {
			for i := 0; i < int(count); i++ {
				*entries = append(*entries, model.RequirementEntry{
					MaterialID: mat.ID,
					Value:      line.Length,
					Source:     stage.Name,
				})
			}
		} else {
			*entries = append(*entries, model.RequirementEntry{
				MaterialID: mat.ID,
				Value:      count,
				Source:     stage.Name,
			})
		}
	}

	for _, line := range stage.Products {
		product := cat.FindProduct(line.ProductID)
		if product == nil {
			return &catalog.NotFoundError{Kind: "product", ID: line.ProductID}
		}

		count := line.Quantity
		if line.Part == model.PartMeter {
			count = math.Ceil(line.Quantity * lengthM)
		}
		if count <= 0 {
			continue
		}

		source := model.MultiplicityLabel(product.Name, int(count))
		if err := expandProduct(cat, product, count, source, nil, entries); err != nil {
			return err
		}
	}

	return nil
}
