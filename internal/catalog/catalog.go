package catalog

import (
	"fmt"
	"strings"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// Catalog is the read-only snapshot of materials, products and stages a
// planning run works against. Ownership of the underlying data (database,
// remote store) is the caller's concern; the engine only ever reads it.
type Catalog struct {
	Materials []model.Material `json:"materials"`
	Products  []model.Product  `json:"products"`
	Stages    []model.Stage    `json:"stages"`
}

// NotFoundError reports a composition row referencing a missing catalog
// entity. Pricing an order that hits one of these is impossible, so callers
// treat it as fatal for the affected line.
type NotFoundError struct {
	Kind string // "material", "product" or "stage"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in catalog", e.Kind, e.ID)
}

// CycleError reports a composite product that transitively contains itself.
// Path holds the product ids from the root to the repeated entry.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("composition cycle: %s", strings.Join(e.Path, " -> "))
}

// FindMaterial returns the material with the given id, or nil.
func (c *Catalog) FindMaterial(id string) *model.Material {
	for i := range c.Materials {
		if c.Materials[i].ID == id {
			return &c.Materials[i]
		}
	}
	return nil
}

// FindProduct returns the product with the given id, or nil.
func (c *Catalog) FindProduct(id string) *model.Product {
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i]
		}
	}
	return nil
}

// FindStage returns the stage with the given id, or nil.
func (c *Catalog) FindStage(id string) *model.Stage {
	for i := range c.Stages {
		if c.Stages[i].ID == id {
			return &c.Stages[i]
		}
	}
	return nil
}

// FindMaterialByName returns the first material with the given name, or nil.
func (c *Catalog) FindMaterialByName(name string) *model.Material {
	for i := range c.Materials {
		if c.Materials[i].Name == name {
			return &c.Materials[i]
		}
	}
	return nil
}

// FindProductByName returns the first product with the given name, or nil.
func (c *Catalog) FindProductByName(name string) *model.Product {
	for i := range c.Products {
		if c.Products[i].Name == name {
			return &c.Products[i]
		}
	}
	return nil
}

// FindStageByName returns the first stage with the given name, or nil.
func (c *Catalog) FindStageByName(name string) *model.Stage {
	for i := range c.Stages {
		if c.Stages[i].Name == name {
			return &c.Stages[i]
		}
	}
	return nil
}

// Validate checks referential integrity of every composition row. It returns
// all problems joined into a single error so the catalog can be fixed in one
// pass, or nil when the catalog is consistent.
func (c *Catalog) Validate() error {
	var problems []string

	for _, p := range c.Products {
		switch p.Variant {
		case model.Base:
			for _, line := range p.Materials {
				if c.FindMaterial(line.MaterialID) == nil {
					problems = append(problems, fmt.Sprintf("product %q: material %q missing", p.Name, line.MaterialID))
				}
			}
		case model.Composite:
			for _, line := range p.Components {
				if c.FindProduct(line.ProductID) == nil {
					problems = append(problems, fmt.Sprintf("product %q: component %q missing", p.Name, line.ProductID))
				}
			}
		default:
			problems = append(problems, fmt.Sprintf("product %q: unknown variant %q", p.Name, p.Variant))
		}
	}

	for _, s := range c.Stages {
		for _, line := range s.Products {
			if c.FindProduct(line.ProductID) == nil {
				problems = append(problems, fmt.Sprintf("stage %q: product %q missing", s.Name, line.ProductID))
			}
		}
		for _, line := range s.Materials {
			if c.FindMaterial(line.MaterialID) == nil {
				problems = append(problems, fmt.Sprintf("stage %q: material %q missing", s.Name, line.MaterialID))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}
