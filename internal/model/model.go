package model

import "github.com/google/uuid"

// MaterialKind distinguishes how a material is consumed and priced.
type MaterialKind int

const (
	Lumber   MaterialKind = iota // consumed and priced per meter, cut from stock boards
	Hardware                     // consumed and priced per discrete unit
)

func (k MaterialKind) String() string {
	switch k {
	case Lumber:
		return "Lumber"
	default:
		return "Hardware"
	}
}

// Unit returns the display unit for quantities of this kind.
func (k MaterialKind) Unit() string {
	if k == Lumber {
		return "m"
	}
	return "pcs"
}

// Material is a raw catalog material. Price is per meter for Lumber and
// per unit for Hardware.
type Material struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Kind  MaterialKind `json:"kind"`
	Price Money        `json:"price"`
}

func NewMaterial(name string, kind MaterialKind, price Money) Material {
	return Material{
		ID:    newID(),
		Name:  name,
		Kind:  kind,
		Price: price,
	}
}

// ProductVariant tags a product as either a leaf built from raw materials
// or a composite built from other products.
type ProductVariant string

const (
	Base      ProductVariant = "base"
	Composite ProductVariant = "composite"
)

// MaterialLine is one row of a base product's composition.
// Length > 0 means each consumed unit is a fixed-length lumber piece.
type MaterialLine struct {
	MaterialID string  `json:"material_id"`
	Quantity   float64 `json:"quantity"`
	Length     float64 `json:"length,omitempty"` // meters, 0 = no fixed length
}

// ComponentLine is one row of a composite product's composition.
type ComponentLine struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// Product is a catalog product. Exactly one of Materials/Components is
// populated depending on Variant; the component graph must stay acyclic.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Variant    ProductVariant  `json:"variant"`
	Materials  []MaterialLine  `json:"materials,omitempty"`
	Components []ComponentLine `json:"components,omitempty"`
}

func NewBaseProduct(name string, lines ...MaterialLine) Product {
	return Product{
		ID:        newID(),
		Name:      name,
		Variant:   Base,
		Materials: lines,
	}
}

func NewCompositeProduct(name string, components ...ComponentLine) Product {
	return Product{
		ID:         newID(),
		Name:       name,
		Variant:    Composite,
		Components: components,
	}
}

// StageCategory classifies a course stage. Only static stages carry the
// safety rope; dynamic and zip stages break it.
type StageCategory string

const (
	CategoryStatic  StageCategory = "static"
	CategoryDynamic StageCategory = "dynamic"
	CategoryZip     StageCategory = "zip"
)

// IsStatic reports whether the stage carries a safety rope segment.
func (c StageCategory) IsStatic() bool { return c == CategoryStatic }

// StagePart is the scaling rule of a stage composition row relative to the
// stage's actual ordered length.
type StagePart string

const (
	PartStart StagePart = "start" // fixed per stage instance
	PartMeter StagePart = "meter" // scales with ordered length
	PartEnd   StagePart = "end"   // fixed per stage instance
)

// StageProductLine places a product inside a stage.
type StageProductLine struct {
	ProductID string    `json:"product_id"`
	Quantity  float64   `json:"quantity"`
	Part      StagePart `json:"part"`
}

// StageMaterialLine places a raw material directly inside a stage.
// MergeToSingle asks for one continuous lumber run sized exactly to the
// stage instead of discrete fixed-length pieces; it only applies to meter
// rows of fixed-length lumber.
type StageMaterialLine struct {
	MaterialID    string    `json:"material_id"`
	Quantity      float64   `json:"quantity"`
	Length        float64   `json:"length,omitempty"`
	Part          StagePart `json:"part"`
	MergeToSingle bool      `json:"merge_to_single,omitempty"`
}

// Stage is a catalog work stage of variable build length.
type Stage struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Category  StageCategory       `json:"category"`
	Length    float64             `json:"length"` // nominal length in meters
	Products  []StageProductLine  `json:"products,omitempty"`
	Materials []StageMaterialLine `json:"materials,omitempty"`
}

func NewStage(name string, category StageCategory, length float64) Stage {
	return Stage{
		ID:       newID(),
		Name:     name,
		Category: category,
		Length:   length,
	}
}

// OrderLineKind selects what an order line references.
type OrderLineKind string

const (
	LineProduct OrderLineKind = "product"
	LineStage   OrderLineKind = "stage"
)

// OrderLine is one position of a customer order: either a product count or
// a stage with its actual ordered length in meters.
type OrderLine struct {
	Kind     OrderLineKind `json:"kind"`
	RefID    string        `json:"ref_id"`
	Quantity float64       `json:"quantity,omitempty"`
	LengthM  float64       `json:"length_m,omitempty"`
}

// ProductLine builds an order line for qty units of a product.
func ProductLine(productID string, qty float64) OrderLine {
	return OrderLine{Kind: LineProduct, RefID: productID, Quantity: qty}
}

// StageLine builds an order line for one stage instance of the given length.
func StageLine(stageID string, lengthM float64) OrderLine {
	return OrderLine{Kind: LineStage, RefID: stageID, LengthM: lengthM}
}

func newID() string {
	return uuid.New().String()[:8]
}
