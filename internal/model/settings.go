package model

import "github.com/shopspring/decimal"

// PlanSettings holds planner tunables for one planning context.
type PlanSettings struct {
	// ScrapThreshold is the board leftover length (meters) below which an
	// offcut is discarded as waste instead of returned to stock. Zero keeps
	// every non-zero leftover.
	ScrapThreshold float64 `json:"scrap_threshold"`

	// Markup multiplies production cost into the quoted sale price.
	Markup Money `json:"markup"`

	// RopeMaterialID and ClampMaterialID bind route-segmentation output to
	// catalog materials when rope requirements are injected into an order.
	RopeMaterialID  string `json:"rope_material_id,omitempty"`
	ClampMaterialID string `json:"clamp_material_id,omitempty"`
}

func DefaultSettings() PlanSettings {
	return PlanSettings{
		ScrapThreshold: 0,
		Markup:         decimal.NewFromInt(4),
	}
}
