package model

import "fmt"

// RequirementEntry is one resolved raw-material demand. For fixed-length
// lumber pieces Value is the piece length in meters and one entry stands for
// one physical piece to be cut; for hardware (and unmeasured lumber) Value is
// a unit count. Source is the human-readable origin used to attribute cuts
// in the cutting plan.
type RequirementEntry struct {
	MaterialID string  `json:"material_id"`
	Value      float64 `json:"value"`
	Source     string  `json:"source"`
}

// MultiplicityLabel suffixes a source label with a piece-count tag when more
// than one instance of the origin is being built, e.g. "Platform (3 pcs)".
func MultiplicityLabel(name string, count int) string {
	if count > 1 {
		return fmt.Sprintf("%s (%d pcs)", name, count)
	}
	return name
}

// StockEntry is one inventory row: a number of boards of one length for
// Lumber, or a unit count (Length 0) for Hardware.
type StockEntry struct {
	MaterialID string  `json:"material_id"`
	Length     float64 `json:"length"`
	Quantity   int     `json:"quantity"`
}

// CloneStock deep-copies a stock snapshot so a planning run can consume it
// without touching the caller's slice.
func CloneStock(stock []StockEntry) []StockEntry {
	out := make([]StockEntry, len(stock))
	copy(out, stock)
	return out
}

// Cut is one piece sawn from a board, attributed to its order-line origin.
type Cut struct {
	Length float64 `json:"length"`
	Source string  `json:"source"`
}

// BoardAllocation is one physical board taken from stock with the ordered
// cuts assigned to it and the leftover length returned to stock.
type BoardAllocation struct {
	StockLength float64 `json:"stock_length"`
	Cuts        []Cut   `json:"cuts"`
	Leftover    float64 `json:"leftover"`
}

// UsedLength is the sum of cut lengths assigned to the board.
func (b BoardAllocation) UsedLength() float64 {
	var used float64
	for _, c := range b.Cuts {
		used += c.Length
	}
	return used
}

// CutPlan is the ordered board-by-board cutting instruction list for one
// lumber material.
type CutPlan []BoardAllocation

// RouteAssignment pins a stage to a position on a safety-rope route.
type RouteAssignment struct {
	Stage    Stage `json:"stage"`
	Route    int   `json:"route"`
	Position int   `json:"position"`
}

// Segment is a maximal run of same-class stages within one route, in
// position order. Only static segments consume rope and clamps.
type Segment struct {
	Route  int     `json:"route"`
	Static bool    `json:"static"`
	Stages []Stage `json:"stages"`
}

// TotalLength is the summed stage length of the segment in meters.
func (s Segment) TotalLength() float64 {
	var total float64
	for _, st := range s.Stages {
		total += st.Length
	}
	return total
}
