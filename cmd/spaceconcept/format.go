package main

import (
	"fmt"
	"strings"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/engine"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// formatResult renders a planning run for the operator: priced requirement
// report, feasibility verdict, and the board-by-board cutting plan.
func formatResult(r *engine.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Required materials (run %s):\n", r.RunID)
	for _, line := range r.Report {
		if line.Material.Kind == model.Lumber {
			fmt.Fprintf(&b, "  %-24s %8.2f m   %s\n", line.Material.Name, line.Total, line.Cost.StringFixed(2))
		} else {
			fmt.Fprintf(&b, "  %-24s %6.0f pcs   %s\n", line.Material.Name, line.Total, line.Cost.StringFixed(2))
		}
	}
	fmt.Fprintf(&b, "Production cost: %s\n", r.Cost.StringFixed(2))
	fmt.Fprintf(&b, "Sale price:      %s\n", r.SalePrice.StringFixed(2))

	if r.CanProduce {
		b.WriteString("\nStock check: OK, order can be produced\n")
	} else {
		b.WriteString("\nStock check: INSUFFICIENT\n")
		for _, m := range r.Missing {
			fmt.Fprintf(&b, "  - %s\n", m)
		}
	}

	if len(r.Plans) > 0 {
		b.WriteString("\nCutting plan:\n")
		for _, line := range r.Report {
			plan, ok := r.Plans[line.Material.ID]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %s:\n", line.Material.Name)
			for i, board := range plan {
				fmt.Fprintf(&b, "    board %d: take a %.2f m board\n", i+1, board.StockLength)
				for _, cut := range board.Cuts {
					fmt.Fprintf(&b, "      cut %.2f m for %s\n", cut.Length, cut.Source)
				}
				if board.Leftover > 0 {
					fmt.Fprintf(&b, "      leftover %.2f m back to stock\n", board.Leftover)
				}
			}
		}
	}

	return b.String()
}

// formatSegments renders a route segmentation preview with rope totals.
func formatSegments(segments []model.Segment, totals engine.RopeTotals) string {
	var b strings.Builder

	b.WriteString("Safety rope routes:\n")
	lastRoute := -1
	for _, seg := range segments {
		if seg.Route != lastRoute {
			fmt.Fprintf(&b, "  route %d:\n", seg.Route)
			lastRoute = seg.Route
		}
		class := "rope"
		if !seg.Static {
			class = "break"
		}
		names := make([]string, len(seg.Stages))
		for i, s := range seg.Stages {
			names[i] = s.Name
		}
		fmt.Fprintf(&b, "    [%s] %s (%.2f m, %d stages)\n", class, strings.Join(names, " -> "), seg.TotalLength(), len(seg.Stages))
	}

	fmt.Fprintf(&b, "Rope:   %.2f m\n", totals.RopeMeters)
	fmt.Fprintf(&b, "Clamps: %d pcs\n", totals.Clamps)
	return b.String()
}
