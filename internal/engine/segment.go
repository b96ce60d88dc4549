package engine

import (
	"fmt"
	"sort"
	"strings"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/catalog"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// Safety rope rigging allowances per static segment: a fixed lead plus a
// per-stage anchoring allowance on top of the spanned length, and six clamps
// at each termination plus six per stage.
const (
	ropeLeadMeters     = 5.0
	ropePerStageMeters = 5.0
	clampsPerSegment   = 6
	clampsPerStage     = 6
)

// RopeTotals is the summed safety-rope demand across all routes.
type RopeTotals struct {
	RopeMeters float64
	Clamps     int
}

// PositionConflict lists the stages competing for one (route, position) slot.
type PositionConflict struct {
	Route      int
	Position   int
	StageNames []string
}

// PositionConflictError blocks segmentation until every stage has a unique
// slot on its route. It reports all conflicts at once.
type PositionConflictError struct {
	Conflicts []PositionConflict
}

func (e *PositionConflictError) Error() string {
	parts := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		parts[i] = fmt.Sprintf("route %d position %d: %s", c.Route, c.Position, strings.Join(c.StageNames, ", "))
	}
	return "route position conflicts: " + strings.Join(parts, "; ")
}

// Segment partitions stage-route assignments into maximal same-class runs
// and computes rope and clamp totals. Only static segments consume rope;
// dynamic and zip stages contribute nothing but break the rope's continuity.
// Assignments with duplicate (route, position) slots fail validation before
// any computation happens.
func Segment(assignments []model.RouteAssignment) ([]model.Segment, RopeTotals, error) {
	if err := validatePositions(assignments); err != nil {
		return nil, RopeTotals{}, err
	}

	byRoute := make(map[int][]model.RouteAssignment)
	var routes []int
	for _, a := range assignments {
		if _, seen := byRoute[a.Route]; !seen {
			routes = append(routes, a.Route)
		}
		byRoute[a.Route] = append(byRoute[a.Route], a)
	}
	sort.Ints(routes)

	var segments []model.Segment
	var totals RopeTotals

	for _, route := range routes {
		group := byRoute[route]
		sort.SliceStable(group, func(i, j int) bool { return group[i].Position < group[j].Position })

		var current *model.Segment
		for _, a := range group {
			static := a.Stage.Category.IsStatic()
			if current == nil || current.Static != static {
				segments = append(segments, model.Segment{Route: route, Static: static})
				current = &segments[len(segments)-1]
			}
			current.Stages = append(current.Stages, a.Stage)
		}
	}

	for _, seg := range segments {
		if !seg.Static {
			continue
		}
		n := float64(len(seg.Stages))
		totals.RopeMeters += ropeLeadMeters + ropePerStageMeters*n + seg.TotalLength()
		totals.Clamps += clampsPerSegment + clampsPerStage*len(seg.Stages)
	}

	return segments, totals, nil
}

func validatePositions(assignments []model.RouteAssignment) error {
	type slot struct{ route, position int }
	seen := make(map[slot][]string)
	var order []slot
	for _, a := range assignments {
		key := slot{a.Route, a.Position}
		if _, ok := seen[key]; !ok {
			order = append(order, key)
		}
		seen[key] = append(seen[key], a.Stage.Name)
	}

	var conflicts []PositionConflict
	for _, key := range order {
		if names := seen[key]; len(names) > 1 {
			conflicts = append(conflicts, PositionConflict{
				Route:      key.route,
				Position:   key.position,
				StageNames: names,
			})
		}
	}
	if len(conflicts) > 0 {
		return &PositionConflictError{Conflicts: conflicts}
	}
	return nil
}

// AutoPlan places every static stage on route 1 at consecutive positions,
// which is always conflict-free. Dynamic and zip stages are left out since
// they never carry rope.
func AutoPlan(stages []model.Stage) []model.RouteAssignment {
	var assignments []model.RouteAssignment
	position := 1
	for _, s := range stages {
		if !s.Category.IsStatic() {
			continue
		}
		assignments = append(assignments, model.RouteAssignment{
			Stage:    s,
			Route:    1,
			Position: position,
		})
		position++
	}
	return assignments
}

// RopeRequirements wraps rope and clamp totals as two requirement entries
// bound to the configured rope (linear) and clamp (count) materials, ready
// to be fed through the same aggregation and optimization pipeline as the
// rest of the order.
func RopeRequirements(cat *catalog.Catalog, settings model.PlanSettings, totals RopeTotals) ([]model.RequirementEntry, error) {
	rope := cat.FindMaterial(settings.RopeMaterialID)
	if rope == nil {
		return nil, &catalog.NotFoundError{Kind: "material", ID: settings.RopeMaterialID}
	}
	clamp := cat.FindMaterial(settings.ClampMaterialID)
	if clamp == nil {
		return nil, &catalog.NotFoundError{Kind: "material", ID: settings.ClampMaterialID}
	}

	return []model.RequirementEntry{
		{MaterialID: rope.ID, Value: totals.RopeMeters, Source: "safety rope"},
		{MaterialID: clamp.ID, Value: float64(totals.Clamps), Source: "safety rope"},
	}, nil
}
