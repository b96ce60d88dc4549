package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/catalog"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// ErrNotProducible blocks confirmation while stock cannot cover the order.
var ErrNotProducible = errors.New("insufficient stock to produce the order")

// StockSource supplies stock snapshots and accepts all-or-nothing commits.
// The warehouse store implements it; tests substitute in-memory fakes.
type StockSource interface {
	Snapshot() []model.StockEntry
	Commit(runID string, stock []model.StockEntry) error
}

// Planner orchestrates one planning context: snapshot the catalog and stock,
// resolve, aggregate, optimize, and (on explicit confirmation) commit.
type Planner struct {
	Catalog  *catalog.Catalog
	Stock    StockSource
	Settings model.PlanSettings

	log zerolog.Logger
}

func NewPlanner(cat *catalog.Catalog, stock StockSource, settings model.PlanSettings, log zerolog.Logger) *Planner {
	return &Planner{
		Catalog:  cat,
		Stock:    stock,
		Settings: settings,
		log:      log,
	}
}

// Result is the complete outcome of one planning run.
type Result struct {
	RunID     string
	Entries   []model.RequirementEntry
	Agg       Aggregation
	Report    []ReportLine
	Cost      model.Money
	SalePrice model.Money

	CanProduce   bool
	Missing      []string
	Plans        map[string]model.CutPlan
	UpdatedStock []model.StockEntry

	Segments []model.Segment
	Rope     RopeTotals
}

// Plan runs the full pipeline against the current stock snapshot. Route
// assignments are optional; when present their rope and clamp demand is
// injected into the same requirement stream before aggregation.
func (p *Planner) Plan(order []model.OrderLine, routes []model.RouteAssignment) (*Result, error) {
	runID := uuid.New().String()[:8]

	entries, err := Resolve(p.Catalog, order)
	if err != nil {
		return nil, fmt.Errorf("resolving order: %w", err)
	}

	result := &Result{RunID: runID}

	if len(routes) > 0 {
		segments, totals, err := Segment(routes)
		if err != nil {
			return nil, fmt.Errorf("segmenting routes: %w", err)
		}
		ropeEntries, err := RopeRequirements(p.Catalog, p.Settings, totals)
		if err != nil {
			return nil, fmt.Errorf("binding rope materials: %w", err)
		}
		entries = append(entries, ropeEntries...)
		result.Segments = segments
		result.Rope = totals
	}

	result.Entries = entries
	result.Agg = Aggregate(entries)

	if result.Report, err = result.Agg.Report(p.Catalog); err != nil {
		return nil, fmt.Errorf("pricing order: %w", err)
	}
	if result.Cost, err = result.Agg.Cost(p.Catalog); err != nil {
		return nil, fmt.Errorf("pricing order: %w", err)
	}
	result.SalePrice = result.Cost.Mul(p.Settings.Markup)

	opt := New(p.Settings)
	allocation, err := opt.Optimize(p.Catalog, result.Agg, p.Stock.Snapshot())
	if err != nil {
		return nil, fmt.Errorf("allocating stock: %w", err)
	}
	result.CanProduce = allocation.CanProduce
	result.Missing = allocation.Missing
	result.Plans = allocation.Plans
	result.UpdatedStock = allocation.UpdatedStock

	p.log.Info().
		Str("run_id", runID).
		Int("order_lines", len(order)).
		Int("materials", len(result.Agg.MaterialIDs())).
		Bool("can_produce", result.CanProduce).
		Int("missing", len(result.Missing)).
		Str("cost", result.Cost.String()).
		Msg("planning run complete")

	return result, nil
}

// Confirm recomputes the entire pipeline against the current stock snapshot
// and commits the updated stock only when the fresh run is still feasible.
// Recomputing guards against stock changing between preview and
// confirmation; the commit itself is all-or-nothing in the store.
func (p *Planner) Confirm(order []model.OrderLine, routes []model.RouteAssignment) (*Result, error) {
	result, err := p.Plan(order, routes)
	if err != nil {
		return nil, err
	}
	if !result.CanProduce {
		return result, fmt.Errorf("%w: %s", ErrNotProducible, strings.Join(result.Missing, "; "))
	}

	if err := p.Stock.Commit(result.RunID, result.UpdatedStock); err != nil {
		return result, fmt.Errorf("committing stock: %w", err)
	}

	p.log.Info().
		Str("run_id", result.RunID).
		Int("stock_rows", len(result.UpdatedStock)).
		Msg("order confirmed, stock committed")

	return result, nil
}
