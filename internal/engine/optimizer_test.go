package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

func defaultTestSettings() model.PlanSettings {
	return model.DefaultSettings()
}

func lumberPieces(materialID string, lengths ...float64) Aggregation {
	entries := make([]model.RequirementEntry, 0, len(lengths))
	for _, l := range lengths {
		entries = append(entries, model.RequirementEntry{MaterialID: materialID, Value: l, Source: "test"})
	}
	return Aggregate(entries)
}

func TestOptimize_BestFitDecreasingPacksTwoBoards(t *testing.T) {
	cat := testCatalog()
	board := cat.FindMaterialByName("Board 40x100")

	stock := []model.StockEntry{{MaterialID: board.ID, Length: 3.0, Quantity: 2}}
	agg := lumberPieces(board.ID, 1.5, 1.0, 0.9, 0.8)

	result, err := New(defaultTestSettings()).Optimize(cat, agg, stock)
	require.NoError(t, err)
	require.True(t, result.CanProduce)
	assert.Empty(t, result.Missing)

	plan := result.Plans[board.ID]
	require.Len(t, plan, 2)

	// Board one takes 1.5 and 1.0; 0.9 no longer fits its 0.5 remainder, so
	// board two opens for 0.9 and 0.8.
	assert.Equal(t, []model.Cut{
		{Length: 1.5, Source: "test"},
		{Length: 1.0, Source: "test"},
	}, plan[0].Cuts)
	assert.InDelta(t, 0.5, plan[0].Leftover, 1e-9)

	assert.Equal(t, []model.Cut{
		{Length: 0.9, Source: "test"},
		{Length: 0.8, Source: "test"},
	}, plan[1].Cuts)
	assert.InDelta(t, 1.3, plan[1].Leftover, 1e-9)

	// Both original boards consumed; the two offcuts come back as stock.
	require.Len(t, result.UpdatedStock, 2)
	assert.InDelta(t, 0.5, result.UpdatedStock[0].Length, 1e-9)
	assert.Equal(t, 1, result.UpdatedStock[0].Quantity)
	assert.InDelta(t, 1.3, result.UpdatedStock[1].Length, 1e-9)
	assert.Equal(t, 1, result.UpdatedStock[1].Quantity)
}

func TestOptimize_HardwareShortfallReportsGap(t *testing.T) {
	cat := testCatalog()
	bolt := cat.FindMaterialByName("Bolt M10")

	stock := []model.StockEntry{{MaterialID: bolt.ID, Quantity: 10}}
	agg := Aggregate([]model.RequirementEntry{{MaterialID: bolt.ID, Value: 15, Source: "Step"}})

	result, err := New(defaultTestSettings()).Optimize(cat, agg, stock)
	require.NoError(t, err)

	assert.False(t, result.CanProduce)
	require.Len(t, result.Missing, 1)
	assert.Equal(t, "Bolt M10: need 15 pcs, have 10 (short 5)", result.Missing[0])
}

func TestOptimize_HardwareConsumedAcrossRows(t *testing.T) {
	cat := testCatalog()
	bolt := cat.FindMaterialByName("Bolt M10")

	stock := []model.StockEntry{
		{MaterialID: bolt.ID, Quantity: 4},
		{MaterialID: bolt.ID, Quantity: 8},
	}
	agg := Aggregate([]model.RequirementEntry{{MaterialID: bolt.ID, Value: 10, Source: "Step"}})

	result, err := New(defaultTestSettings()).Optimize(cat, agg, stock)
	require.NoError(t, err)
	require.True(t, result.CanProduce)

	// First row drained, second reduced to 2.
	require.Len(t, result.UpdatedStock, 1)
	assert.Equal(t, 2, result.UpdatedStock[0].Quantity)
}

func TestOptimize_NoBoardFitsPiece(t *testing.T) {
	cat := testCatalog()
	board := cat.FindMaterialByName("Board 40x100")

	stock := []model.StockEntry{{MaterialID: board.ID, Length: 2.0, Quantity: 5}}
	agg := lumberPieces(board.ID, 2.5, 1.0)

	result, err := New(defaultTestSettings()).Optimize(cat, agg, stock)
	require.NoError(t, err)

	assert.False(t, result.CanProduce)
	require.Len(t, result.Missing, 1)
	assert.Equal(t, "Board 40x100: no board fits 2.50 m piece (test)", result.Missing[0])

	// The fitting piece is still planned so the report shows the full gap.
	require.Len(t, result.Plans[board.ID], 1)
	assert.InDelta(t, 1.0, result.Plans[board.ID][0].Cuts[0].Length, 1e-9)
}

func TestOptimize_OpensSmallestSufficientBoard(t *testing.T) {
	cat := testCatalog()
	board := cat.FindMaterialByName("Board 40x100")

	stock := []model.StockEntry{
		{MaterialID: board.ID, Length: 6.0, Quantity: 1},
		{MaterialID: board.ID, Length: 3.0, Quantity: 1},
	}
	agg := lumberPieces(board.ID, 2.5)

	result, err := New(defaultTestSettings()).Optimize(cat, agg, stock)
	require.NoError(t, err)

	require.Len(t, result.Plans[board.ID], 1)
	assert.InDelta(t, 3.0, result.Plans[board.ID][0].StockLength, 1e-9,
		"the 3 m board is opened, the 6 m board stays intact")
}

func TestOptimize_EqualLengthTieBreaksOnLargerQuantity(t *testing.T) {
	cat := testCatalog()
	board := cat.FindMaterialByName("Board 40x100")

	stock := []model.StockEntry{
		{MaterialID: board.ID, Length: 3.0, Quantity: 1},
		{MaterialID: board.ID, Length: 3.0, Quantity: 4},
	}
	agg := lumberPieces(board.ID, 1.0)

	result, err := New(defaultTestSettings()).Optimize(cat, agg, stock)
	require.NoError(t, err)

	quantities := map[int]bool{}
	for _, row := range result.UpdatedStock {
		if row.Length == 3.0 {
			quantities[row.Quantity] = true
		}
	}
	assert.True(t, quantities[1], "single-board row untouched")
	assert.True(t, quantities[3], "bigger row supplied the board")
}

func TestOptimize_ScrapThresholdDiscardsShortOffcuts(t *testing.T) {
	cat := testCatalog()
	board := cat.FindMaterialByName("Board 40x100")

	settings := defaultTestSettings()
	settings.ScrapThreshold = 0.3

	stock := []model.StockEntry{{MaterialID: board.ID, Length: 3.0, Quantity: 1}}
	agg := lumberPieces(board.ID, 2.8)

	result, err := New(settings).Optimize(cat, agg, stock)
	require.NoError(t, err)
	require.True(t, result.CanProduce)

	assert.InDelta(t, 0.2, result.Plans[board.ID][0].Leftover, 1e-9,
		"the plan still records the offcut")
	assert.Empty(t, result.UpdatedStock, "below the threshold it is scrap, not stock")
}

func TestOptimize_ExactCutLeavesNoLeftover(t *testing.T) {
	cat := testCatalog()
	board := cat.FindMaterialByName("Board 40x100")

	stock := []model.StockEntry{{MaterialID: board.ID, Length: 3.0, Quantity: 1}}
	agg := lumberPieces(board.ID, 1.0, 1.0, 1.0)

	result, err := New(defaultTestSettings()).Optimize(cat, agg, stock)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Plans[board.ID][0].Leftover)
	assert.Empty(t, result.UpdatedStock)
}

func TestOptimize_CutSumsNeverExceedStockLength(t *testing.T) {
	cat := testCatalog()
	board := cat.FindMaterialByName("Board 40x100")

	stock := []model.StockEntry{
		{MaterialID: board.ID, Length: 2.0, Quantity: 3},
		{MaterialID: board.ID, Length: 4.5, Quantity: 2},
	}
	agg := lumberPieces(board.ID, 1.9, 1.7, 1.3, 1.1, 0.7, 0.6, 0.4, 0.2)

	result, err := New(defaultTestSettings()).Optimize(cat, agg, stock)
	require.NoError(t, err)
	require.True(t, result.CanProduce)

	for _, alloc := range result.Plans[board.ID] {
		assert.LessOrEqual(t, alloc.UsedLength(), alloc.StockLength+1e-9)
		assert.InDelta(t, alloc.StockLength, alloc.UsedLength()+alloc.Leftover, 1e-9)
	}
}

func TestOptimize_MoreStockNeverBreaksFeasibility(t *testing.T) {
	cat := testCatalog()
	board := cat.FindMaterialByName("Board 40x100")
	agg := lumberPieces(board.ID, 2.0, 1.5, 1.5)

	base := []model.StockEntry{{MaterialID: board.ID, Length: 3.0, Quantity: 2}}
	result, err := New(defaultTestSettings()).Optimize(cat, agg, base)
	require.NoError(t, err)
	require.True(t, result.CanProduce)

	grown := append(model.CloneStock(base), model.StockEntry{MaterialID: board.ID, Length: 6.0, Quantity: 1})
	result, err = New(defaultTestSettings()).Optimize(cat, agg, grown)
	require.NoError(t, err)
	assert.True(t, result.CanProduce, "adding stock must not flip a feasible plan")
}

func TestOptimize_InputSnapshotIsNotModified(t *testing.T) {
	cat := testCatalog()
	board := cat.FindMaterialByName("Board 40x100")

	stock := []model.StockEntry{{MaterialID: board.ID, Length: 3.0, Quantity: 2}}
	agg := lumberPieces(board.ID, 1.5)

	_, err := New(defaultTestSettings()).Optimize(cat, agg, stock)
	require.NoError(t, err)

	assert.Equal(t, 2, stock[0].Quantity)
}
