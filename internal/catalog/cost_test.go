package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

func costCatalog() *Catalog {
	board := model.NewMaterial("Board 40x100", model.Lumber, model.Price(100))
	bolt := model.NewMaterial("Bolt M10", model.Hardware, model.Price(5))

	step := model.NewBaseProduct("Step",
		model.MaterialLine{MaterialID: board.ID, Quantity: 2, Length: 0.9},
		model.MaterialLine{MaterialID: bolt.ID, Quantity: 4},
	)
	platform := model.NewCompositeProduct("Platform",
		model.ComponentLine{ProductID: step.ID, Quantity: 3},
	)

	traverse := model.NewStage("Traverse", model.CategoryStatic, 10)
	traverse.Products = []model.StageProductLine{
		{ProductID: step.ID, Quantity: 0.5, Part: model.PartMeter},
	}
	traverse.Materials = []model.StageMaterialLine{
		{MaterialID: bolt.ID, Quantity: 8, Part: model.PartStart},
		{MaterialID: board.ID, Quantity: 1, Length: 0.8, Part: model.PartMeter, MergeToSingle: true},
	}

	return &Catalog{
		Materials: []model.Material{board, bolt},
		Products:  []model.Product{step, platform},
		Stages:    []model.Stage{traverse},
	}
}

func TestProductCost_BaseSumsMeasuredAndCountedLines(t *testing.T) {
	cat := costCatalog()
	coster := NewCoster(cat)

	cost, err := coster.ProductCost(cat.FindProductByName("Step").ID)
	require.NoError(t, err)

	// 2 x 0.9 m at 100/m plus 4 bolts at 5.
	assert.InDelta(t, 200.0, cost.InexactFloat64(), 1e-6)
}

func TestProductCost_CompositeMultipliesComponentCosts(t *testing.T) {
	cat := costCatalog()
	coster := NewCoster(cat)

	cost, err := coster.ProductCost(cat.FindProductByName("Platform").ID)
	require.NoError(t, err)
	assert.InDelta(t, 600.0, cost.InexactFloat64(), 1e-6)
}

func TestProductCost_MemoizationSurvivesCatalogEdits(t *testing.T) {
	cat := costCatalog()
	coster := NewCoster(cat)
	step := cat.FindProductByName("Step")

	first, err := coster.ProductCost(step.ID)
	require.NoError(t, err)

	// Price doubles, but the memo still answers until invalidated.
	board := cat.FindMaterialByName("Board 40x100")
	board.Price = model.Price(200)

	cached, err := coster.ProductCost(step.ID)
	require.NoError(t, err)
	assert.True(t, first.Equal(cached))

	coster.Invalidate(step.ID)
	fresh, err := coster.ProductCost(step.ID)
	require.NoError(t, err)
	assert.InDelta(t, 380.0, fresh.InexactFloat64(), 1e-6)
}

func TestProductCost_InvalidateAllDropsEverything(t *testing.T) {
	cat := costCatalog()
	coster := NewCoster(cat)
	platform := cat.FindProductByName("Platform")

	_, err := coster.ProductCost(platform.ID)
	require.NoError(t, err)

	cat.FindMaterialByName("Bolt M10").Price = model.Price(10)
	coster.InvalidateAll()

	fresh, err := coster.ProductCost(platform.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3*(180+40.0), fresh.InexactFloat64(), 1e-6)
}

func TestProductCost_CycleIsDetected(t *testing.T) {
	cat := costCatalog()
	a := model.NewCompositeProduct("Frame A")
	b := model.NewCompositeProduct("Frame B")
	a.Components = []model.ComponentLine{{ProductID: b.ID, Quantity: 1}}
	b.Components = []model.ComponentLine{{ProductID: a.ID, Quantity: 1}}
	cat.Products = append(cat.Products, a, b)

	_, err := NewCoster(cat).ProductCost(a.ID)
	var cycle *CycleError
	require.True(t, errors.As(err, &cycle))
}

func TestProductCost_UnknownProduct(t *testing.T) {
	_, err := NewCoster(costCatalog()).ProductCost("ghost")
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "product", notFound.Kind)
}

func TestStageCost_ScalesPartsAndPricesMergedRuns(t *testing.T) {
	cat := costCatalog()
	coster := NewCoster(cat)
	traverse := cat.FindStageByName("Traverse")

	cost, err := coster.StageCost(traverse.ID, 9.3)
	require.NoError(t, err)

	// ceil(0.5 x 9.3) = 5 steps at 200, 8 start bolts at 5, and a continuous
	// 9.3 x 0.8 m board run at 100/m with no rounding.
	want := 5*200 + 8*5 + 9.3*0.8*100
	assert.InDelta(t, want, cost.InexactFloat64(), 1e-6)
}

func TestStageCost_UnknownStage(t *testing.T) {
	_, err := NewCoster(costCatalog()).StageCost("ghost", 1)
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "stage", notFound.Kind)
}
