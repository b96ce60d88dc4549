package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/catalog"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

func importCatalog() *catalog.Catalog {
	board := model.NewMaterial("Board 40x100", model.Lumber, model.Price(100))
	step := model.NewBaseProduct("Step",
		model.MaterialLine{MaterialID: board.ID, Quantity: 2, Length: 0.9},
	)
	traverse := model.NewStage("Traverse", model.CategoryStatic, 10)
	return &catalog.Catalog{
		Materials: []model.Material{board},
		Products:  []model.Product{step},
		Stages:    []model.Stage{traverse},
	}
}

func TestParseOrderText_ProductsAndStages(t *testing.T) {
	cat := importCatalog()
	text := `Order #4021 for Pine Grove Park

Product "Step" - 3 pcs
Stage "Traverse" - 12.5 m

Delivery by end of month.`

	lines, err := ParseOrderText(cat, text)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	assert.Equal(t, model.LineProduct, lines[0].Kind)
	assert.Equal(t, cat.FindProductByName("Step").ID, lines[0].RefID)
	assert.Equal(t, 3.0, lines[0].Quantity)

	assert.Equal(t, model.LineStage, lines[1].Kind)
	assert.Equal(t, cat.FindStageByName("Traverse").ID, lines[1].RefID)
	assert.Equal(t, 12.5, lines[1].LengthM)
}

func TestParseOrderText_UnknownNamesCollectedIntoOneError(t *testing.T) {
	cat := importCatalog()
	text := `Product "Step" - 1 pcs
Product "Ghost Tower" - 2 pcs
Stage "Sky Walk" - 8 m`

	lines, err := ParseOrderText(cat, text)
	require.Error(t, err)
	assert.Nil(t, lines)
	assert.Contains(t, err.Error(), `product "Ghost Tower"`)
	assert.Contains(t, err.Error(), `stage "Sky Walk"`)
}

func TestParseOrderText_NoPositions(t *testing.T) {
	_, err := ParseOrderText(importCatalog(), "just a note, nothing to build")
	require.Error(t, err)
}

func writeOrderWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "order.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportOrderXLSX_ReadsFirstSheet(t *testing.T) {
	cat := importCatalog()
	path := writeOrderWorkbook(t, [][]interface{}{
		{"kind", "name", "value"},
		{"product", "Step", 3},
		{"stage", "Traverse", 12.5},
	})

	lines, err := ImportOrderXLSX(cat, path)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, 3.0, lines[0].Quantity)
	assert.Equal(t, 12.5, lines[1].LengthM)
}

func TestImportOrderXLSX_CollectsRowProblems(t *testing.T) {
	cat := importCatalog()
	path := writeOrderWorkbook(t, [][]interface{}{
		{"product", "Ghost Tower", 2},
		{"stage", "Traverse", "twelve"},
		{"widget", "Step", 1},
	})

	_, err := ImportOrderXLSX(cat, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `product "Ghost Tower" missing`)
	assert.Contains(t, err.Error(), `bad value "twelve"`)
	assert.Contains(t, err.Error(), `unknown kind "widget"`)
}

func TestImportOrderXLSX_MissingFile(t *testing.T) {
	_, err := ImportOrderXLSX(importCatalog(), filepath.Join(t.TempDir(), "nope.xlsx"))
	require.Error(t, err)
}
