// Package importer turns external order files into order lines resolved
// against a catalog. Supported inputs are the plain-text order sheets the
// sales side produces and xlsx workbooks.
package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/opghpgkh322/SpaceConcept-APP/internal/catalog"
	"github.com/opghpgkh322/SpaceConcept-APP/internal/model"
)

// Order sheets contain lines such as:
//
//	Product "Zigzag" - 3 pcs
//	Stage "Traverse" - 12.5 m
var (
	productLineRe = regexp.MustCompile(`Product\s+"([^"]+)"\s*-\s*(\d+)\s*pcs`)
	stageLineRe   = regexp.MustCompile(`Stage\s+"([^"]+)"\s*-\s*([0-9]+(?:\.[0-9]+)?)\s*m`)
)

// ParseOrderText extracts order lines from a text order sheet. Names are
// matched against the catalog; every unknown name is reported in a single
// error rather than silently skipped.
func ParseOrderText(cat *catalog.Catalog, text string) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	var unknown []string

	for _, m := range productLineRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		qty, _ := strconv.Atoi(m[2])
		product := cat.FindProductByName(name)
		if product == nil {
			unknown = append(unknown, fmt.Sprintf("product %q", name))
			continue
		}
		lines = append(lines, model.ProductLine(product.ID, float64(qty)))
	}

	for _, m := range stageLineRe.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		length, _ := strconv.ParseFloat(m[2], 64)
		stage := cat.FindStageByName(name)
		if stage == nil {
			unknown = append(unknown, fmt.Sprintf("stage %q", name))
			continue
		}
		lines = append(lines, model.StageLine(stage.ID, length))
	}

	if len(unknown) > 0 {
		return nil, fmt.Errorf("order references items missing from the catalog: %s", strings.Join(unknown, ", "))
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no order positions found in the file")
	}
	return lines, nil
}

// ImportOrderXLSX reads order lines from the first sheet of an xlsx
// workbook. Expected columns: kind ("product" or "stage"), name, and
// quantity (products) or length in meters (stages). A header row whose
// first cell is "kind" is skipped.
func ImportOrderXLSX(cat *catalog.Catalog, path string) ([]model.OrderLine, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open order workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("order workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}

	var lines []model.OrderLine
	var problems []string

	for i, row := range rows {
		if len(row) == 0 || (len(row) > 0 && strings.TrimSpace(row[0]) == "") {
			continue
		}
		kind := strings.ToLower(strings.TrimSpace(row[0]))
		if i == 0 && kind == "kind" {
			continue
		}
		if len(row) < 3 {
			problems = append(problems, fmt.Sprintf("row %d: expected kind, name, value", i+1))
			continue
		}
		name := strings.TrimSpace(row[1])
		value, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil || value <= 0 {
			problems = append(problems, fmt.Sprintf("row %d: bad value %q", i+1, row[2]))
			continue
		}

		switch kind {
		case "product":
			product := cat.FindProductByName(name)
			if product == nil {
				problems = append(problems, fmt.Sprintf("row %d: product %q missing from the catalog", i+1, name))
				continue
			}
			lines = append(lines, model.ProductLine(product.ID, value))
		case "stage":
			stage := cat.FindStageByName(name)
			if stage == nil {
				problems = append(problems, fmt.Sprintf("row %d: stage %q missing from the catalog", i+1, name))
				continue
			}
			lines = append(lines, model.StageLine(stage.ID, value))
		default:
			problems = append(problems, fmt.Sprintf("row %d: unknown kind %q", i+1, row[0]))
		}
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("order import failed:\n  %s", strings.Join(problems, "\n  "))
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no order positions found in %s", path)
	}
	return lines, nil
}
