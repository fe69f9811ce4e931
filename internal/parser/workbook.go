package parser

import (
	"fmt"
	"strings"

	"hoshin-matrix/internal/models"

	"github.com/tealeg/xlsx"
)

// ParseManualWorkbook reads a workbook written by the manual export back into
// its four relation matrices, in sheet order.
func ParseManualWorkbook(data []byte) ([]models.RelationMatrix, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}

	matrices := make([]models.RelationMatrix, 0, len(models.ManualSheets))
	for _, name := range models.ManualSheets {
		sheet, ok := f.Sheet[name]
		if !ok {
			return nil, fmt.Errorf("workbook has no sheet %q", name)
		}
		m, err := parseMatrixSheet(name, sheet)
		if err != nil {
			return nil, err
		}
		matrices = append(matrices, m)
	}
	return matrices, nil
}

// The first row holds the column entities after an empty corner cell; every
// following row starts with its row entity.
func parseMatrixSheet(name string, sheet *xlsx.Sheet) (models.RelationMatrix, error) {
	var grid [][]string
	for _, row := range sheet.Rows {
		if row == nil {
			continue
		}
		cells := make([]string, len(row.Cells))
		for i, cell := range row.Cells {
			cells[i] = strings.TrimSpace(cell.String())
		}
		grid = append(grid, cells)
	}
	if len(grid) == 0 {
		return models.NewRelationMatrix(name, nil, nil), nil
	}

	type column struct {
		pos  int
		name string
	}
	var header []column
	var cols []string
	for pos := 1; pos < len(grid[0]); pos++ {
		if c := grid[0][pos]; c != "" {
			header = append(header, column{pos: pos, name: c})
			cols = append(cols, c)
		}
	}

	var rows []string
	for _, r := range grid[1:] {
		if len(r) > 0 && r[0] != "" {
			rows = append(rows, r[0])
		}
	}

	m := models.NewRelationMatrix(name, rows, cols)
	for _, r := range grid[1:] {
		if len(r) == 0 || r[0] == "" {
			continue
		}
		for _, col := range header {
			if col.pos >= len(r) {
				break
			}
			rel, err := models.ParseRelation(r[col.pos])
			if err != nil {
				return models.RelationMatrix{}, fmt.Errorf("sheet %q row %q column %q: %w", name, r[0], col.name, err)
			}
			m.Set(r[0], col.name, rel)
		}
	}
	return m, nil
}
