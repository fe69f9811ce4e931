// Package export writes parsed tables and relation matrices into in-memory
// xlsx workbooks.
package export

import (
	"errors"
	"fmt"

	"hoshin-matrix/internal/models"

	"github.com/xuri/excelize/v2"
)

// ErrTooFewTables is returned when the matrix response did not yield the four
// expected tables.
var ErrTooFewTables = errors.New("too few tables to export")

const (
	defaultSheet    = "Sheet1"
	indexColWidth   = 28
	suggestionWidth = 90
)

type workbook struct {
	f          *excelize.File
	sheets     int
	headerCell int
	wrapCell   int
}

func newWorkbook() (*workbook, error) {
	f := excelize.NewFile()
	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	wrap, err := f.NewStyle(&excelize.Style{Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"}})
	if err != nil {
		f.Close()
		return nil, err
	}
	return &workbook{f: f, headerCell: header, wrapCell: wrap}, nil
}

// addSheet renames the default sheet for the first call and appends after that.
func (w *workbook) addSheet(name string) error {
	defer func() { w.sheets++ }()
	if w.sheets == 0 {
		return w.f.SetSheetName(defaultSheet, name)
	}
	_, err := w.f.NewSheet(name)
	return err
}

// writeGrid writes the header row followed by rows, starting at A1.
func (w *workbook) writeGrid(sheet string, header []string, rows [][]string) error {
	if err := w.writeRow(sheet, 1, header); err != nil {
		return err
	}
	if len(header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return err
		}
		if err := w.f.SetCellStyle(sheet, "A1", last, w.headerCell); err != nil {
			return err
		}
	}
	for i, row := range rows {
		if err := w.writeRow(sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func (w *workbook) writeRow(sheet string, row int, cells []string) error {
	if len(cells) == 0 {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}
	return w.f.SetSheetRow(sheet, cell, &values)
}

func (w *workbook) close() {
	w.f.Close()
}

func (w *workbook) bytes() ([]byte, error) {
	w.f.SetActiveSheet(0)
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// AutomaticWorkbook writes the first four tables and the suggestion summary,
// one sheet each. Tables are written header first with no index column.
func AutomaticWorkbook(tables []models.ParsedTable, suggestions models.SuggestionTable) ([]byte, error) {
	if len(tables) < models.MinTables {
		return nil, fmt.Errorf("%w: got %d, need %d", ErrTooFewTables, len(tables), models.MinTables)
	}

	w, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	defer w.close()

	for i, table := range tables[:models.MinTables] {
		name := models.AutomaticSheets[i]
		if err := w.addSheet(name); err != nil {
			return nil, err
		}
		if err := w.writeGrid(name, table.Columns(), table.Rows); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
	}

	if err := w.addSheet(models.SuggestionsSheet); err != nil {
		return nil, err
	}
	if err := w.writeSuggestions(suggestions); err != nil {
		return nil, fmt.Errorf("failed to write sheet %s: %w", models.SuggestionsSheet, err)
	}

	return w.bytes()
}

func (w *workbook) writeSuggestions(s models.SuggestionTable) error {
	sheet := models.SuggestionsSheet
	if err := w.writeGrid(sheet, s.Header, s.Rows); err != nil {
		return err
	}
	if len(s.Header) == 0 || len(s.Rows) == 0 {
		return nil
	}
	lastCol, err := excelize.ColumnNumberToName(len(s.Header))
	if err != nil {
		return err
	}
	if err := w.f.SetColWidth(sheet, lastCol, lastCol, suggestionWidth); err != nil {
		return err
	}
	if len(s.Header) > 1 {
		if err := w.f.SetColWidth(sheet, "A", "A", indexColWidth); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(s.Header), len(s.Rows)+1)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(sheet, "A2", last, w.wrapCell)
}

// ManualWorkbook writes each matrix row-major with its row entity as the
// index column and an empty top-left cell.
func ManualWorkbook(matrices []models.RelationMatrix) ([]byte, error) {
	if len(matrices) != len(models.ManualSheets) {
		return nil, fmt.Errorf("expected %d matrices, got %d", len(models.ManualSheets), len(matrices))
	}

	w, err := newWorkbook()
	if err != nil {
		return nil, err
	}
	defer w.close()

	for i, m := range matrices {
		name := models.ManualSheets[i]
		if err := w.addSheet(name); err != nil {
			return nil, err
		}
		header, rows := matrixGrid(m)
		if err := w.writeGrid(name, header, rows); err != nil {
			return nil, fmt.Errorf("failed to write sheet %s: %w", name, err)
		}
		if err := w.f.SetColWidth(name, "A", "A", indexColWidth); err != nil {
			return nil, err
		}
	}

	return w.bytes()
}

func matrixGrid(m models.RelationMatrix) ([]string, [][]string) {
	header := append([]string{""}, m.Columns...)
	rows := make([][]string, 0, len(m.Rows))
	for _, r := range m.Rows {
		row := make([]string, 0, len(m.Columns)+1)
		row = append(row, r)
		for _, c := range m.Columns {
			row = append(row, string(m.Get(r, c)))
		}
		rows = append(rows, row)
	}
	return header, rows
}
