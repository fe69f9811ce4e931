package parser

import (
	"regexp"
	"strings"

	"hoshin-matrix/internal/models"
)

var (
	tableBlockRe   = regexp.MustCompile(models.TableBlockRegex)
	separatorRowRe = regexp.MustCompile(models.SeparatorRowRegex)
)

// TableOptions tunes ExtractTables.
type TableOptions struct {
	// KeepSingleRow keeps blocks that reduce to one row as anonymous tables
	// instead of dropping them.
	KeepSingleRow bool
}

// ExtractTables returns every rectangular pipe table found in text, in order.
// Ragged blocks are skipped without error.
func ExtractTables(text string, opts TableOptions) []models.ParsedTable {
	var tables []models.ParsedTable
	for _, block := range tableBlockRe.FindAllString(text, -1) {
		rows := blockRows(block)
		if !rectangular(rows) {
			continue
		}
		switch {
		case len(rows) > 1:
			tables = append(tables, models.ParsedTable{Header: rows[0], Rows: rows[1:]})
		case opts.KeepSingleRow:
			tables = append(tables, models.ParsedTable{Rows: rows})
		}
	}
	return tables
}

func blockRows(block string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		if !strings.HasPrefix(line, "|") || !strings.HasSuffix(line, "|") {
			continue
		}
		if separatorRowRe.MatchString(line) {
			continue
		}
		rows = append(rows, splitRow(line))
	}
	return rows
}

// splitRow drops the fragments outside the boundary pipes and trims each cell.
func splitRow(line string) []string {
	parts := strings.Split(line, "|")
	if len(parts) < 2 {
		return nil
	}
	parts = parts[1 : len(parts)-1]
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// width is compared against the first row only
func rectangular(rows [][]string) bool {
	if len(rows) == 0 {
		return false
	}
	width := len(rows[0])
	for _, row := range rows[1:] {
		if len(row) != width {
			return false
		}
	}
	return true
}
