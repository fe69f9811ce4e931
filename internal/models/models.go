package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Inputs holds the five free-text fields of the automatic mode.
type Inputs struct {
	Strategic        string `yaml:"strategic" json:"strategic"`
	Annual           string `yaml:"annual" json:"annual"`
	Priorities       string `yaml:"priorities" json:"priorities"`
	KPIs             string `yaml:"kpis" json:"kpis"`
	Responsibilities string `yaml:"responsibilities" json:"responsibilities"`
}

// Missing returns the labels of the empty fields, in form order.
func (in Inputs) Missing() []string {
	var missing []string
	for _, f := range []struct{ label, value string }{
		{"Strategic Objective(s)", in.Strategic},
		{"Annual Objectives", in.Annual},
		{"Improvement Priorities", in.Priorities},
		{"Key Performance Indicators (KPIs)", in.KPIs},
		{"Responsibilities", in.Responsibilities},
	} {
		if f.value == "" {
			missing = append(missing, f.label)
		}
	}
	return missing
}

// ParsedTable is a rectangular grid extracted from a markdown pipe table.
// Header is nil for an anonymous single-row table.
type ParsedTable struct {
	Header []string   `json:"header,omitempty"`
	Rows   [][]string `json:"rows"`
}

func (t ParsedTable) Anonymous() bool {
	return t.Header == nil
}

func (t ParsedTable) Width() int {
	if t.Header != nil {
		return len(t.Header)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// Columns returns the header, or positional labels "0".."n-1" for an
// anonymous table.
func (t ParsedTable) Columns() []string {
	if t.Header != nil {
		return t.Header
	}
	cols := make([]string, t.Width())
	for i := range cols {
		cols[i] = strconv.Itoa(i)
	}
	return cols
}

// Markdown serializes the table back into a pipe table.
func (t ParsedTable) Markdown() string {
	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("| ")
		b.WriteString(strings.Join(cells, " | "))
		b.WriteString(" |\n")
	}
	if t.Header != nil {
		writeRow(t.Header)
		sep := make([]string, len(t.Header))
		for i := range sep {
			sep[i] = "---"
		}
		writeRow(sep)
	}
	for _, row := range t.Rows {
		writeRow(row)
	}
	return b.String()
}

// Relation is the strength of the link between two planning entities.
type Relation string

const (
	RelationNone      Relation = ""
	RelationPrimary   Relation = "O"
	RelationSecondary Relation = "X"
)

// Relations is the closed set offered by the selectors, in display order.
var Relations = []Relation{RelationNone, RelationPrimary, RelationSecondary}

func ParseRelation(s string) (Relation, error) {
	switch r := Relation(strings.TrimSpace(s)); r {
	case RelationNone, RelationPrimary, RelationSecondary:
		return r, nil
	default:
		return RelationNone, fmt.Errorf("invalid relation symbol %q", s)
	}
}

func (r Relation) Describe() string {
	switch r {
	case RelationPrimary:
		return "primary relation"
	case RelationSecondary:
		return "secondary relation"
	default:
		return "no relation"
	}
}

// RelationMatrix maps a row entity to a column entity to a relation symbol.
// Rows and Columns keep the entry order of the user's lists.
type RelationMatrix struct {
	Name    string
	Rows    []string
	Columns []string
	Cells   map[string]map[string]Relation
}

func NewRelationMatrix(name string, rows, cols []string) RelationMatrix {
	m := RelationMatrix{
		Name:    name,
		Rows:    rows,
		Columns: cols,
		Cells:   make(map[string]map[string]Relation, len(rows)),
	}
	for _, r := range rows {
		m.Cells[r] = make(map[string]Relation, len(cols))
		for _, c := range cols {
			m.Cells[r][c] = RelationNone
		}
	}
	return m
}

func (m RelationMatrix) Get(row, col string) Relation {
	return m.Cells[row][col]
}

// Set records rel for the pair; unknown rows or columns are ignored.
func (m RelationMatrix) Set(row, col string, rel Relation) {
	cols, ok := m.Cells[row]
	if !ok {
		return
	}
	if _, ok := cols[col]; !ok {
		return
	}
	cols[col] = rel
}

// SuggestionTable is the category/suggestion summary written to the
// Suggestions sheet.
type SuggestionTable struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Mode selects the workflow of a session.
type Mode int

const (
	ModeAutomatic Mode = iota
	ModeManual
)

func (m Mode) String() string {
	switch m {
	case ModeManual:
		return "manual"
	default:
		return "automatic"
	}
}

func (m Mode) Title() string {
	switch m {
	case ModeManual:
		return "Manual"
	default:
		return "Automatic (AI)"
	}
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "automatic", "auto", "automatic (ai)":
		return ModeAutomatic, nil
	case "manual":
		return ModeManual, nil
	default:
		return ModeAutomatic, fmt.Errorf("unknown mode %q", s)
	}
}
