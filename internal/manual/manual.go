// Package manual builds the four relation matrices from lists and selector
// values entered by hand.
package manual

import (
	"fmt"
	"net/url"
	"strings"

	"hoshin-matrix/internal/models"
)

// Level is one of the five planning levels.
type Level int

const (
	LevelStrategic Level = iota
	LevelAnnual
	LevelPriorities
	LevelKPIs
	LevelResponsibles
)

var levelTitles = map[Level]string{
	LevelStrategic:    "Strategic Objectives",
	LevelAnnual:       "Annual Objectives",
	LevelPriorities:   "Improvement Priorities",
	LevelKPIs:         "KPIs",
	LevelResponsibles: "Responsible Persons",
}

func (l Level) Title() string {
	return levelTitles[l]
}

// Plan holds the entities of every level, in entry order.
type Plan struct {
	Strategic    []string
	Annual       []string
	Priorities   []string
	KPIs         []string
	Responsibles []string
}

func (p Plan) Entities(l Level) []string {
	switch l {
	case LevelStrategic:
		return p.Strategic
	case LevelAnnual:
		return p.Annual
	case LevelPriorities:
		return p.Priorities
	case LevelKPIs:
		return p.KPIs
	case LevelResponsibles:
		return p.Responsibles
	}
	return nil
}

// Pair is one of the four matrices: rows from one level, columns from another.
type Pair struct {
	ID    string
	Title string
	Sheet string
	Rows  Level
	Cols  Level
	label string
}

// Label is the text shown next to the selector for a single cell.
func (p Pair) Label(row, col string) string {
	return fmt.Sprintf(p.label, row, col)
}

var Pairs = []Pair{
	{
		ID:    "strat",
		Title: "Strategic and Annual Objectives Relations",
		Sheet: models.ManualSheets[0],
		Rows:  LevelStrategic,
		Cols:  LevelAnnual,
		label: "Relation between strategic '%s' and annual '%s'",
	},
	{
		ID:    "ann",
		Title: "Annual Objectives and Priorities Relations",
		Sheet: models.ManualSheets[1],
		Rows:  LevelAnnual,
		Cols:  LevelPriorities,
		label: "Relation between annual objective '%s' and priority '%s'",
	},
	{
		ID:    "priority",
		Title: "Priorities and KPIs Relations",
		Sheet: models.ManualSheets[2],
		Rows:  LevelPriorities,
		Cols:  LevelKPIs,
		label: "Relation between priority '%s' and KPI '%s'",
	},
	{
		ID:    "resp",
		Title: "Priorities and Responsibilities Relations",
		Sheet: models.ManualSheets[3],
		Rows:  LevelPriorities,
		Cols:  LevelResponsibles,
		label: "Responsibility of '%[2]s' for '%[1]s'",
	},
}

// ParseList splits text on newlines, trims every entry and drops empty and
// repeated ones.
func ParseList(text string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, line)
	}
	return out
}

func ParsePlan(strategic, annual, priorities, kpis, responsibles string) Plan {
	return Plan{
		Strategic:    ParseList(strategic),
		Annual:       ParseList(annual),
		Priorities:   ParseList(priorities),
		KPIs:         ParseList(kpis),
		Responsibles: ParseList(responsibles),
	}
}

// Selections holds the selector values keyed by FieldName.
type Selections map[string]models.Relation

// FieldName is the form field carrying the relation of (row, col) in pair.
// Names are path-escaped so brackets inside them cannot collide.
func FieldName(pair, row, col string) string {
	return fmt.Sprintf("%s[%s][%s]", pair, url.PathEscape(row), url.PathEscape(col))
}

func (s Selections) Get(pair, row, col string) models.Relation {
	return s[FieldName(pair, row, col)]
}

func (s Selections) Set(pair, row, col string, rel models.Relation) {
	s[FieldName(pair, row, col)] = rel
}

// ReadSelections collects the relation of every cell of the plan through get,
// typically a form lookup. Unknown symbols are an error.
func ReadSelections(plan Plan, get func(name string) string) (Selections, error) {
	sel := make(Selections)
	for _, pair := range Pairs {
		for _, row := range plan.Entities(pair.Rows) {
			for _, col := range plan.Entities(pair.Cols) {
				rel, err := models.ParseRelation(get(FieldName(pair.ID, row, col)))
				if err != nil {
					return nil, fmt.Errorf("%s: %w", pair.Label(row, col), err)
				}
				if rel != models.RelationNone {
					sel.Set(pair.ID, row, col, rel)
				}
			}
		}
	}
	return sel, nil
}

// Build returns the four relation matrices of plan. Every row×column cell is
// present; cells without a selection are empty.
func Build(plan Plan, sel Selections) []models.RelationMatrix {
	matrices := make([]models.RelationMatrix, 0, len(Pairs))
	for _, pair := range Pairs {
		rows, cols := plan.Entities(pair.Rows), plan.Entities(pair.Cols)
		m := models.NewRelationMatrix(pair.Sheet, rows, cols)
		for _, r := range rows {
			for _, c := range cols {
				m.Set(r, c, sel.Get(pair.ID, r, c))
			}
		}
		matrices = append(matrices, m)
	}
	return matrices
}

// FromMatrices restores the plan and selections from the four matrices of an
// exported workbook.
func FromMatrices(matrices []models.RelationMatrix) (Plan, Selections, error) {
	if len(matrices) != len(Pairs) {
		return Plan{}, nil, fmt.Errorf("expected %d matrices, got %d", len(Pairs), len(matrices))
	}
	plan := Plan{
		Strategic:    matrices[0].Rows,
		Annual:       firstNonEmpty(matrices[0].Columns, matrices[1].Rows),
		Priorities:   firstNonEmpty(matrices[1].Columns, matrices[2].Rows, matrices[3].Rows),
		KPIs:         matrices[2].Columns,
		Responsibles: matrices[3].Columns,
	}
	sel := make(Selections)
	for i, pair := range Pairs {
		m := matrices[i]
		for _, r := range m.Rows {
			for _, c := range m.Columns {
				if rel := m.Get(r, c); rel != models.RelationNone {
					sel.Set(pair.ID, r, c, rel)
				}
			}
		}
	}
	return plan, sel, nil
}

func firstNonEmpty(lists ...[]string) []string {
	for _, l := range lists {
		if len(l) > 0 {
			return l
		}
	}
	return nil
}

// Text joins a list back into the textarea form.
func Text(list []string) string {
	return strings.Join(list, "\n")
}
