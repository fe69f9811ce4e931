package models

import (
	"reflect"
	"testing"
)

func TestInputsMissing(t *testing.T) {
	full := Inputs{"a", "b", "c", "d", "e"}
	if got := full.Missing(); got != nil {
		t.Errorf("Missing() = %v, want nil", got)
	}

	partial := Inputs{Strategic: "a", KPIs: " "}
	want := []string{"Annual Objectives", "Improvement Priorities", "Responsibilities"}
	if got := partial.Missing(); !reflect.DeepEqual(got, want) {
		t.Errorf("Missing() = %v, want %v", got, want)
	}
}

func TestParsedTableColumns(t *testing.T) {
	named := ParsedTable{Header: []string{"A", "B"}, Rows: [][]string{{"1", "2"}}}
	if got := named.Columns(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Errorf("Columns() = %v", got)
	}

	anon := ParsedTable{Rows: [][]string{{"x", "y", "z"}}}
	if !anon.Anonymous() {
		t.Error("table without header should be anonymous")
	}
	if got := anon.Columns(); !reflect.DeepEqual(got, []string{"0", "1", "2"}) {
		t.Errorf("Columns() = %v", got)
	}
}

func TestParsedTableMarkdown(t *testing.T) {
	table := ParsedTable{
		Header: []string{"Strategic", "Expand"},
		Rows:   [][]string{{"Grow revenue", "O"}},
	}
	want := "| Strategic | Expand |\n| --- | --- |\n| Grow revenue | O |\n"
	if got := table.Markdown(); got != want {
		t.Errorf("Markdown() = %q, want %q", got, want)
	}
}

func TestParseRelation(t *testing.T) {
	tests := []struct {
		in      string
		want    Relation
		wantErr bool
	}{
		{"", RelationNone, false},
		{"O", RelationPrimary, false},
		{" X ", RelationSecondary, false},
		{"o", RelationNone, true},
		{"Y", RelationNone, true},
	}
	for _, tt := range tests {
		got, err := ParseRelation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRelation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRelation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRelationMatrixSet(t *testing.T) {
	m := NewRelationMatrix("Strategic-Annual", []string{"Grow revenue"}, []string{"Expand markets"})
	m.Set("Grow revenue", "Expand markets", RelationPrimary)
	m.Set("Unknown", "Expand markets", RelationSecondary)
	m.Set("Grow revenue", "Unknown", RelationSecondary)

	want := map[string]map[string]Relation{"Grow revenue": {"Expand markets": "O"}}
	if !reflect.DeepEqual(m.Cells, want) {
		t.Errorf("Cells = %v, want %v", m.Cells, want)
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{
		"automatic":      ModeAutomatic,
		"Automatic (AI)": ModeAutomatic,
		"manual":         ModeManual,
	} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("wizard"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
