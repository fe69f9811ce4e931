package parser

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"hoshin-matrix/internal/export"
	"hoshin-matrix/internal/models"

	"github.com/xuri/excelize/v2"
)

func manualMatrices() []models.RelationMatrix {
	sa := models.NewRelationMatrix(models.ManualSheets[0], []string{"Grow revenue"}, []string{"Expand markets", "Retain clients"})
	sa.Set("Grow revenue", "Expand markets", models.RelationPrimary)
	ap := models.NewRelationMatrix(models.ManualSheets[1], []string{"Expand markets", "Retain clients"}, []string{"Lead gen"})
	ap.Set("Retain clients", "Lead gen", models.RelationSecondary)
	pk := models.NewRelationMatrix(models.ManualSheets[2], []string{"Lead gen"}, []string{"New customers"})
	pr := models.NewRelationMatrix(models.ManualSheets[3], []string{"Lead gen"}, []string{"Ana"})
	pr.Set("Lead gen", "Ana", models.RelationPrimary)
	return []models.RelationMatrix{sa, ap, pk, pr}
}

func TestParseManualWorkbook_RoundTrip(t *testing.T) {
	want := manualMatrices()
	data, err := export.ManualWorkbook(want)
	if err != nil {
		t.Fatalf("ManualWorkbook() error = %v", err)
	}

	got, err := ParseManualWorkbook(data)
	if err != nil {
		t.Fatalf("ParseManualWorkbook() error = %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d matrices, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Name != want[i].Name {
			t.Errorf("matrix %d name = %q, want %q", i, got[i].Name, want[i].Name)
		}
		if !reflect.DeepEqual(got[i].Rows, want[i].Rows) || !reflect.DeepEqual(got[i].Columns, want[i].Columns) {
			t.Errorf("matrix %d axes = %v x %v, want %v x %v", i, got[i].Rows, got[i].Columns, want[i].Rows, want[i].Columns)
		}
		if !reflect.DeepEqual(got[i].Cells, want[i].Cells) {
			t.Errorf("matrix %d cells = %v, want %v", i, got[i].Cells, want[i].Cells)
		}
	}
}

func TestParseManualWorkbook_MissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error = %v", err)
	}

	_, err = ParseManualWorkbook(buf.Bytes())
	if err == nil || !strings.Contains(err.Error(), "Strategic-Annual") {
		t.Fatalf("expected missing sheet error, got %v", err)
	}
}

func TestParseManualWorkbook_BadSymbol(t *testing.T) {
	matrices := manualMatrices()
	matrices[2].Cells["Lead gen"]["New customers"] = "maybe"
	data, err := export.ManualWorkbook(matrices)
	if err != nil {
		t.Fatalf("ManualWorkbook() error = %v", err)
	}
	if _, err := ParseManualWorkbook(data); err == nil {
		t.Fatal("expected error for unknown relation symbol")
	}
}

func TestParseManualWorkbook_NotAWorkbook(t *testing.T) {
	if _, err := ParseManualWorkbook(bytes.Repeat([]byte("x"), 16)); err == nil {
		t.Fatal("expected error for garbage input")
	}
}
