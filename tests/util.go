package testutil

import (
	"testing"

	"github.com/raihan7913/devsecop-sub001/core/workbook"
)

// Row builds a row from strings, float64 and nil (empty) values.
func Row(t *testing.T, values ...interface{}) workbook.Row {
	row := make(workbook.Row, len(values))
	for i, v := range values {
		switch val := v.(type) {
		case nil:
			row[i] = workbook.Empty
		case string:
			row[i] = workbook.Text(val)
		case int:
			row[i] = workbook.Number(float64(val))
		case float64:
			row[i] = workbook.Number(val)
		default:
			t.Fatalf("Row(): unsupported cell value %#v", v)
		}
	}
	return row
}

// MetadataGrid builds the learning-outcome sheet of a curriculum document.
func MetadataGrid(t *testing.T, title string, phaseHeaders, descriptions []string) workbook.Grid {
	return workbook.Grid{
		{},
		Row(t, title),
		{},
		{},
		textRow(phaseHeaders),
		textRow(descriptions),
	}
}

// ObjectiveGrid builds an objective sheet with headers on row 4 and data from row 5.
func ObjectiveGrid(t *testing.T, headers []string, rows ...workbook.Row) workbook.Grid {
	grid := workbook.Grid{
		{},
		Row(t, "ALUR TUJUAN PEMBELAJARAN"),
		{},
		{},
		textRow(headers),
	}
	return append(grid, rows...)
}

// EncodeWorkbook writes the sheets, in order, as xlsx bytes.
func EncodeWorkbook(t *testing.T, sheets ...workbook.Sheet) []byte {
	wb := workbook.NewWorkbook()
	for _, s := range sheets {
		wb.SetSheet(s.Name, s.Grid)
	}
	data, err := workbook.Encode(wb)
	if err != nil {
		t.Fatalf("EncodeWorkbook() failed: %v", err)
	}
	return data
}

func textRow(values []string) workbook.Row {
	row := make(workbook.Row, len(values))
	for i, v := range values {
		row[i] = workbook.Text(v)
	}
	return row
}
