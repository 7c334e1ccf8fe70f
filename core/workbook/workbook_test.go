package workbook

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func objectivesGrid() Grid {
	return Grid{
		{Text("ATP Matematika Fase A")},
		{Text("Sekolah"), Text("SD Contoh")},
		{},
		{Text("Semester"), Empty, Text("Ganjil / Genap")},
		{Text("Kelas"), Text("Semester"), Text("Tujuan Pembelajaran"), Text("JP")},
		{Number(1), Text("1"), Text("Mengenal bilangan"), Number(4)},
		{Text("2 Calakan"), Text("Semester 2"), Text("Penjumlahan"), Number(6.5)},
	}
}

func TestCell_String(t *testing.T) {
	tests := []struct {
		name string
		cell Cell
		want string
	}{
		{name: "empty", cell: Empty, want: ""},
		{name: "text", cell: Text("Fase A"), want: "Fase A"},
		{name: "integer", cell: Number(3), want: "3"},
		{name: "fraction", cell: Number(1.25), want: "1.25"},
		{name: "empty text", cell: Text(""), want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cell.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCell_JSON(t *testing.T) {
	data, err := json.Marshal(Record{"a": Number(2), "b": Text("x"), "c": Empty})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a": 2, "b": "x", "c": ""}`, string(data))

	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{"a": 2, "b": "x", "c": "", "d": null, "e": true}`), &rec))
	assert.Equal(t, Record{"a": Number(2), "b": Text("x"), "c": Empty, "d": Empty, "e": Text("true")}, rec)

	var c Cell
	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &c))
}

func TestGrid_Trim(t *testing.T) {
	g := Grid{{Text("a"), Empty, Empty}, {}, {Empty}}
	got := g.TrimBottom()
	assert.Len(t, got, 1)
	assert.Equal(t, Row{Text("a")}, got[0].TrimRight())
	assert.Equal(t, Empty, got.Cell(5, 5))
}

func TestWorkbook_SheetLookup(t *testing.T) {
	wb := NewWorkbook()
	wb.SetSheet("CP", Grid{{Text("x")}})
	wb.SetSheet("ATP Matematika Fase A", nil)
	wb.SetSheet("CP", Grid{{Text("y")}})

	assert.Equal(t, []string{"CP", "ATP Matematika Fase A"}, wb.SheetNames())

	g, ok := wb.Sheet("CP")
	assert.True(t, ok)
	assert.Equal(t, Grid{{Text("y")}}, g)

	_, ok = wb.Sheet("atp matematika fase a")
	assert.False(t, ok)

	s, ok := wb.SheetFold("atp matematika fase a")
	assert.True(t, ok)
	assert.Equal(t, "ATP Matematika Fase A", s.Name)

	first, ok := wb.First()
	assert.True(t, ok)
	assert.Equal(t, "CP", first.Name)
}

func TestEncodeDecode(t *testing.T) {
	wb := NewWorkbook()
	wb.SetSheet("CP", Grid{{Text("CAPAIAN PEMBELAJARAN MATEMATIKA")}})
	wb.SetSheet("ATP Matematika Fase A", objectivesGrid())

	data, err := Encode(wb)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, wb.SheetNames(), got.SheetNames())

	g, ok := got.Sheet("ATP Matematika Fase A")
	require.True(t, ok)
	want := objectivesGrid()
	want[2] = Row{}
	assert.Equal(t, want, g)

	first, err := DecodeFirstSheet(data)
	require.NoError(t, err)
	assert.Equal(t, "CP", first.Name)
}

func TestDecode_ExcelizeFile(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Fase A"))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", 7))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", "tail"))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	wb, err := Decode(buf.Bytes())
	require.NoError(t, err)
	g, ok := wb.Sheet("Sheet1")
	require.True(t, ok)
	assert.Equal(t, Grid{
		{Text("Fase A"), Empty, Number(7)},
		{},
		{Empty, Text("tail")},
	}, g)
}

func TestDecode_Invalid(t *testing.T) {
	_, err := Decode([]byte("definitely not a zip"))
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestReplaceRows(t *testing.T) {
	wb := NewWorkbook()
	wb.SetSheet("CP", Grid{{Text("keep me")}})
	wb.SetSheet("ATP Matematika Fase A", objectivesGrid())
	data, err := Encode(wb)
	require.NoError(t, err)

	rows := Grid{{Number(3), Text("2"), Text("Perkalian")}}
	out, err := ReplaceRows(data, "ATP Matematika Fase A", FirstDataRow, rows)
	require.NoError(t, err)

	got, err := Decode(out)
	require.NoError(t, err)

	g, _ := got.Sheet("ATP Matematika Fase A")
	orig := objectivesGrid()
	assert.Len(t, g, FirstDataRow+1)
	assert.Equal(t, orig[HeaderRow], g[HeaderRow])
	assert.Equal(t, orig[0], g[0])
	assert.Equal(t, rows[0], g[FirstDataRow])

	cp, _ := got.Sheet("CP")
	assert.Equal(t, Grid{{Text("keep me")}}, cp)
}

func TestProjectUnproject(t *testing.T) {
	g := objectivesGrid()
	headers, records := Project(g)

	assert.Equal(t, []string{"Kelas", "Semester", "Tujuan Pembelajaran", "JP"}, headers)
	require.Len(t, records, 2)
	assert.Equal(t, Record{
		"Kelas": Number(1), "Semester": Text("1"), "Tujuan Pembelajaran": Text("Mengenal bilangan"), "JP": Number(4),
	}, records[0])

	assert.Equal(t, g, Unproject(headers, records, g))
}

func TestProject_SkipsEmptyRowsAndPadsMissingCells(t *testing.T) {
	g := objectivesGrid()
	g = append(g, Row{}, Row{Empty, Empty, Text("Pengurangan")})

	_, records := Project(g)
	require.Len(t, records, 3)
	assert.Equal(t, Empty, records[2]["Kelas"])
	assert.Equal(t, Empty, records[2]["JP"])
	assert.Equal(t, Text("Pengurangan"), records[2]["Tujuan Pembelajaran"])
}

func TestProject_NoHeader(t *testing.T) {
	headers, records := Project(Grid{{Text("only title")}})
	assert.Empty(t, headers)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCheckColumns(t *testing.T) {
	headers := []string{"Kelas", "Semester"}
	tests := []struct {
		name    string
		records []Record
		unknown []string
	}{
		{name: "empty batch"},
		{name: "known keys", records: []Record{{"Kelas": Number(1)}}},
		{name: "unknown key", records: []Record{{"Kelas": Number(1), "Nope": Empty, "Bad": Empty}}, unknown: []string{"Bad", "Nope"}},
		{name: "only first record checked", records: []Record{{"Kelas": Number(1)}, {"Nope": Empty}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckColumns(headers, tt.records)
			if tt.unknown == nil {
				assert.NoError(t, err)
				return
			}
			var ucErr *UnknownColumnError
			require.ErrorAs(t, err, &ucErr)
			assert.Equal(t, tt.unknown, ucErr.Unknown)
			assert.Equal(t, headers, ucErr.Valid)
		})
	}
}
