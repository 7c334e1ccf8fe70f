package workbook

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/raihan7913/devsecop-sub001/core"
)

// ErrInvalidDocument is returned when bytes cannot be read as an xlsx workbook.
var ErrInvalidDocument = errors.New("invalid spreadsheet document")

// Decode reads every sheet of an xlsx document, keeping sheet order.
// Numeric cells decode as Number, everything else non-empty as Text.
// Trailing empty cells and rows are dropped.
func Decode(data []byte) (*Workbook, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDocument, err.Error())
	}
	defer f.Close()

	wb := NewWorkbook()
	for _, name := range f.GetSheetList() {
		grid, err := readGrid(f, name)
		if err != nil {
			return nil, errors.Wrapf(err, "reading sheet %q", name)
		}
		wb.SetSheet(name, grid)
	}
	return wb, nil
}

// DecodeFirstSheet returns the first sheet of the document.
func DecodeFirstSheet(data []byte) (Sheet, error) {
	wb, err := Decode(data)
	if err != nil {
		return Sheet{}, err
	}
	sheet, ok := wb.First()
	if !ok {
		return Sheet{}, errors.Wrap(ErrInvalidDocument, "workbook has no sheets")
	}
	return sheet, nil
}

func readGrid(f *excelize.File, sheet string) (Grid, error) {
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	formatted, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	grid := make(Grid, 0, len(raw))
	for r, values := range raw {
		row := make(Row, len(values))
		for c, value := range values {
			if value == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return nil, err
			}
			typ, err := f.GetCellType(sheet, axis)
			if err != nil {
				return nil, err
			}
			row[c] = parseCell(typ, value, formattedValue(formatted, r, c))
		}
		grid = append(grid, row.TrimRight())
	}
	return grid.TrimBottom(), nil
}

func formattedValue(rows [][]string, r, c int) string {
	if r >= len(rows) || c >= len(rows[r]) {
		return ""
	}
	return rows[r][c]
}

func parseCell(typ excelize.CellType, raw, formatted string) Cell {
	switch typ {
	case excelize.CellTypeNumber, excelize.CellTypeUnset, excelize.CellTypeDate:
		if n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return Number(n)
		}
		return Text(raw)
	case excelize.CellTypeBool, excelize.CellTypeError:
		return Text(formatted)
	default:
		return Text(raw)
	}
}

// Encode writes the workbook as a fresh xlsx document.
func Encode(wb *Workbook) ([]byte, error) {
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, errors.New("cannot encode a workbook without sheets")
	}

	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet.Name); err != nil {
				return nil, errors.Wrapf(err, "naming sheet %q", sheet.Name)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			return nil, errors.Wrapf(err, "creating sheet %q", sheet.Name)
		}
		if err := writeRows(f, sheet.Name, 0, sheet.Grid); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "encoding workbook")
	}
	return buf.Bytes(), nil
}

// ReplaceRows rewrites one sheet of an existing document: rows with index
// >= keep are removed and rows are written from index keep on. Other sheets
// and the first keep rows stay untouched.
func ReplaceRows(data []byte, sheet string, keep int, rows Grid) ([]byte, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDocument, err.Error())
	}
	defer f.Close()

	existing, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "reading sheet %q", sheet)
	}
	for r := len(existing); r > keep; r-- {
		if err := f.RemoveRow(sheet, r); err != nil {
			return nil, errors.Wrapf(err, "removing row %d of %q", r, sheet)
		}
	}
	if err := writeRows(f, sheet, keep, rows); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "encoding workbook")
	}
	return buf.Bytes(), nil
}

func writeRows(f *excelize.File, sheet string, offset int, rows Grid) error {
	for r, row := range rows {
		for c, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(c+1, offset+r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, axis, cell.Value()); err != nil {
				return errors.Wrapf(err, "writing %s!%s", sheet, axis)
			}
		}
	}
	return nil
}

// Read loads and decodes the document stored at path.
func Read(store core.FileStore, path string) (*Workbook, []byte, error) {
	data, err := store.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	wb, err := Decode(data)
	if err != nil {
		return nil, nil, err
	}
	return wb, data, nil
}

// Write stores data at path, replacing any previous file.
func Write(store core.FileStore, path string, data []byte) error {
	return errors.Wrapf(store.WriteFile(path, data), "writing %s", path)
}
