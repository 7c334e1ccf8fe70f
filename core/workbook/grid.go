package workbook

import "strings"

type (
	Row  []Cell
	Grid []Row

	Sheet struct {
		Name string
		Grid Grid
	}

	// Workbook is an ordered set of named sheets.
	Workbook struct {
		sheets []Sheet
	}
)

// Cell returns the cell at idx, or Empty past the end of the row.
func (r Row) Cell(idx int) Cell {
	if idx < 0 || idx >= len(r) {
		return Empty
	}
	return r[idx]
}

func (r Row) IsEmpty() bool {
	for _, c := range r {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// TrimRight drops trailing empty cells.
func (r Row) TrimRight() Row {
	n := len(r)
	for n > 0 && r[n-1].IsEmpty() {
		n--
	}
	return r[:n]
}

func (r Row) Clone() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Row returns the row at idx, or nil when the grid is shorter.
func (g Grid) Row(idx int) Row {
	if idx < 0 || idx >= len(g) {
		return nil
	}
	return g[idx]
}

func (g Grid) Cell(row, col int) Cell {
	return g.Row(row).Cell(col)
}

// HasRow reports whether row idx exists in the grid.
func (g Grid) HasRow(idx int) bool {
	return idx >= 0 && idx < len(g)
}

// TrimBottom drops trailing empty rows.
func (g Grid) TrimBottom() Grid {
	n := len(g)
	for n > 0 && g[n-1].IsEmpty() {
		n--
	}
	return g[:n]
}

func NewWorkbook() *Workbook {
	return &Workbook{}
}

// SetSheet adds a sheet at the end of the workbook or replaces the grid of the sheet with the exact same name.
func (wb *Workbook) SetSheet(name string, grid Grid) {
	for i := range wb.sheets {
		if wb.sheets[i].Name == name {
			wb.sheets[i].Grid = grid
			return
		}
	}
	wb.sheets = append(wb.sheets, Sheet{Name: name, Grid: grid})
}

func (wb *Workbook) Sheets() []Sheet {
	return wb.sheets
}

func (wb *Workbook) SheetNames() []string {
	names := make([]string, 0, len(wb.sheets))
	for _, s := range wb.sheets {
		names = append(names, s.Name)
	}
	return names
}

// Sheet looks a sheet up by its exact name.
func (wb *Workbook) Sheet(name string) (Grid, bool) {
	for _, s := range wb.sheets {
		if s.Name == name {
			return s.Grid, true
		}
	}
	return nil, false
}

// SheetFold looks a sheet up ignoring case and returns its stored name.
func (wb *Workbook) SheetFold(name string) (Sheet, bool) {
	for _, s := range wb.sheets {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Sheet{}, false
}

func (wb *Workbook) First() (Sheet, bool) {
	if len(wb.sheets) == 0 {
		return Sheet{}, false
	}
	return wb.sheets[0], true
}
