package workbook

import (
	"fmt"
	"sort"
	"strings"
)

// Layout of an objectives sheet: rows before HeaderRow hold metadata,
// HeaderRow holds column names and data starts at FirstDataRow.
const (
	HeaderRow    = 4
	FirstDataRow = 5
)

// Record is one data row keyed by column header.
type Record map[string]Cell

// UnknownColumnError is returned when a write-back record uses a key that is not a sheet header.
type UnknownColumnError struct {
	Unknown []string
	Valid   []string
}

func (e *UnknownColumnError) Error() string {
	return fmt.Sprintf("unknown columns: %s", strings.Join(e.Unknown, ", "))
}

// Project turns the grid into header strings and one record per non-empty data row.
// Missing cells are Empty.
func Project(g Grid) ([]string, []Record) {
	headerRow := g.Row(HeaderRow)
	headers := make([]string, len(headerRow))
	for i, c := range headerRow {
		headers[i] = c.String()
	}

	var records []Record
	for r := FirstDataRow; r < len(g); r++ {
		row := g[r]
		if row.IsEmpty() {
			continue
		}
		rec := make(Record, len(headers))
		for i, h := range headers {
			rec[h] = row.Cell(i)
		}
		records = append(records, rec)
	}
	if records == nil {
		records = []Record{}
	}
	return headers, records
}

// Unproject rebuilds a grid from records: rows before FirstDataRow come from
// the original grid, then one row per record in header order.
func Unproject(headers []string, records []Record, original Grid) Grid {
	out := make(Grid, 0, FirstDataRow+len(records))
	for r := 0; r < FirstDataRow; r++ {
		out = append(out, original.Row(r).Clone())
	}
	for _, rec := range records {
		row := make(Row, len(headers))
		for i, h := range headers {
			row[i] = rec[h]
		}
		out = append(out, row.TrimRight())
	}
	return out.TrimBottom()
}

// CheckColumns validates the keys of the first record against the headers.
// An empty batch is always valid.
func CheckColumns(headers []string, records []Record) error {
	if len(records) == 0 {
		return nil
	}

	valid := make(map[string]bool, len(headers))
	for _, h := range headers {
		valid[h] = true
	}

	var unknown []string
	for key := range records[0] {
		if !valid[key] {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return &UnknownColumnError{Unknown: unknown, Valid: headers}
}
