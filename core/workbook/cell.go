// Package workbook holds the in-memory model of spreadsheet documents
// and the codec that moves it to and from xlsx bytes.
package workbook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindText
	KindNumber
)

// Cell is a single spreadsheet value. The zero value is an empty cell.
type Cell struct {
	kind CellKind
	text string
	num  float64
}

// Empty is the empty cell.
var Empty = Cell{}

// Text returns a text cell; an empty string yields Empty.
func Text(s string) Cell {
	if s == "" {
		return Empty
	}
	return Cell{kind: KindText, text: s}
}

func Number(n float64) Cell {
	return Cell{kind: KindNumber, num: n}
}

func (c Cell) Kind() CellKind { return c.kind }
func (c Cell) IsEmpty() bool  { return c.kind == KindEmpty }

// Float returns the numeric value of a Number cell.
func (c Cell) Float() (float64, bool) {
	return c.num, c.kind == KindNumber
}

// String renders the cell the way every reader defaults it: Empty as "", numbers in their shortest decimal form.
func (c Cell) String() string {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	default:
		return ""
	}
}

// Value returns the cell as a plain Go value for the xlsx writer: nil, string or float64.
func (c Cell) Value() interface{} {
	switch c.kind {
	case KindText:
		return c.text
	case KindNumber:
		return c.num
	default:
		return nil
	}
}

func (c Cell) MarshalJSON() ([]byte, error) {
	switch c.kind {
	case KindNumber:
		return json.Marshal(c.num)
	default:
		return json.Marshal(c.String())
	}
}

func (c *Cell) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = Empty
		return nil
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch val := v.(type) {
	case string:
		*c = Text(val)
	case float64:
		*c = Number(val)
	case bool:
		*c = Text(strconv.FormatBool(val))
	default:
		return fmt.Errorf("workbook: cannot use %s as a cell value", data)
	}
	return nil
}
