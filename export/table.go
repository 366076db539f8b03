// Package export writes report tables to spreadsheet and PDF files.
package export

import (
	"github.com/shopspring/decimal"

	"github.com/flockbooks/flockbooks/statement"
)

// Placeholder fills numeric cells that do not apply to a row, such as birds
// on an opening balance row. It is distinct from zero.
const Placeholder = "-"

// Column describes one export column.
type Column struct {
	Header  string
	Width   float64
	Numeric bool
	// Places is the number of decimals printed for numeric cells.
	Places int
}

// Cell is either text or a number.
type Cell struct {
	Text   string
	Number *decimal.Decimal
}

// Text returns a text cell.
func Text(s string) Cell {
	return Cell{Text: s}
}

// Number returns a numeric cell.
func Number(d decimal.Decimal) Cell {
	return Cell{Number: &d}
}

// Optional returns a numeric cell, or the placeholder when d is nil.
func Optional(d *decimal.Decimal) Cell {
	if d == nil {
		return Text(Placeholder)
	}
	return Number(*d)
}

// IsPlaceholder reports whether the cell is the not-applicable marker.
func (c Cell) IsPlaceholder() bool {
	return c.Number == nil && c.Text == Placeholder
}

// value is what the spreadsheet stores: a float for numbers, otherwise text.
func (c Cell) value() any {
	if c.Number == nil {
		return c.Text
	}
	f, _ := c.Number.Float64()
	return f
}

// format renders the cell for print output.
func (c Cell) format(places int) string {
	if c.Number == nil {
		return c.Text
	}
	return statement.FormatNumber(*c.Number, places)
}

// Table is a header, the record rows, and a totals row.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]Cell
	Totals  []Cell
}

// Headers returns the column headers in order.
func (t Table) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
	}
	return out
}

// cells returns row padded or cut to the column count.
func (t Table) cells(row []Cell) []Cell {
	out := make([]Cell, len(t.Columns))
	copy(out, row)
	return out
}
