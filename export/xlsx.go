package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const maxSheetName = 31

// SheetName returns the worksheet name used for a table title.
func SheetName(title string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`[]:*?/\`, r) {
			return '-'
		}
		return r
	}, strings.TrimSpace(title))

	if name == "" {
		return "Sheet1"
	}
	if r := []rune(name); len(r) > maxSheetName {
		name = string(r[:maxSheetName])
	}
	return name
}

// WriteSpreadsheet writes t as a single-sheet workbook: the header row, one
// row per record and the totals row.
func WriteSpreadsheet(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(t.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Header
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	rowNo := 2
	for _, r := range t.Rows {
		if err := writeRow(f, sheet, rowNo, t.cells(r)); err != nil {
			return err
		}
		rowNo++
	}
	if err := writeRow(f, sheet, rowNo, t.cells(t.Totals)); err != nil {
		return err
	}

	if err := styleSheet(f, sheet, t, rowNo); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNo int, cells []Cell) error {
	values := make([]any, len(cells))
	for i, c := range cells {
		values[i] = c.value()
	}

	cell, err := excelize.CoordinatesToCellName(1, rowNo)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing row %d: %w", rowNo, err)
	}
	return nil
}

func styleSheet(f *excelize.File, sheet string, t Table, lastRow int) error {
	if len(t.Columns) == 0 {
		return nil
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E0E0"}},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	totalsRow := fmt.Sprintf("%d", lastRow)
	if err := f.SetCellStyle(sheet, "A"+totalsRow, lastCol+totalsRow, bold); err != nil {
		return fmt.Errorf("styling totals: %w", err)
	}

	for i, c := range t.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if c.Width > 0 {
			if err := f.SetColWidth(sheet, name, name, c.Width); err != nil {
				return fmt.Errorf("sizing column %s: %w", name, err)
			}
		}
	}

	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}
