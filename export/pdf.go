package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	pdfRowHeight = 6.0
	pdfFontSize  = 7.0
)

// WritePDF writes t as a landscape A4 document. The column header repeats on
// every page and each page carries a page number footer.
func WritePDF(w io.Writer, t Table) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(t.Title, true)
	pdf.SetCreator("flockbooks", true)
	pdf.AliasNbPages("")
	pdf.SetAutoPageBreak(true, 15)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	widths := fitWidths(pdf, t.Columns)

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 8, tr(t.Title), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(224, 224, 224)
		for i, c := range t.Columns {
			pdf.CellFormat(widths[i], pdfRowHeight, tr(c.Header), "1", 0, align(c), true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", pdfFontSize)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	for _, r := range t.Rows {
		writePDFRow(pdf, tr, t.Columns, widths, t.cells(r))
	}

	pdf.SetFont("Helvetica", "B", pdfFontSize)
	writePDFRow(pdf, tr, t.Columns, widths, t.cells(t.Totals))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func writePDFRow(pdf *fpdf.Fpdf, tr func(string) string, cols []Column, widths []float64, cells []Cell) {
	for i, c := range cells {
		pdf.CellFormat(widths[i], pdfRowHeight, tr(fitText(pdf, c.format(cols[i].Places), widths[i])), "1", 0, align(cols[i]), false, 0, "")
	}
	pdf.Ln(-1)
}

func align(c Column) string {
	if c.Numeric {
		return "R"
	}
	return "L"
}

// fitWidths scales the column widths to the printable page width.
func fitWidths(pdf *fpdf.Fpdf, cols []Column) []float64 {
	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	avail := pageW - left - right

	var sum float64
	for _, c := range cols {
		sum += max(c.Width, 1)
	}

	widths := make([]float64, len(cols))
	for i, c := range cols {
		widths[i] = max(c.Width, 1) / sum * avail
	}
	return widths
}

// fitText trims s until it fits in width, leaving room for cell padding.
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"..") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + ".."
}
