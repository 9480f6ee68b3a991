package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 10.0
	headerHeight  = 8.0
	rowHeight     = 7.0
	titleFontSize = 14.0
	cellFontSize  = 9.0
)

// PDF renders a table as a landscape A4 document. Column widths are spread
// by Ratio over the printable width, never below each column's Min, and the
// header row repeats after every page break. Within a group, repeated group
// key cells are blanked after the first row.
func PDF(t Table) ([]byte, error) {
	doc := fpdf.New("L", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(false, pdfMargin)
	doc.AddPage()

	pageW, pageH := doc.GetPageSize()
	printable := pageW - 2*pdfMargin
	widths := columnWidths(t.Columns, printable)

	doc.SetFont("Helvetica", "B", titleFontSize)
	doc.CellFormat(printable, 10, t.Title, "", 1, "C", false, 0, "")
	doc.Ln(2)

	writeHeader := func() {
		doc.SetFont("Helvetica", "B", cellFontSize)
		doc.SetFillColor(230, 243, 255)
		for i, col := range t.Columns {
			doc.CellFormat(widths[i], headerHeight, col.Header, "1", 0, "C", true, 0, "")
		}
		doc.Ln(-1)
		doc.SetFont("Helvetica", "", cellFontSize)
	}
	writeHeader()

	var prev []string
	for _, row := range t.Rows {
		if doc.GetY()+rowHeight > pageH-pdfMargin {
			doc.AddPage()
			writeHeader()
			prev = nil
		}
		for i := range t.Columns {
			var value string
			if i < len(row) {
				value = row[i]
			}
			if i < t.GroupCols && prev != nil && sameGroup(prev, row, t.GroupCols) {
				value = ""
			}
			doc.CellFormat(widths[i], rowHeight, value, "1", 0, "L", false, 0, "")
		}
		doc.Ln(-1)
		prev = row
	}

	if len(t.Rows) == 0 {
		doc.CellFormat(printable, rowHeight, "-", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths distributes the printable width by ratio, then tops up any
// column that fell below its minimum at the expense of the flexible ones.
func columnWidths(cols []Column, printable float64) []float64 {
	widths := make([]float64, len(cols))
	var totalRatio float64
	for _, c := range cols {
		r := c.Ratio
		if r <= 0 {
			r = 1
		}
		totalRatio += r
	}

	var deficit, flexible float64
	for i, c := range cols {
		r := c.Ratio
		if r <= 0 {
			r = 1
		}
		widths[i] = printable * r / totalRatio
		if widths[i] < c.Min {
			deficit += c.Min - widths[i]
			widths[i] = c.Min
		} else {
			flexible += widths[i] - c.Min
		}
	}
	if deficit > 0 && flexible > 0 {
		scale := deficit / flexible
		for i, c := range cols {
			if widths[i] > c.Min {
				widths[i] -= (widths[i] - c.Min) * scale
			}
		}
	}
	return widths
}
