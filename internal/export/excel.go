package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const maxColWidth = 50

// Excel renders a table as an .xlsx workbook: styled header row, frozen
// panes, alternating row shading, and merged cells for repeated group keys.
func Excel(t Table) ([]byte, error) {
	f := excelize.NewFile()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Sheet1"
	}
	index, err := f.NewSheet(sheet)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if sheet != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	shadedStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#F5F5F5"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create row style: %w", err)
	}

	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, col.Header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}

		width := col.Width
		if width <= 0 {
			width = 18
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet, name, name, width); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for r, row := range t.Rows {
		excelRow := r + 2
		for c := range t.Columns {
			var value string
			if c < len(row) {
				value = row[c]
			}
			cell, err := excelize.CoordinatesToCellName(c+1, excelRow)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if value != "" {
				if err := f.SetCellValue(sheet, cell, value); err != nil {
					f.Close()
					return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
				}
			}
			if r%2 == 1 {
				if err := f.SetCellStyle(sheet, cell, cell, shadedStyle); err != nil {
					f.Close()
					return nil, fmt.Errorf("failed to set row style: %w", err)
				}
			}
		}
	}

	if err := mergeGroups(f, sheet, t); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// mergeGroups merges vertical runs of identical group-key cells so the
// parent columns appear once per group.
func mergeGroups(f *excelize.File, sheet string, t Table) error {
	if t.GroupCols <= 0 || len(t.Rows) < 2 {
		return nil
	}

	start := 0
	for r := 1; r <= len(t.Rows); r++ {
		if r < len(t.Rows) && sameGroup(t.Rows[start], t.Rows[r], t.GroupCols) {
			continue
		}
		if r-start > 1 {
			for c := 0; c < t.GroupCols; c++ {
				top, err := excelize.CoordinatesToCellName(c+1, start+2)
				if err != nil {
					return err
				}
				bottom, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return err
				}
				if err := f.MergeCell(sheet, top, bottom); err != nil {
					return fmt.Errorf("failed to merge %s:%s: %w", top, bottom, err)
				}
			}
		}
		start = r
	}
	return nil
}

func sameGroup(a, b []string, n int) bool {
	for i := 0; i < n; i++ {
		av, bv := "", ""
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			return false
		}
	}
	return true
}
