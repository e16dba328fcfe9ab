package viewstate

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

type Column[R any] struct {
	Header string
	Width  float64
	Value  func(R) any
}

// Export writes rows to a single-sheet workbook with a bold header row.
func Export[R any](sheet string, cols []Column[R], rows []R) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, col := range cols {
		name, _ := excelize.ColumnNumberToName(i + 1)
		cell := fmt.Sprintf("%s1", name)
		f.SetCellValue(sheet, cell, col.Header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		if col.Width > 0 {
			f.SetColWidth(sheet, name, name, col.Width)
		}
	}

	for r, row := range rows {
		for i, col := range cols {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			f.SetCellValue(sheet, cell, col.Value(row))
		}
	}
	return f, nil
}
