package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExcelContentType is the response Content-Type for exported workbooks.
const ExcelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RenderExcel materializes a report table into a single-sheet xlsx
// workbook. Column titles and widths come verbatim from the table headers;
// each row is written positionally by matching header keys and missing keys
// leave the cell blank. The whole workbook is built in memory, which is
// fine for dashboard-sized reports but rules out bulk data dumps.
func RenderExcel(t ReportTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Report"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("render excel: %w", err)
	}

	for i, h := range t.Headers {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("render excel: %w", err)
		}
		if h.Width > 0 {
			if err := f.SetColWidth(sheet, col, col, h.Width); err != nil {
				return nil, fmt.Errorf("render excel: %w", err)
			}
		}
		if err := f.SetCellValue(sheet, col+"1", h.Title); err != nil {
			return nil, fmt.Errorf("render excel: %w", err)
		}
	}

	for ri, row := range t.Rows {
		for ci, h := range t.Headers {
			v, ok := row[h.Key]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return nil, fmt.Errorf("render excel: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("render excel: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render excel: %w", err)
	}
	return buf.Bytes(), nil
}
