package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX identifies the download as an Office spreadsheet.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// XLSXBytes renders a header row plus one row per record into a single-sheet
// workbook. Values keep their natural types and rows keep their input order,
// so identical input always produces the same sheet.
func XLSXBytes(headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for c, h := range headers {
		cell, err := excelize.CoordinatesToCellName(c+1, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to address header cell %d: %w", c, err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("failed to write header %q: %w", h, err)
		}
	}
	for ri, row := range rows {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return nil, fmt.Errorf("failed to address cell %d,%d: %w", ri, ci, err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to write cell %d,%d: %w", ri, ci, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename builds the download name for a table export, e.g.
// "estoque_20240131_154500.xlsx".
func Filename(kind string, t time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", kind, t.Format("20060102_150405"))
}
