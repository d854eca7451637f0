package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/scholar-scraper/pkg/types"
)

const sheetName = "Sheet1"

// WriteProfileXLSX writes a profile listing as a spreadsheet with the same
// columns as the CSV export. Years and counts are numeric cells.
func WriteProfileXLSX(path string, pubs []types.Publication) error {
	rows := make([][]any, 0, len(pubs)+1)
	rows = append(rows, headerCells(profileHeader))
	for i, p := range pubs {
		rows = append(rows, []any{i + 1, p.Title, p.Authors, p.Venue, yearCell(p.Year), p.CitationCount, p.Link})
	}
	return writeXLSX(path, rows)
}

// WriteCitersXLSX writes a cited-by listing as a spreadsheet.
func WriteCitersXLSX(path string, recs []types.CitingRecord) error {
	rows := make([][]any, 0, len(recs)+1)
	rows = append(rows, headerCells(citersHeader))
	for _, r := range recs {
		rows = append(rows, []any{r.Title, r.Authors, r.Venue, yearCell(r.Year)})
	}
	return writeXLSX(path, rows)
}

func headerCells(hdr []string) []any {
	cells := make([]any, len(hdr))
	for i, h := range hdr {
		cells[i] = h
	}
	return cells
}

func yearCell(y int) any {
	if y == types.YearUnknown {
		return ""
	}
	return y
}

func writeXLSX(path string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("addressing cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("writing cell %s: %w", cell, err)
			}
		}
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving spreadsheet: %w", err)
	}
	return nil
}
