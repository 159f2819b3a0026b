package workbook

import (
	"fmt"
	"strings"
)

// capitalKeywords mark a column label or cell as capital-bearing
var capitalKeywords = []string{
	"initial", "starting", "start", "capital", "balance",
	"initial capital", "initial balance",
}

// Label-cell search is limited to the top-left corner of each sheet
const (
	labelScanRows = 10
	labelScanCols = 5
)

// DetectedCapital is a starting-capital figure recovered from a workbook
type DetectedCapital struct {
	Value  float64
	Source string // human-readable provenance of the value
}

// DetectInitialCapital searches a workbook for a starting-capital figure.
//
// Two ordered passes, first match wins, sheets iterated in file order:
//  1. header pass: the first column whose lowercased label contains a
//     capital keyword yields its first numeric value;
//  2. label-cell pass: the top-left 10x5 area of each sheet is scanned
//     row-major for a keyword cell, taking the value from the cell to its
//     right, or below it when the right cell is empty.
//
// The search is best effort: unreadable sheets are skipped silently and an
// exhausted search reports found=false rather than an error. The caller is
// expected to fall back to a configured default.
func DetectInitialCapital(wb Workbook) (DetectedCapital, bool) {
	sheets := wb.Sheets()

	if detected, ok := detectFromHeaders(sheets); ok {
		return detected, true
	}
	return detectFromLabelCells(sheets)
}

// detectFromHeaders treats the first row of every sheet as column labels and
// returns the first numeric value of the first keyword-matching column.
func detectFromHeaders(sheets []Sheet) (DetectedCapital, bool) {
	for _, sheet := range sheets {
		rows, err := sheet.Rows()
		if err != nil || len(rows) == 0 {
			continue
		}

		header := rows[0]
		for col, label := range header {
			if !containsCapitalKeyword(strings.ToLower(label)) {
				continue
			}
			// First non-missing numeric value in the column wins
			for row := 1; row < len(rows); row++ {
				if value, ok := CoerceFloat(cellAt(rows, row, col)); ok {
					return DetectedCapital{
						Value:  value,
						Source: fmt.Sprintf("sheet '%s' column '%s'", sheet.Name(), label),
					}, true
				}
			}
		}
	}
	return DetectedCapital{}, false
}

// detectFromLabelCells re-reads every sheet without a header row and scans
// the top-left corner for label/value cell pairs.
func detectFromLabelCells(sheets []Sheet) (DetectedCapital, bool) {
	for _, sheet := range sheets {
		rows, err := sheet.Rows()
		if err != nil {
			continue
		}

		width := gridWidth(rows)
		maxRows := labelScanRows
		if len(rows) < maxRows {
			maxRows = len(rows)
		}
		maxCols := labelScanCols
		if width < maxCols {
			maxCols = width
		}

		for i := 0; i < maxRows; i++ {
			for j := 0; j < maxCols; j++ {
				cell := cellAt(rows, i, j)
				if strings.TrimSpace(cell) == "" {
					continue
				}
				if !containsCapitalKeyword(strings.ToLower(strings.TrimSpace(cell))) {
					continue
				}

				// Prefer the cell to the right, fall back to the cell below
				candidate := cellAt(rows, i, j+1)
				if strings.TrimSpace(candidate) == "" {
					candidate = cellAt(rows, i+1, j)
				}

				if value, ok := CoerceFloat(candidate); ok {
					return DetectedCapital{
						Value:  value,
						Source: fmt.Sprintf("sheet '%s' label '%s' at (%d,%d)", sheet.Name(), cell, i+1, j+1),
					}, true
				}
			}
		}
	}
	return DetectedCapital{}, false
}

func containsCapitalKeyword(text string) bool {
	for _, keyword := range capitalKeywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
