package workbook

import (
	"math"
	"strconv"
	"strings"
)

// Package workbook provides generic tabular access to spreadsheet files and
// the heuristic search for a starting-capital figure inside them.

// Sheet exposes one worksheet as a 2-D grid of cells
type Sheet interface {
	// Name returns the worksheet name
	Name() string
	// Rows returns the cell grid in row-major order. Rows may be ragged;
	// an empty string is a missing cell.
	Rows() ([][]string, error)
}

// Workbook exposes the worksheets of a spreadsheet file in file order
type Workbook interface {
	Sheets() []Sheet
	Close() error
}

// CoerceFloat converts a cell value to a finite number.
// Returns false for empty, non-numeric and non-finite values.
func CoerceFloat(cell string) (float64, bool) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// cellAt reads a cell from a possibly ragged grid, missing cells read as empty
func cellAt(rows [][]string, row, col int) string {
	if row < 0 || row >= len(rows) {
		return ""
	}
	if col < 0 || col >= len(rows[row]) {
		return ""
	}
	return rows[row][col]
}

// gridWidth returns the widest row of a ragged grid
func gridWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}
	return width
}
