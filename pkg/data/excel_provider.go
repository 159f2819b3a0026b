package data

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/quantrisk/overfit-analyzer/internal/analysis"
	"github.com/quantrisk/overfit-analyzer/internal/workbook"
)

// DefaultTradesSheet is the sheet name TradingView uses for exported trade lists
const DefaultTradesSheet = "List of trades"

// dateLayouts are tried in order when a date cell is not an Excel serial number
var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01-02-2006 15:04",
	"1/2/2006 15:04",
}

// ExcelTradeProvider implements TradeProvider for exported backtest workbooks.
// Trade lists are exported as row pairs: an entry row followed by an exit row,
// with the per-trade result carried on the exit row.
type ExcelTradeProvider struct {
	sheetName string
}

// NewExcelTradeProvider creates a provider reading the default trade list sheet
func NewExcelTradeProvider() *ExcelTradeProvider {
	return &ExcelTradeProvider{sheetName: DefaultTradesSheet}
}

// NewExcelTradeProviderForSheet creates a provider reading a specific sheet
func NewExcelTradeProviderForSheet(sheetName string) *ExcelTradeProvider {
	return &ExcelTradeProvider{sheetName: sheetName}
}

// GetName returns the name of the trade provider
func (p *ExcelTradeProvider) GetName() string {
	return "Excel Trade Provider"
}

// LoadTrades reads the trade list sheet, detects the return and date columns,
// and pairs the rows two at a time into completed trades.
func (p *ExcelTradeProvider) LoadTrades(source string) ([]analysis.TradeRecord, error) {
	wb, err := workbook.OpenExcel(source)
	if err != nil {
		return nil, err
	}
	defer wb.Close()

	sheet, err := p.findTradesSheet(wb)
	if err != nil {
		return nil, err
	}

	rows, err := sheet.Rows()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("sheet '%s' has no trade rows", sheet.Name())
	}

	detection, err := DetectColumns(sheet.Name(), rows[0])
	if err != nil {
		return nil, err
	}

	return pairTradeRows(rows[1:], detection), nil
}

// findTradesSheet returns the configured trade list sheet, falling back to
// the first sheet when the workbook does not carry one under that name.
func (p *ExcelTradeProvider) findTradesSheet(wb workbook.Workbook) (workbook.Sheet, error) {
	sheets := wb.Sheets()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	for _, sheet := range sheets {
		if strings.EqualFold(sheet.Name(), p.sheetName) {
			return sheet, nil
		}
	}
	log.Printf("⚠️  Sheet '%s' not found, using first sheet '%s'", p.sheetName, sheets[0].Name())
	return sheets[0], nil
}

// DetectColumns finds the return and date columns from the header labels.
// The return column label must contain "p&l %" or "pnl %"; the date column
// prefers exit/close time labels over generic time or date labels.
func DetectColumns(sheetName string, header []string) (ColumnDetection, error) {
	detection := ColumnDetection{SheetName: sheetName, ReturnIndex: -1, DateIndex: -1}

	for i, label := range header {
		lower := strings.ToLower(label)
		if detection.ReturnIndex < 0 && (strings.Contains(lower, "p&l %") || strings.Contains(lower, "pnl %")) {
			detection.ReturnIndex = i
			detection.ReturnColumn = label
		}
	}
	if detection.ReturnIndex < 0 {
		return detection, fmt.Errorf("no 'Net P&L %%' column found in sheet '%s' (columns: %s)",
			sheetName, strings.Join(header, ", "))
	}

	firstDate := -1
	for i, label := range header {
		lower := strings.ToLower(label)
		if !strings.Contains(lower, "time") && !strings.Contains(lower, "date") {
			continue
		}
		if firstDate < 0 {
			firstDate = i
		}
		if detection.DateIndex < 0 && (strings.Contains(lower, "exit") || strings.Contains(lower, "close")) {
			detection.DateIndex = i
			detection.DateColumn = label
		}
	}
	if detection.DateIndex < 0 {
		if firstDate < 0 {
			return detection, fmt.Errorf("no date/time column found in sheet '%s' (expected e.g. 'Exit Time', 'Close Time', 'Date')", sheetName)
		}
		detection.DateIndex = firstDate
		detection.DateColumn = header[firstDate]
	}

	return detection, nil
}

// pairTradeRows zips the data rows two at a time: each entry row is followed
// by its exit row, and the exit row carries the trade result and close date.
// An odd trailing row has no exit and is skipped.
func pairTradeRows(dataRows [][]string, detection ColumnDetection) []analysis.TradeRecord {
	var trades []analysis.TradeRecord

	for i := 0; i+1 < len(dataRows); i += 2 {
		exitRow := dataRows[i+1]
		tradeID := i/2 + 1

		// Missing or non-numeric P&L is treated as a flat trade
		returnPct := 0.0
		if value, ok := workbook.CoerceFloat(cellValue(exitRow, detection.ReturnIndex)); ok {
			returnPct = value
		}

		date, err := parseTradeDate(cellValue(exitRow, detection.DateIndex))
		if err != nil {
			log.Printf("⚠️  Invalid date '%s' for trade %d, skipping: %v",
				cellValue(exitRow, detection.DateIndex), tradeID, err)
			continue
		}

		trades = append(trades, analysis.TradeRecord{
			Index:          tradeID,
			ReturnFraction: returnPct / 100.0,
			Date:           date,
		})
	}

	if len(dataRows)%2 != 0 {
		log.Printf("⚠️  Unpaired trailing row %d (entry without exit), skipping", len(dataRows))
	}

	return trades
}

// parseTradeDate parses a date cell, accepting Excel serial numbers and the
// common textual layouts of exported trade lists.
func parseTradeDate(cell string) (time.Time, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	// Unformatted Excel cells surface dates as serial numbers
	if serial, ok := workbook.CoerceFloat(trimmed); ok {
		return excelize.ExcelDateToTime(serial, false)
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

func cellValue(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}
