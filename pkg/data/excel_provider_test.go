package data

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// TestDetectColumns_TradingViewHeader tests column detection on a typical export header
func TestDetectColumns_TradingViewHeader(t *testing.T) {
	header := []string{"Trade #", "Type", "Date/Time", "Price", "Contracts", "Net P&L %"}

	detection, err := DetectColumns("List of trades", header)

	require.NoError(t, err)
	assert.Equal(t, 5, detection.ReturnIndex)
	assert.Equal(t, "Net P&L %", detection.ReturnColumn)
	assert.Equal(t, 2, detection.DateIndex, "without an exit column the first date column is used")
	assert.Equal(t, "Date/Time", detection.DateColumn)
}

// TestDetectColumns_PrefersExitTime tests that exit/close columns win over entry columns
func TestDetectColumns_PrefersExitTime(t *testing.T) {
	header := []string{"Trade #", "Entry Time", "Exit Time", "PnL %"}

	detection, err := DetectColumns("Trades", header)

	require.NoError(t, err)
	assert.Equal(t, 3, detection.ReturnIndex)
	assert.Equal(t, 2, detection.DateIndex)
	assert.Equal(t, "Exit Time", detection.DateColumn)
}

// TestDetectColumns_MissingReturnColumn tests the error on a header without a P&L column
func TestDetectColumns_MissingReturnColumn(t *testing.T) {
	header := []string{"Trade #", "Date/Time", "Price"}

	_, err := DetectColumns("Trades", header)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no 'Net P&L %' column")
}

// TestDetectColumns_MissingDateColumn tests the error on a header without any date column
func TestDetectColumns_MissingDateColumn(t *testing.T) {
	header := []string{"Trade #", "Price", "Net P&L %"}

	_, err := DetectColumns("Trades", header)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no date/time column")
}

// TestPairTradeRows_EntryExitPairs tests the two-row pairing into completed trades
func TestPairTradeRows_EntryExitPairs(t *testing.T) {
	detection := ColumnDetection{ReturnIndex: 2, DateIndex: 1}
	rows := [][]string{
		{"1", "2024-01-02 09:30:00", ""},     // entry
		{"1", "2024-01-03 16:00:00", "2.5"},  // exit
		{"2", "2024-01-10 09:30:00", ""},     // entry
		{"2", "2024-01-12 11:15:00", "-1.2"}, // exit
	}

	trades := pairTradeRows(rows, detection)

	require.Len(t, trades, 2)
	assert.Equal(t, 1, trades[0].Index)
	assert.InDelta(t, 0.025, trades[0].ReturnFraction, 1e-9)
	assert.Equal(t, time.Date(2024, 1, 3, 16, 0, 0, 0, time.UTC), trades[0].Date)
	assert.Equal(t, 2, trades[1].Index)
	assert.InDelta(t, -0.012, trades[1].ReturnFraction, 1e-9)
}

// TestPairTradeRows_MissingPnLIsFlat tests that a blank result cell becomes a zero-return trade
func TestPairTradeRows_MissingPnLIsFlat(t *testing.T) {
	detection := ColumnDetection{ReturnIndex: 2, DateIndex: 1}
	rows := [][]string{
		{"1", "2024-01-02", ""},
		{"1", "2024-01-03", ""},
	}

	trades := pairTradeRows(rows, detection)

	require.Len(t, trades, 1)
	assert.Equal(t, 0.0, trades[0].ReturnFraction)
}

// TestPairTradeRows_BadDateSkipsTrade tests that an unparseable exit date drops only that trade
func TestPairTradeRows_BadDateSkipsTrade(t *testing.T) {
	detection := ColumnDetection{ReturnIndex: 2, DateIndex: 1}
	rows := [][]string{
		{"1", "2024-01-02", "1.0"},
		{"1", "not a date", "1.0"},
		{"2", "2024-01-10", "3.0"},
		{"2", "2024-01-12", "3.0"},
	}

	trades := pairTradeRows(rows, detection)

	require.Len(t, trades, 1)
	assert.Equal(t, 2, trades[0].Index, "the trade id keeps its position in the sheet")
	assert.InDelta(t, 0.03, trades[0].ReturnFraction, 1e-9)
}

// TestPairTradeRows_OddTrailingRow tests that an entry without an exit is skipped
func TestPairTradeRows_OddTrailingRow(t *testing.T) {
	detection := ColumnDetection{ReturnIndex: 2, DateIndex: 1}
	rows := [][]string{
		{"1", "2024-01-02", ""},
		{"1", "2024-01-03", "4.0"},
		{"2", "2024-01-10", ""}, // open position, no exit row yet
	}

	trades := pairTradeRows(rows, detection)

	require.Len(t, trades, 1)
	assert.InDelta(t, 0.04, trades[0].ReturnFraction, 1e-9)
}

// TestParseTradeDate_Formats tests the accepted date cell formats
func TestParseTradeDate_Formats(t *testing.T) {
	parsed, err := parseTradeDate("2024-03-05 14:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC), parsed)

	parsed, err = parseTradeDate("2024/03/05")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), parsed)

	// Excel serial: 45357 is 2024-03-06 in the 1900 date system
	parsed, err = parseTradeDate("45357")
	require.NoError(t, err)
	assert.Equal(t, 2024, parsed.Year())
	assert.Equal(t, time.March, parsed.Month())

	_, err = parseTradeDate("")
	assert.Error(t, err)

	_, err = parseTradeDate("yesterday")
	assert.Error(t, err)
}

// TestExcelTradeProvider_LoadTrades tests the full load path against a generated workbook
func TestExcelTradeProvider_LoadTrades(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.xlsx")
	buildTradesWorkbook(t, path, DefaultTradesSheet)

	provider := NewExcelTradeProvider()
	trades, err := provider.LoadTrades(path)

	require.NoError(t, err)
	require.Len(t, trades, 2)
	assert.Equal(t, 1, trades[0].Index)
	assert.InDelta(t, 0.025, trades[0].ReturnFraction, 1e-9)
	assert.Equal(t, 2024, trades[0].Date.Year())
	assert.Equal(t, 2, trades[1].Index)
	assert.InDelta(t, -0.012, trades[1].ReturnFraction, 1e-9)
}

// TestExcelTradeProvider_FallsBackToFirstSheet tests loading when the named sheet is absent
func TestExcelTradeProvider_FallsBackToFirstSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trades.xlsx")
	buildTradesWorkbook(t, path, "Sheet1")

	provider := NewExcelTradeProvider()
	trades, err := provider.LoadTrades(path)

	require.NoError(t, err)
	assert.Len(t, trades, 2)
}

// TestExcelTradeProvider_GetName tests the provider name
func TestExcelTradeProvider_GetName(t *testing.T) {
	assert.Equal(t, "Excel Trade Provider", NewExcelTradeProvider().GetName())
}

// buildTradesWorkbook writes a minimal exported trade list to path
func buildTradesWorkbook(t *testing.T, path, sheetName string) {
	t.Helper()

	fx := excelize.NewFile()
	if sheetName != "Sheet1" {
		require.NoError(t, fx.SetSheetName("Sheet1", sheetName))
	}

	rows := [][]interface{}{
		{"Trade #", "Type", "Date/Time", "Net P&L %"},
		{1, "Entry long", "2024-01-02 09:30:00", ""},
		{1, "Exit long", "2024-01-03 16:00:00", "2.5"},
		{2, "Entry short", "2024-01-10 09:30:00", ""},
		{2, "Exit short", "2024-01-12 11:15:00", "-1.2"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, fx.SetSheetRow(sheetName, cell, &row))
	}

	require.NoError(t, fx.SaveAs(path))
	require.NoError(t, fx.Close())
}
