package data

import (
	"github.com/quantrisk/overfit-analyzer/internal/analysis"
)

// TradeProvider interface for loading completed trades from various sources
type TradeProvider interface {
	// LoadTrades loads the completed trade list from the specified source
	LoadTrades(source string) ([]analysis.TradeRecord, error)

	// GetName returns the name of the trade provider
	GetName() string
}

// ColumnDetection holds the detected column layout of a trade list sheet
type ColumnDetection struct {
	SheetName    string
	ReturnColumn string // label of the per-trade "Net P&L %" column
	DateColumn   string // label of the trade close timestamp column
	ReturnIndex  int
	DateIndex    int
}
