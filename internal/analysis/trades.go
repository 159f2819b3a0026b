package analysis

import "time"

// TradeRecord represents one completed round-trip trade (entry + exit)
type TradeRecord struct {
	Index          int       // 1-based sequence position, simulation order
	ReturnFraction float64   // PnL as a fraction of current equity (0.02 = +2%)
	Date           time.Time // close timestamp, used for monthly bucketing
}

// TradeSeries is an ordered sequence of completed trades.
// Order is significant: it is the chronological simulation order.
// An empty series is a valid input and produces degenerate results.
type TradeSeries struct {
	trades []TradeRecord
}

// NewTradeSeries builds a series from trades in the given order.
// The input slice is copied so the series stays immutable after construction.
func NewTradeSeries(trades []TradeRecord) TradeSeries {
	copied := make([]TradeRecord, len(trades))
	copy(copied, trades)
	return TradeSeries{trades: copied}
}

// Len returns the number of completed trades in the series
func (s TradeSeries) Len() int {
	return len(s.trades)
}

// At returns the trade at the given 0-based position
func (s TradeSeries) At(i int) TradeRecord {
	return s.trades[i]
}

// Returns extracts the return fractions in sequence order
func (s TradeSeries) Returns() []float64 {
	returns := make([]float64, len(s.trades))
	for i, trade := range s.trades {
		returns[i] = trade.ReturnFraction
	}
	return returns
}

// TotalReturn sums all return fractions (linear sum, no compounding)
func (s TradeSeries) TotalReturn() float64 {
	total := 0.0
	for _, trade := range s.trades {
		total += trade.ReturnFraction
	}
	return total
}
