package analysis

import "math"

const (
	// Default margin account parameters
	DefaultInitialCapital        = 300.0
	DefaultLeverage              = 10.0
	DefaultMaintenanceMarginRate = 0.005 // 0.5% of position notional
)

// MarginAccountConfig holds the simulated margin account parameters
type MarginAccountConfig struct {
	InitialCapital        float64
	Leverage              float64
	MaintenanceMarginRate float64
	AssumeFullExposure    bool // notional = equity * leverage when true, equity otherwise
}

// DefaultMarginAccountConfig returns the documented default configuration
func DefaultMarginAccountConfig() MarginAccountConfig {
	return MarginAccountConfig{
		InitialCapital:        DefaultInitialCapital,
		Leverage:              DefaultLeverage,
		MaintenanceMarginRate: DefaultMaintenanceMarginRate,
		AssumeFullExposure:    true,
	}
}

// SimulationResult summarizes a liquidation risk simulation run
type SimulationResult struct {
	Config                MarginAccountConfig
	EquitySeries          []float64 // length = trade count + 1, index 0 is initial capital
	Liquidated            bool
	LiquidationTradeIndex int     // 0-based index of the first liquidating trade, -1 if none
	MinEquity             float64
	FinalEquity           float64
	MaxDrawdownPct        float64
	CushionMin            float64 // min equity / min maintenance amount, +Inf if never positive
}

// SimulateLiquidationRisk replays the trade series against a simulated margin
// account and reports the equity path, drawdown and liquidation verdict.
//
// Each trade's return fraction is applied to the *current* equity, so the
// equity path compounds and is genuinely path dependent. The liquidation
// check compares post-trade equity against the maintenance amount computed
// from the pre-trade notional of the same step. Liquidation is sticky but
// does not halt the replay: all remaining trades are still applied to the
// same compounding equity value for reporting purposes, and only the first
// liquidation index is recorded. Equity is allowed to go negative.
func SimulateLiquidationRisk(series TradeSeries, cfg MarginAccountConfig) SimulationResult {
	equity := cfg.InitialCapital
	equitySeries := make([]float64, 0, series.Len()+1)
	equitySeries = append(equitySeries, equity)

	maintenanceAmounts := make([]float64, 0, series.Len())
	liquidationIndex := -1

	for i := 0; i < series.Len(); i++ {
		positionNotional := equity
		if cfg.AssumeFullExposure {
			positionNotional = equity * cfg.Leverage
		}

		maintenanceAmount := cfg.MaintenanceMarginRate * positionNotional
		maintenanceAmounts = append(maintenanceAmounts, maintenanceAmount)

		pnl := equity * series.At(i).ReturnFraction
		equityAfter := equity + pnl
		equitySeries = append(equitySeries, equityAfter)

		if equityAfter <= maintenanceAmount && liquidationIndex < 0 {
			liquidationIndex = i
		}

		equity = equityAfter
	}

	minEquity := equitySeries[0]
	for _, v := range equitySeries {
		if v < minEquity {
			minEquity = v
		}
	}

	return SimulationResult{
		Config:                cfg,
		EquitySeries:          equitySeries,
		Liquidated:            liquidationIndex >= 0,
		LiquidationTradeIndex: liquidationIndex,
		MinEquity:             minEquity,
		FinalEquity:           equitySeries[len(equitySeries)-1],
		MaxDrawdownPct:        computeMaxDrawdown(equitySeries) * 100,
		CushionMin:            computeCushion(minEquity, maintenanceAmounts),
	}
}

// computeMaxDrawdown returns the largest fractional decline from a running peak
func computeMaxDrawdown(equity []float64) float64 {
	peak := math.Inf(-1)
	maxDD := 0.0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if peak == 0 {
			continue
		}
		dd := (peak - v) / peak
		if dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

// computeCushion returns min equity over the smallest maintenance amount seen.
// With no steps, or a non-positive minimum maintenance amount, the account
// never had a positive liquidation threshold and the cushion is infinite.
func computeCushion(minEquity float64, maintenanceAmounts []float64) float64 {
	if len(maintenanceAmounts) == 0 {
		return math.Inf(1)
	}
	minMaintenance := maintenanceAmounts[0]
	for _, m := range maintenanceAmounts {
		if m < minMaintenance {
			minMaintenance = m
		}
	}
	if minMaintenance <= 0 {
		return math.Inf(1)
	}
	return minEquity / minMaintenance
}
