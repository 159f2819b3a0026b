package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeSeries(returns ...float64) TradeSeries {
	trades := make([]TradeRecord, len(returns))
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	for i, r := range returns {
		trades[i] = TradeRecord{
			Index:          i + 1,
			ReturnFraction: r,
			Date:           base.AddDate(0, 0, i),
		}
	}
	return NewTradeSeries(trades)
}

// TestSimulateLiquidationRisk_EmptySeries tests the degenerate result for a series with no trades
func TestSimulateLiquidationRisk_EmptySeries(t *testing.T) {
	result := SimulateLiquidationRisk(makeSeries(), DefaultMarginAccountConfig())

	assert.Equal(t, []float64{DefaultInitialCapital}, result.EquitySeries)
	assert.False(t, result.Liquidated)
	assert.Equal(t, -1, result.LiquidationTradeIndex)
	assert.Equal(t, 0.0, result.MaxDrawdownPct)
	assert.Equal(t, DefaultInitialCapital, result.MinEquity)
	assert.Equal(t, DefaultInitialCapital, result.FinalEquity)
	assert.True(t, math.IsInf(result.CushionMin, 1))
}

// TestSimulateLiquidationRisk_CompoundingLosses tests that constant losses compound geometrically
func TestSimulateLiquidationRisk_CompoundingLosses(t *testing.T) {
	const p = 0.1
	const steps = 5
	returns := make([]float64, steps)
	for i := range returns {
		returns[i] = -p
	}

	cfg := DefaultMarginAccountConfig()
	cfg.MaintenanceMarginRate = 0 // keep the run free of liquidation effects
	result := SimulateLiquidationRisk(makeSeries(returns...), cfg)

	require.Len(t, result.EquitySeries, steps+1)
	for n := 0; n <= steps; n++ {
		assert.InDelta(t, cfg.InitialCapital*math.Pow(1-p, float64(n)), result.EquitySeries[n], 1e-9, "step %d", n)
	}
}

// TestSimulateLiquidationRisk_SingleTotalLossLiquidates tests the documented liquidation trigger
func TestSimulateLiquidationRisk_SingleTotalLossLiquidates(t *testing.T) {
	result := SimulateLiquidationRisk(makeSeries(-1.0), DefaultMarginAccountConfig())

	// maintenance = 0.005 * (300 * 10) = 15, equity after = 0 <= 15
	assert.True(t, result.Liquidated)
	assert.Equal(t, 0, result.LiquidationTradeIndex)
	assert.Equal(t, []float64{300.0, 0.0}, result.EquitySeries)
	assert.Equal(t, 0.0, result.FinalEquity)
	assert.Equal(t, 100.0, result.MaxDrawdownPct)
}

// TestSimulateLiquidationRisk_ContinuesAfterLiquidation tests that the replay does not halt on liquidation
func TestSimulateLiquidationRisk_ContinuesAfterLiquidation(t *testing.T) {
	result := SimulateLiquidationRisk(makeSeries(-0.99, 0.5, -0.5), DefaultMarginAccountConfig())

	assert.True(t, result.Liquidated)
	assert.Equal(t, 0, result.LiquidationTradeIndex, "only the first liquidating trade is recorded")
	require.Len(t, result.EquitySeries, 4)
	assert.InDelta(t, 3.0, result.EquitySeries[1], 1e-9)
	assert.InDelta(t, 4.5, result.EquitySeries[2], 1e-9)
	assert.InDelta(t, 2.25, result.EquitySeries[3], 1e-9)
}

// TestSimulateLiquidationRisk_NegativeEquityAllowed tests that no equity floor is enforced
func TestSimulateLiquidationRisk_NegativeEquityAllowed(t *testing.T) {
	result := SimulateLiquidationRisk(makeSeries(-1.5), DefaultMarginAccountConfig())

	assert.Equal(t, -150.0, result.FinalEquity)
	assert.Equal(t, -150.0, result.MinEquity)
	assert.True(t, result.Liquidated)
}

// TestSimulateLiquidationRisk_UnleveragedNotional tests the reduced notional without full exposure
func TestSimulateLiquidationRisk_UnleveragedNotional(t *testing.T) {
	cfg := DefaultMarginAccountConfig()
	cfg.AssumeFullExposure = false
	result := SimulateLiquidationRisk(makeSeries(-0.9), cfg)

	// maintenance = 0.005 * 300 = 1.5, equity after = 30 > 1.5: no liquidation
	assert.False(t, result.Liquidated)
	assert.InDelta(t, 30.0, result.FinalEquity, 1e-9)
	assert.InDelta(t, 30.0/1.5, result.CushionMin, 1e-9)
}

// TestSimulateLiquidationRisk_ZeroLeverageCushion tests the infinite cushion with zero notional
func TestSimulateLiquidationRisk_ZeroLeverageCushion(t *testing.T) {
	cfg := DefaultMarginAccountConfig()
	cfg.Leverage = 0
	result := SimulateLiquidationRisk(makeSeries(-0.5), cfg)

	// Zero leverage under full exposure means zero notional and zero maintenance
	assert.False(t, result.Liquidated)
	assert.True(t, math.IsInf(result.CushionMin, 1))
}

// TestSimulateLiquidationRisk_MaxDrawdownFromPeak tests drawdown measured against the running peak
func TestSimulateLiquidationRisk_MaxDrawdownFromPeak(t *testing.T) {
	cfg := DefaultMarginAccountConfig()
	cfg.MaintenanceMarginRate = 0
	result := SimulateLiquidationRisk(makeSeries(0.1, -0.5), cfg)

	// 300 -> 330 -> 165, peak 330, drawdown (330-165)/330 = 50%
	assert.InDelta(t, 50.0, result.MaxDrawdownPct, 1e-9)
	assert.InDelta(t, 165.0, result.MinEquity, 1e-9)
}

// TestSimulateLiquidationRisk_Deterministic tests that repeated runs are bit-identical
func TestSimulateLiquidationRisk_Deterministic(t *testing.T) {
	series := makeSeries(0.02, -0.03, 0.05, -0.11, 0.07)
	cfg := DefaultMarginAccountConfig()

	first := SimulateLiquidationRisk(series, cfg)
	second := SimulateLiquidationRisk(series, cfg)

	assert.Equal(t, first, second)
}
