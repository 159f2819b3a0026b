package analysis

import (
	"fmt"
	"math"
	"sort"
	"time"
)

const (
	// Heuristic thresholds for the over-optimization report
	MinTradeSample         = 30  // fewer completed trades than this raises a warning
	TopTradeCount          = 10  // K for the concentration ratio, capped at trade count
	ConcentrationThreshold = 0.6 // top-K share of total return above this raises a warning
	NegativeMonthThreshold = 0.4 // fraction of losing months above this raises a warning
	MonthlyCVThreshold     = 1.5 // monthly coefficient of variation above this raises a warning
)

// WarningCode identifies an over-optimization warning
type WarningCode string

const (
	WarnSmallSample        WarningCode = "small_sample"
	WarnConcentration      WarningCode = "concentrated_returns"
	WarnNegativeMonths     WarningCode = "frequent_losing_months"
	WarnMonthlyInstability WarningCode = "unstable_monthly_returns"
)

// Warning is a single fired over-optimization heuristic
type Warning struct {
	Code      WarningCode
	Message   string
	Threshold float64
	Value     float64
}

// MonthlyReturn is the summed return fraction of one calendar month
type MonthlyReturn struct {
	Month  time.Time // first day of the month
	Return float64
}

// OverfitReport carries every computed statistic of the over-optimization
// diagnostics, regardless of whether the matching warning fired.
type OverfitReport struct {
	TradeCount int

	// Concentration of performance in the best trades. The ratio is only
	// computed when the total return sum is strictly positive; a flat or
	// losing series skips this heuristic entirely.
	TopK               int
	ConcentrationRatio float64
	HasConcentration   bool

	// Monthly stability statistics
	MonthlyReturns     []MonthlyReturn
	NegativeMonths     int
	NegativeMonthRatio float64
	MonthlyCV          float64
	HasMonthlyCV       bool

	Warnings []Warning
}

// EvaluateOverfitRisk runs four independent statistical heuristics over the
// trade series. It never fails: degenerate inputs (empty series, zero-sum
// returns, single month) resolve to skipped heuristics or sentinel values.
func EvaluateOverfitRisk(series TradeSeries) OverfitReport {
	report := OverfitReport{TradeCount: series.Len()}

	// An empty series yields zero-length statistics and no warnings at all:
	// there is nothing to diagnose without a single completed trade.
	if series.Len() == 0 {
		return report
	}

	evaluateSampleSize(series, &report)
	evaluateConcentration(series, &report)
	evaluateMonthlyStability(series, &report)

	return report
}

// evaluateSampleSize warns when too few completed trades back the backtest
func evaluateSampleSize(series TradeSeries, report *OverfitReport) {
	if series.Len() < MinTradeSample {
		report.Warnings = append(report.Warnings, Warning{
			Code:      WarnSmallSample,
			Message:   fmt.Sprintf("only %d completed trades (fewer than %d): overfitting risk", series.Len(), MinTradeSample),
			Threshold: MinTradeSample,
			Value:     float64(series.Len()),
		})
	}
}

// evaluateConcentration measures how much of the total return the best
// K trades contribute. Skipped when the total return sum is not positive.
func evaluateConcentration(series TradeSeries, report *OverfitReport) {
	topK := TopTradeCount
	if series.Len() < topK {
		topK = series.Len()
	}
	report.TopK = topK

	total := series.TotalReturn()
	if total <= 0 {
		return
	}

	returns := series.Returns()
	sort.Sort(sort.Reverse(sort.Float64Slice(returns)))

	topSum := 0.0
	for _, r := range returns[:topK] {
		topSum += r
	}

	ratio := topSum / total
	report.ConcentrationRatio = ratio
	report.HasConcentration = true

	if ratio > ConcentrationThreshold {
		report.Warnings = append(report.Warnings, Warning{
			Code:      WarnConcentration,
			Message:   fmt.Sprintf("top %d trades carry %.1f%% of total return: performance concentrated in few trades", topK, ratio*100),
			Threshold: ConcentrationThreshold,
			Value:     ratio,
		})
	}
}

// evaluateMonthlyStability buckets returns by calendar month and checks both
// the losing-month frequency and the month-to-month dispersion.
func evaluateMonthlyStability(series TradeSeries, report *OverfitReport) {
	report.MonthlyReturns = bucketByMonth(series)
	totalMonths := len(report.MonthlyReturns)
	if totalMonths == 0 {
		return
	}

	negative := 0
	for _, m := range report.MonthlyReturns {
		if m.Return < 0 {
			negative++
		}
	}
	report.NegativeMonths = negative
	report.NegativeMonthRatio = float64(negative) / float64(totalMonths)

	if report.NegativeMonthRatio > NegativeMonthThreshold {
		report.Warnings = append(report.Warnings, Warning{
			Code:      WarnNegativeMonths,
			Message:   fmt.Sprintf("%d of %d months closed negative: unstable performance", negative, totalMonths),
			Threshold: NegativeMonthThreshold,
			Value:     report.NegativeMonthRatio,
		})
	}

	if totalMonths > 1 {
		report.MonthlyCV = monthlyCoefficientOfVariation(report.MonthlyReturns)
		report.HasMonthlyCV = true

		if report.MonthlyCV > MonthlyCVThreshold {
			report.Warnings = append(report.Warnings, Warning{
				Code:      WarnMonthlyInstability,
				Message:   fmt.Sprintf("monthly return coefficient of variation %.2f: very high month-to-month dispersion", report.MonthlyCV),
				Threshold: MonthlyCVThreshold,
				Value:     report.MonthlyCV,
			})
		}
	}
}

// bucketByMonth sums return fractions per calendar month of the trade date.
// The buckets span every calendar month from the first to the last trade:
// months without trades become zero-sum buckets, so a gap month counts in
// the losing-month denominator and in the dispersion statistic.
func bucketByMonth(series TradeSeries) []MonthlyReturn {
	if series.Len() == 0 {
		return nil
	}

	sums := make(map[int]float64)
	minKey := monthKey(series.At(0).Date)
	maxKey := minKey
	for i := 0; i < series.Len(); i++ {
		trade := series.At(i)
		key := monthKey(trade.Date)
		sums[key] += trade.ReturnFraction
		if key < minKey {
			minKey = key
		}
		if key > maxKey {
			maxKey = key
		}
	}

	loc := series.At(0).Date.Location()
	months := make([]MonthlyReturn, 0, maxKey-minKey+1)
	for key := minKey; key <= maxKey; key++ {
		months = append(months, MonthlyReturn{
			Month:  time.Date(key/12, time.Month(key%12+1), 1, 0, 0, 0, 0, loc),
			Return: sums[key],
		})
	}
	return months
}

// monthKey flattens a date to a linear month index for range iteration
func monthKey(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

// monthlyCoefficientOfVariation computes population std / |mean| across the
// monthly sums, returning +Inf when the mean is exactly zero.
func monthlyCoefficientOfVariation(months []MonthlyReturn) float64 {
	mean := 0.0
	for _, m := range months {
		mean += m.Return
	}
	mean /= float64(len(months))

	variance := 0.0
	for _, m := range months {
		diff := m.Return - mean
		variance += diff * diff
	}
	variance /= float64(len(months))

	if mean == 0 {
		return math.Inf(1)
	}
	return math.Sqrt(variance) / math.Abs(mean)
}
