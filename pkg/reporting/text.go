package reporting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantrisk/overfit-analyzer/internal/analysis"
)

// Default report file names, written next to the analyzed workbook
const (
	OverfitReportFilename     = "overfit_report_monthly.txt"
	LiquidationReportFilename = "liquidation_risk_report.txt"
)

// DefaultTextReporter implements plain-text report output
type DefaultTextReporter struct{}

// NewDefaultTextReporter creates a new text reporter
func NewDefaultTextReporter() *DefaultTextReporter {
	return &DefaultTextReporter{}
}

// WriteOverfitReportText writes the over-optimization report as plain text
func (r *DefaultTextReporter) WriteOverfitReportText(report analysis.OverfitReport, path string) error {
	var b strings.Builder
	b.WriteString("=== Over-Optimization Analysis Report (monthly based) ===\n\n")
	for _, line := range OverfitReportLines(report) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return writeTextFile(path, b.String())
}

// OverfitReportLines renders the report statistics and warnings as text lines
func OverfitReportLines(report analysis.OverfitReport) []string {
	lines := []string{
		fmt.Sprintf("Completed trades (entry+exit): %d", report.TradeCount),
	}
	lines = appendWarningLine(lines, report, analysis.WarnSmallSample)

	if report.HasConcentration {
		lines = append(lines, fmt.Sprintf("Top %d trades share of total return: %.2f%%",
			report.TopK, report.ConcentrationRatio*100))
		lines = appendWarningLine(lines, report, analysis.WarnConcentration)
	}

	if len(report.MonthlyReturns) > 0 {
		lines = append(lines, "", "--- Monthly returns ---")
		for _, m := range report.MonthlyReturns {
			lines = append(lines, fmt.Sprintf("%s: %.2f%%", m.Month.Format("2006-01"), m.Return*100))
		}
		lines = append(lines, "", fmt.Sprintf("%d of %d months closed negative",
			report.NegativeMonths, len(report.MonthlyReturns)))
		lines = appendWarningLine(lines, report, analysis.WarnNegativeMonths)
	}

	if report.HasMonthlyCV {
		lines = append(lines, fmt.Sprintf("Monthly return coefficient of variation: %s", formatRatio(report.MonthlyCV)))
		lines = appendWarningLine(lines, report, analysis.WarnMonthlyInstability)
	}

	return lines
}

// appendWarningLine appends the warning message for a code when it fired
func appendWarningLine(lines []string, report analysis.OverfitReport, code analysis.WarningCode) []string {
	for _, w := range report.Warnings {
		if w.Code == code {
			return append(lines, "⚠️ "+w.Message)
		}
	}
	return lines
}

// WriteLiquidationReportText writes the simulation summary as key/value text.
// The equity series is reported by length only.
func (r *DefaultTextReporter) WriteLiquidationReportText(result analysis.SimulationResult, path string) error {
	var b strings.Builder
	b.WriteString("=== Liquidation Risk Analysis Report ===\n")
	fmt.Fprintf(&b, "init_cap: %g\n", result.Config.InitialCapital)
	fmt.Fprintf(&b, "leverage: %g\n", result.Config.Leverage)
	fmt.Fprintf(&b, "maintenance_margin_rate: %g\n", result.Config.MaintenanceMarginRate)
	fmt.Fprintf(&b, "liquidation_occurred: %t\n", result.Liquidated)
	if result.Liquidated {
		fmt.Fprintf(&b, "liquidation_trade_index: %d\n", result.LiquidationTradeIndex)
	} else {
		b.WriteString("liquidation_trade_index: none\n")
	}
	fmt.Fprintf(&b, "min_equity: %.6f\n", result.MinEquity)
	fmt.Fprintf(&b, "final_equity: %.6f\n", result.FinalEquity)
	fmt.Fprintf(&b, "max_drawdown_pct: %.6f\n", result.MaxDrawdownPct)
	if math.IsInf(result.CushionMin, 1) {
		b.WriteString("cushion_min: inf\n")
	} else {
		fmt.Fprintf(&b, "cushion_min: %.6f\n", result.CushionMin)
	}
	fmt.Fprintf(&b, "equity_series: (series length=%d)\n", len(result.EquitySeries))

	return writeTextFile(path, b.String())
}

// writeTextFile writes content to path, creating the parent directory if needed
func writeTextFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return os.WriteFile(path, []byte(content), 0644)
}
