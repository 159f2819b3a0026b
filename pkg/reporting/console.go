package reporting

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/quantrisk/overfit-analyzer/internal/analysis"
)

// DefaultConsoleReporter implements console output functionality
type DefaultConsoleReporter struct{}

// NewDefaultConsoleReporter creates a new console reporter
func NewDefaultConsoleReporter() *DefaultConsoleReporter {
	return &DefaultConsoleReporter{}
}

// OutputOverfitReport prints the over-optimization diagnostics to console
func (r *DefaultConsoleReporter) OutputOverfitReport(report analysis.OverfitReport) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("📊 OVER-OPTIMIZATION ANALYSIS (Net P&L % based)")
	fmt.Println(strings.Repeat("=", 60))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("STATISTICS")
	t.SetStyle(table.StyleRounded)

	rows := []table.Row{
		{"🔄 Completed Trades", fmt.Sprintf("%d", report.TradeCount)},
	}
	if report.HasConcentration {
		rows = append(rows, table.Row{
			fmt.Sprintf("🎯 Top %d Concentration", report.TopK),
			fmt.Sprintf("%.2f%%", report.ConcentrationRatio*100),
		})
	}
	if len(report.MonthlyReturns) > 0 {
		rows = append(rows, table.Row{
			"📉 Negative Months",
			fmt.Sprintf("%d of %d (%.1f%%)", report.NegativeMonths, len(report.MonthlyReturns), report.NegativeMonthRatio*100),
		})
	}
	if report.HasMonthlyCV {
		rows = append(rows, table.Row{"📊 Monthly CV", formatRatio(report.MonthlyCV)})
	}
	t.AppendRows(rows)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 24, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, Align: text.AlignLeft},
	})
	t.Render()

	r.printMonthlyReturns(report.MonthlyReturns)
	r.printWarnings(report.Warnings)
}

// printMonthlyReturns renders the per-month aggregated return table
func (r *DefaultConsoleReporter) printMonthlyReturns(months []analysis.MonthlyReturn) {
	if len(months) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("MONTHLY RETURNS")
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Month", "Return"})

	for _, m := range months {
		marker := "🟢"
		if m.Return < 0 {
			marker = "🔴"
		}
		t.AppendRow(table.Row{
			m.Month.Format("2006-01"),
			fmt.Sprintf("%s %+.2f%%", marker, m.Return*100),
		})
	}
	t.Render()
}

// printWarnings lists the fired heuristics, or confirms that none fired
func (r *DefaultConsoleReporter) printWarnings(warnings []analysis.Warning) {
	if len(warnings) == 0 {
		fmt.Println("\n✅ No over-optimization warnings fired")
		return
	}

	fmt.Printf("\n⚠️  %d WARNING(S):\n", len(warnings))
	for _, w := range warnings {
		fmt.Printf("   • %s\n", w.Message)
	}
}

// OutputSimulationResult prints the liquidation risk simulation to console
func (r *DefaultConsoleReporter) OutputSimulationResult(result analysis.SimulationResult) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("💥 LIQUIDATION RISK ANALYSIS")
	fmt.Println(strings.Repeat("=", 60))

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetTitle("MARGIN ACCOUNT SIMULATION")
	t.SetStyle(table.StyleRounded)

	liquidated := "✅ No"
	if result.Liquidated {
		liquidated = fmt.Sprintf("💥 Yes (trade #%d)", result.LiquidationTradeIndex)
	}

	t.AppendRows([]table.Row{
		{"💰 Initial Capital", fmt.Sprintf("$%.2f", result.Config.InitialCapital)},
		{"⚖️  Leverage", fmt.Sprintf("%.1fx", result.Config.Leverage)},
		{"🛡️  Maintenance Rate", fmt.Sprintf("%.2f%%", result.Config.MaintenanceMarginRate*100)},
		{"💥 Liquidated", liquidated},
		{"💰 Final Equity", fmt.Sprintf("$%.2f", result.FinalEquity)},
		{"📉 Min Equity", fmt.Sprintf("$%.2f", result.MinEquity)},
		{"📉 Max Drawdown", fmt.Sprintf("%.2f%%", result.MaxDrawdownPct)},
		{"🛡️  Cushion (min)", formatRatio(result.CushionMin)},
	})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 24, Align: text.AlignLeft},
		{Number: 2, WidthMin: 20, Align: text.AlignLeft},
	})
	t.Render()
}

// formatRatio renders a ratio that may legitimately be infinite
func formatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "∞"
	}
	return fmt.Sprintf("%.2f", v)
}

// Package-level convenience functions

// OutputOverfitConsole prints the over-optimization report using the default reporter
func OutputOverfitConsole(report analysis.OverfitReport) {
	NewDefaultConsoleReporter().OutputOverfitReport(report)
}

// OutputSimulationConsole prints the simulation result using the default reporter
func OutputSimulationConsole(result analysis.SimulationResult) {
	NewDefaultConsoleReporter().OutputSimulationResult(result)
}
