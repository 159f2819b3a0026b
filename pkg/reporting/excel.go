package reporting

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/quantrisk/overfit-analyzer/internal/analysis"
)

// AnalysisWorkbookFilename is the default name of the written analysis workbook
const AnalysisWorkbookFilename = "overfit_analysis_monthly.xlsx"

// DefaultExcelReporter implements Excel output functionality
type DefaultExcelReporter struct{}

// NewDefaultExcelReporter creates a new Excel reporter
func NewDefaultExcelReporter() *DefaultExcelReporter {
	return &DefaultExcelReporter{}
}

// ExcelStyles holds Excel formatting styles
type ExcelStyles struct {
	HeaderStyle   int
	PercentStyle  int
	CurrencyStyle int
	WarningStyle  int
}

// WriteAnalysisXLSX writes the full analysis workbook: a summary sheet, the
// cumulative-return and equity curves, and the monthly return table. The
// curve sheets carry the raw series the original tool plotted as images.
func (r *DefaultExcelReporter) WriteAnalysisXLSX(series analysis.TradeSeries, report analysis.OverfitReport, result *analysis.SimulationResult, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const summarySheet = "Summary"
	const curveSheet = "Cumulative Returns"
	const equitySheet = "Equity Curve"
	const monthlySheet = "Monthly Returns"

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)
	fx.NewSheet(curveSheet)
	fx.NewSheet(monthlySheet)

	styles, err := r.createExcelStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeSummarySheet(fx, summarySheet, report, result, styles); err != nil {
		return err
	}
	if err := r.writeCumulativeSheet(fx, curveSheet, series, styles); err != nil {
		return err
	}
	if result != nil {
		fx.NewSheet(equitySheet)
		if err := r.writeEquitySheet(fx, equitySheet, *result, styles); err != nil {
			return err
		}
	}
	if err := r.writeMonthlySheet(fx, monthlySheet, report, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

// createExcelStyles creates the workbook styles
func (r *DefaultExcelReporter) createExcelStyles(fx *excelize.File) (ExcelStyles, error) {
	var styles ExcelStyles
	var err error

	styles.HeaderStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	styles.PercentStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    10, // 0.00%
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return styles, err
	}

	styles.CurrencyStyle, err = fx.NewStyle(&excelize.Style{
		NumFmt:    7, // currency
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return styles, err
	}

	styles.WarningStyle, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{Color: "FF0000"},
	})
	return styles, err
}

// writeSummarySheet writes the headline statistics and fired warnings
func (r *DefaultExcelReporter) writeSummarySheet(fx *excelize.File, sheet string, report analysis.OverfitReport, result *analysis.SimulationResult, styles ExcelStyles) error {
	fx.SetCellValue(sheet, "A1", "Metric")
	fx.SetCellValue(sheet, "B1", "Value")
	fx.SetCellStyle(sheet, "A1", "B1", styles.HeaderStyle)

	row := 2
	writeKV := func(key string, value interface{}) {
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), key)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), value)
		row++
	}

	writeKV("Completed Trades", report.TradeCount)
	if report.HasConcentration {
		writeKV(fmt.Sprintf("Top %d Concentration Ratio", report.TopK), report.ConcentrationRatio)
	}
	writeKV("Negative Months", report.NegativeMonths)
	writeKV("Total Months", len(report.MonthlyReturns))
	if report.HasMonthlyCV {
		writeKV("Monthly CV", sanitizeForCell(report.MonthlyCV))
	}

	if result != nil {
		writeKV("Initial Capital", result.Config.InitialCapital)
		writeKV("Leverage", result.Config.Leverage)
		writeKV("Maintenance Margin Rate", result.Config.MaintenanceMarginRate)
		writeKV("Liquidated", result.Liquidated)
		if result.Liquidated {
			writeKV("Liquidation Trade Index", result.LiquidationTradeIndex)
		}
		writeKV("Min Equity", result.MinEquity)
		writeKV("Final Equity", result.FinalEquity)
		writeKV("Max Drawdown %", result.MaxDrawdownPct)
		writeKV("Cushion Min", sanitizeForCell(result.CushionMin))
	}

	if len(report.Warnings) > 0 {
		row++
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Warnings")
		fx.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), styles.HeaderStyle)
		row++
		for _, w := range report.Warnings {
			cell := fmt.Sprintf("A%d", row)
			fx.SetCellValue(sheet, cell, w.Message)
			fx.SetCellStyle(sheet, cell, cell, styles.WarningStyle)
			row++
		}
	}

	return fx.SetColWidth(sheet, "A", "A", 32)
}

// writeCumulativeSheet writes the non-compounded cumulative return series,
// one row per trade in sequence order.
func (r *DefaultExcelReporter) writeCumulativeSheet(fx *excelize.File, sheet string, series analysis.TradeSeries, styles ExcelStyles) error {
	fx.SetCellValue(sheet, "A1", "Trade #")
	fx.SetCellValue(sheet, "B1", "Date")
	fx.SetCellValue(sheet, "C1", "Return")
	fx.SetCellValue(sheet, "D1", "Cumulative Return")
	fx.SetCellStyle(sheet, "A1", "D1", styles.HeaderStyle)

	cumulative := 0.0
	for i := 0; i < series.Len(); i++ {
		trade := series.At(i)
		cumulative += trade.ReturnFraction
		row := i + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), trade.Index)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), trade.Date.Format("2006-01-02 15:04:05"))
		fx.SetCellValue(sheet, fmt.Sprintf("C%d", row), trade.ReturnFraction)
		fx.SetCellValue(sheet, fmt.Sprintf("D%d", row), cumulative)
	}
	if series.Len() > 0 {
		if err := fx.SetCellStyle(sheet, "C2", fmt.Sprintf("D%d", series.Len()+1), styles.PercentStyle); err != nil {
			return err
		}
	}
	return nil
}

// writeEquitySheet writes the simulated equity path, step 0 is initial capital
func (r *DefaultExcelReporter) writeEquitySheet(fx *excelize.File, sheet string, result analysis.SimulationResult, styles ExcelStyles) error {
	fx.SetCellValue(sheet, "A1", "Step")
	fx.SetCellValue(sheet, "B1", "Equity")
	fx.SetCellStyle(sheet, "A1", "B1", styles.HeaderStyle)

	for i, equity := range result.EquitySeries {
		row := i + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), i)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), equity)
	}
	if len(result.EquitySeries) > 0 {
		if err := fx.SetCellStyle(sheet, "B2", fmt.Sprintf("B%d", len(result.EquitySeries)+1), styles.CurrencyStyle); err != nil {
			return err
		}
	}
	return nil
}

// writeMonthlySheet writes the per-month aggregated returns
func (r *DefaultExcelReporter) writeMonthlySheet(fx *excelize.File, sheet string, report analysis.OverfitReport, styles ExcelStyles) error {
	fx.SetCellValue(sheet, "A1", "Month")
	fx.SetCellValue(sheet, "B1", "Return")
	fx.SetCellStyle(sheet, "A1", "B1", styles.HeaderStyle)

	for i, m := range report.MonthlyReturns {
		row := i + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), m.Month.Format("2006-01"))
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), m.Return)
	}
	if len(report.MonthlyReturns) > 0 {
		if err := fx.SetCellStyle(sheet, "B2", fmt.Sprintf("B%d", len(report.MonthlyReturns)+1), styles.PercentStyle); err != nil {
			return err
		}
	}
	return nil
}

// sanitizeForCell replaces non-finite ratios with a readable string, Excel
// cells cannot hold IEEE infinities.
func sanitizeForCell(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "inf"
	}
	return v
}

// WriteAnalysisXLSX is a convenience function using the default reporter
func WriteAnalysisXLSX(series analysis.TradeSeries, report analysis.OverfitReport, result *analysis.SimulationResult, path string) error {
	return NewDefaultExcelReporter().WriteAnalysisXLSX(series, report, result, path)
}
