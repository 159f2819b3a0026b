package reporting

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/quantrisk/overfit-analyzer/internal/analysis"
)

// ReportJSONFilename is the default name of the combined JSON report
const ReportJSONFilename = "analysis_report.json"

// jsonReport is the serialized shape of a full analysis run
type jsonReport struct {
	SourceFile      string             `json:"source_file"`
	DetectedCapital *detectedCapital   `json:"detected_capital,omitempty"`
	Overfit         jsonOverfitReport  `json:"overfit"`
	Liquidation     *jsonSimulation    `json:"liquidation,omitempty"`
}

type detectedCapital struct {
	Value  float64 `json:"value"`
	Source string  `json:"source"`
}

type jsonOverfitReport struct {
	TradeCount         int                `json:"trade_count"`
	TopK               int                `json:"top_k"`
	ConcentrationRatio *float64           `json:"concentration_ratio,omitempty"`
	MonthlyReturns     []jsonMonthlyEntry `json:"monthly_returns"`
	NegativeMonths     int                `json:"negative_months"`
	NegativeMonthRatio float64            `json:"negative_month_ratio"`
	MonthlyCV          *string            `json:"monthly_cv,omitempty"`
	Warnings           []jsonWarning      `json:"warnings"`
}

type jsonMonthlyEntry struct {
	Month  string  `json:"month"`
	Return float64 `json:"return"`
}

type jsonWarning struct {
	Code      string  `json:"code"`
	Message   string  `json:"message"`
	Threshold float64 `json:"threshold"`
	Value     float64 `json:"value"`
}

type jsonSimulation struct {
	InitialCapital        float64   `json:"initial_capital"`
	Leverage              float64   `json:"leverage"`
	MaintenanceMarginRate float64   `json:"maintenance_margin_rate"`
	Liquidated            bool      `json:"liquidated"`
	LiquidationTradeIndex *int      `json:"liquidation_trade_index,omitempty"`
	MinEquity             float64   `json:"min_equity"`
	FinalEquity           float64   `json:"final_equity"`
	MaxDrawdownPct        float64   `json:"max_drawdown_pct"`
	CushionMin            string    `json:"cushion_min"`
	EquitySeries          []float64 `json:"equity_series"`
}

// DefaultJSONReporter implements JSON output functionality
type DefaultJSONReporter struct{}

// NewDefaultJSONReporter creates a new JSON reporter
func NewDefaultJSONReporter() *DefaultJSONReporter {
	return &DefaultJSONReporter{}
}

// WriteReportJSON writes the combined analysis report to a JSON file
func (r *DefaultJSONReporter) WriteReportJSON(ctx AnalysisContext, report analysis.OverfitReport, result *analysis.SimulationResult, path string) error {
	data, err := r.FormatReport(ctx, report, result)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// FormatReport formats the combined report as indented JSON bytes
func (r *DefaultJSONReporter) FormatReport(ctx AnalysisContext, report analysis.OverfitReport, result *analysis.SimulationResult) ([]byte, error) {
	out := jsonReport{
		SourceFile: ctx.SourceFile,
		Overfit:    convertOverfitReport(report),
	}
	if ctx.CapitalSource != "" {
		out.DetectedCapital = &detectedCapital{Value: ctx.DetectedCapital, Source: ctx.CapitalSource}
	}
	if result != nil {
		sim := convertSimulation(*result)
		out.Liquidation = &sim
	}
	return json.MarshalIndent(out, "", "  ")
}

func convertOverfitReport(report analysis.OverfitReport) jsonOverfitReport {
	out := jsonOverfitReport{
		TradeCount:         report.TradeCount,
		TopK:               report.TopK,
		NegativeMonths:     report.NegativeMonths,
		NegativeMonthRatio: report.NegativeMonthRatio,
		MonthlyReturns:     []jsonMonthlyEntry{},
		Warnings:           []jsonWarning{},
	}
	if report.HasConcentration {
		ratio := report.ConcentrationRatio
		out.ConcentrationRatio = &ratio
	}
	if report.HasMonthlyCV {
		cv := formatJSONRatio(report.MonthlyCV)
		out.MonthlyCV = &cv
	}
	for _, m := range report.MonthlyReturns {
		out.MonthlyReturns = append(out.MonthlyReturns, jsonMonthlyEntry{
			Month:  m.Month.Format("2006-01"),
			Return: m.Return,
		})
	}
	for _, w := range report.Warnings {
		out.Warnings = append(out.Warnings, jsonWarning{
			Code:      string(w.Code),
			Message:   w.Message,
			Threshold: w.Threshold,
			Value:     w.Value,
		})
	}
	return out
}

func convertSimulation(result analysis.SimulationResult) jsonSimulation {
	sim := jsonSimulation{
		InitialCapital:        result.Config.InitialCapital,
		Leverage:              result.Config.Leverage,
		MaintenanceMarginRate: result.Config.MaintenanceMarginRate,
		Liquidated:            result.Liquidated,
		MinEquity:             result.MinEquity,
		FinalEquity:           result.FinalEquity,
		MaxDrawdownPct:        result.MaxDrawdownPct,
		CushionMin:            formatJSONRatio(result.CushionMin),
		EquitySeries:          result.EquitySeries,
	}
	if result.Liquidated {
		idx := result.LiquidationTradeIndex
		sim.LiquidationTradeIndex = &idx
	}
	return sim
}

// formatJSONRatio renders a ratio as a string, JSON has no infinity literal
func formatJSONRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return fmt.Sprintf("%g", v)
}

// WriteReportJSON is a convenience function using the default reporter
func WriteReportJSON(ctx AnalysisContext, report analysis.OverfitReport, result *analysis.SimulationResult, path string) error {
	return NewDefaultJSONReporter().WriteReportJSON(ctx, report, result, path)
}
