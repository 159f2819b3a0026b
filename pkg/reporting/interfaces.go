package reporting

import (
	"github.com/quantrisk/overfit-analyzer/internal/analysis"
)

// Package reporting provides output generation for analysis results

// AnalysisContext carries run metadata shared by every report medium
type AnalysisContext struct {
	SourceFile      string
	DetectedCapital float64
	CapitalSource   string // provenance of the detected capital, "" when the default was used
}

// ConsoleReporter defines interface for console output
type ConsoleReporter interface {
	OutputOverfitReport(report analysis.OverfitReport)
	OutputSimulationResult(result analysis.SimulationResult)
}

// FileReporter defines interface for file output
type FileReporter interface {
	WriteOverfitReportText(report analysis.OverfitReport, path string) error
	WriteLiquidationReportText(result analysis.SimulationResult, path string) error
	WriteAnalysisXLSX(series analysis.TradeSeries, report analysis.OverfitReport, result *analysis.SimulationResult, path string) error
	WriteReportJSON(ctx AnalysisContext, report analysis.OverfitReport, result *analysis.SimulationResult, path string) error
}

// Reporter combines all reporting interfaces
type Reporter interface {
	ConsoleReporter
	FileReporter
}
