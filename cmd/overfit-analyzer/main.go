package main

import (
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/quantrisk/overfit-analyzer/internal/analysis"
	"github.com/quantrisk/overfit-analyzer/internal/config"
	"github.com/quantrisk/overfit-analyzer/internal/workbook"
	"github.com/quantrisk/overfit-analyzer/pkg/data"
	"github.com/quantrisk/overfit-analyzer/pkg/reporting"
)

const (
	AppName    = "Overfit Analyzer"
	AppVersion = "1.0.0"
)

func main() {
	flags := NewAnalyzerFlags()
	flag.Parse()

	if *flags.ShowVersion {
		fmt.Printf("%s v%s\n", AppName, AppVersion)
		return
	}

	if *flags.ShowHelp {
		printUsageHelp()
		return
	}

	if err := ValidateAnalyzerFlags(flags); err != nil {
		log.Fatalf("❌ Flag validation error: %v", err)
	}

	printHeader()

	loadEnvironment(*flags.EnvFile)
	cfg := config.Load()
	if cfg.DebugLogging() {
		fmt.Printf("🔧 Environment: %s (log level %s)\n", cfg.Environment, cfg.LogLevel)
	}

	// Load and pair the trade list
	provider := data.NewExcelTradeProviderForSheet(*flags.Sheet)
	trades, err := provider.LoadTrades(*flags.DataFile)
	if err != nil {
		log.Fatalf("❌ Failed to load trades: %v", err)
	}
	if len(trades) == 0 {
		log.Fatalf("❌ No completed trades found in %s", *flags.DataFile)
	}

	series := analysis.NewTradeSeries(trades)
	fmt.Printf("📄 Workbook: %s\n", *flags.DataFile)
	fmt.Printf("🔄 Completed trades: %d\n", series.Len())
	fmt.Printf("📈 Total net return: %.2f%%\n", series.TotalReturn()*100)

	// Resolve the margin account configuration
	setFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })
	marginCfg, capitalSource := resolveMarginConfig(flags, cfg, setFlags)
	if cfg.DebugLogging() {
		fmt.Printf("🔧 Margin account: capital=%.2f leverage=%.1fx rate=%.4f full-exposure=%t\n",
			marginCfg.InitialCapital, marginCfg.Leverage, marginCfg.MaintenanceMarginRate, marginCfg.AssumeFullExposure)
	}

	// The two engines are independent, over-optimization diagnostics always run
	report := analysis.EvaluateOverfitRisk(series)
	reporting.OutputOverfitConsole(report)

	var result *analysis.SimulationResult
	if !*flags.NoLiquidation {
		simulated := analysis.SimulateLiquidationRisk(series, marginCfg)
		result = &simulated
		reporting.OutputSimulationConsole(simulated)
	}

	if !*flags.ConsoleOnly {
		ctx := reporting.AnalysisContext{
			SourceFile:      *flags.DataFile,
			DetectedCapital: marginCfg.InitialCapital,
			CapitalSource:   capitalSource,
		}
		saveReports(ctx, series, report, result, outputDir(flags))
	}
}

func printHeader() {
	fmt.Printf("🎯 %s v%s\n", strings.ToUpper(AppName), AppVersion)
	fmt.Printf("%s\n\n", strings.Repeat("=", 50))
}

func printUsageHelp() {
	fmt.Printf("%s v%s - Backtest Over-Optimization & Liquidation Risk Analysis\n\n", AppName, AppVersion)
	fmt.Printf("USAGE:\n  %s [OPTIONS]\n\n", filepath.Base(flag.CommandLine.Name()))

	PrintUsageExamples()
	PrintFlagGroups()

	fmt.Printf("\nFor more information, see the README.\n")
}

func loadEnvironment(envFile string) {
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("⚠️  Could not load %s (%v)", envFile, err)
	}
}

// resolveMarginConfig builds the margin account parameters. Flags set on the
// command line win; otherwise the env-backed configuration applies. The
// initial capital resolves in priority order: explicit -capital flag, a value
// detected inside the workbook, then the configured default.
func resolveMarginConfig(flags *AnalyzerFlags, cfg *config.Config, setFlags map[string]bool) (analysis.MarginAccountConfig, string) {
	marginCfg := cfg.Margin
	if setFlags["leverage"] {
		marginCfg.Leverage = *flags.Leverage
	}
	if setFlags["maintenance-rate"] {
		marginCfg.MaintenanceMarginRate = *flags.MaintenanceRate
	}
	if setFlags["full-exposure"] {
		marginCfg.AssumeFullExposure = *flags.FullExposure
	}

	if *flags.InitialCapital > 0 {
		marginCfg.InitialCapital = *flags.InitialCapital
		fmt.Printf("💰 Initial capital: %.2f (command line)\n", marginCfg.InitialCapital)
		return marginCfg, ""
	}

	if !*flags.NoDetect {
		if detected, ok := detectCapital(*flags.DataFile); ok {
			marginCfg.InitialCapital = detected.Value
			fmt.Printf("💰 Initial capital detected: %.2f (%s)\n", detected.Value, detected.Source)
			return marginCfg, detected.Source
		}
		fmt.Printf("💰 No initial capital found in workbook, using default: %.2f\n", marginCfg.InitialCapital)
	}

	return marginCfg, ""
}

// detectCapital runs the workbook capital search, best effort
func detectCapital(path string) (workbook.DetectedCapital, bool) {
	wb, err := workbook.OpenExcel(path)
	if err != nil {
		log.Printf("⚠️  Capital detection skipped: %v", err)
		return workbook.DetectedCapital{}, false
	}
	defer wb.Close()

	return workbook.DetectInitialCapital(wb)
}

func outputDir(flags *AnalyzerFlags) string {
	if strings.TrimSpace(*flags.OutputDir) != "" {
		return *flags.OutputDir
	}
	return reporting.DefaultOutputDir(*flags.DataFile)
}

// saveReports writes every report medium and logs where each landed
func saveReports(ctx reporting.AnalysisContext, series analysis.TradeSeries, report analysis.OverfitReport, result *analysis.SimulationResult, dir string) {
	text := reporting.NewDefaultTextReporter()

	overfitPath := filepath.Join(dir, reporting.OverfitReportFilename)
	if err := text.WriteOverfitReportText(report, overfitPath); err != nil {
		log.Printf("⚠️  Failed to save overfit report: %v", err)
	} else {
		fmt.Printf("💾 Report saved: %s\n", overfitPath)
	}

	if result != nil {
		liqPath := filepath.Join(dir, reporting.LiquidationReportFilename)
		if err := text.WriteLiquidationReportText(*result, liqPath); err != nil {
			log.Printf("⚠️  Failed to save liquidation report: %v", err)
		} else {
			fmt.Printf("💾 Report saved: %s\n", liqPath)
		}
	}

	xlsxPath := filepath.Join(dir, reporting.AnalysisWorkbookFilename)
	if err := reporting.WriteAnalysisXLSX(series, report, result, xlsxPath); err != nil {
		log.Printf("⚠️  Failed to save analysis workbook: %v", err)
	} else {
		fmt.Printf("💾 Workbook saved: %s\n", xlsxPath)
	}

	jsonPath := filepath.Join(dir, reporting.ReportJSONFilename)
	if err := reporting.WriteReportJSON(ctx, report, result, jsonPath); err != nil {
		log.Printf("⚠️  Failed to save JSON report: %v", err)
	} else {
		fmt.Printf("💾 Report saved: %s\n", jsonPath)
	}
}
