package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/quantrisk/overfit-analyzer/internal/analysis"
	"github.com/quantrisk/overfit-analyzer/pkg/data"
)

// AnalyzerFlags holds all command line flags for the analyzer
type AnalyzerFlags struct {
	// Input
	DataFile *string
	Sheet    *string

	// Margin account settings
	InitialCapital  *float64
	Leverage        *float64
	MaintenanceRate *float64
	FullExposure    *bool

	// Analysis options
	NoLiquidation *bool
	NoDetect      *bool

	// Output options
	ConsoleOnly *bool
	OutputDir   *string
	EnvFile     *string

	// Help and version
	ShowVersion *bool
	ShowHelp    *bool
}

// NewAnalyzerFlags creates and registers all command line flags
func NewAnalyzerFlags() *AnalyzerFlags {
	return &AnalyzerFlags{
		// Input
		DataFile: flag.String("data", "", "Path to the backtest Excel workbook (.xlsx)"),
		Sheet:    flag.String("sheet", data.DefaultTradesSheet, "Trade list sheet name"),

		// Margin account settings
		InitialCapital:  flag.Float64("capital", 0, "Initial capital (0 = auto-detect from workbook, fall back to default)"),
		Leverage:        flag.Float64("leverage", analysis.DefaultLeverage, "Position leverage"),
		MaintenanceRate: flag.Float64("maintenance-rate", analysis.DefaultMaintenanceMarginRate, "Maintenance margin rate (0.005 = 0.5%)"),
		FullExposure:    flag.Bool("full-exposure", true, "Assume full leveraged exposure each trade"),

		// Analysis options
		NoLiquidation: flag.Bool("no-liquidation", false, "Skip the liquidation risk simulation"),
		NoDetect:      flag.Bool("no-detect", false, "Skip workbook capital detection"),

		// Output options
		ConsoleOnly: flag.Bool("console-only", false, "Console output only (no files)"),
		OutputDir:   flag.String("out", "", "Report output directory (default: next to the workbook)"),
		EnvFile:     flag.String("env", ".env", "Environment file path"),

		// Help and version
		ShowVersion: flag.Bool("version", false, "Show version information"),
		ShowHelp:    flag.Bool("help", false, "Show detailed help"),
	}
}

// ValidateAnalyzerFlags performs validation on flag combinations
func ValidateAnalyzerFlags(flags *AnalyzerFlags) error {
	if *flags.ShowVersion || *flags.ShowHelp {
		return nil
	}

	if strings.TrimSpace(*flags.DataFile) == "" {
		return fmt.Errorf("no input workbook specified, use -data FILE")
	}

	if *flags.InitialCapital < 0 {
		return fmt.Errorf("initial capital must not be negative, got: %.2f", *flags.InitialCapital)
	}

	if *flags.Leverage < 0 {
		return fmt.Errorf("leverage must not be negative, got: %.2f", *flags.Leverage)
	}

	if *flags.MaintenanceRate < 0 || *flags.MaintenanceRate >= 1.0 {
		return fmt.Errorf("maintenance margin rate must be in [0, 1), got: %.4f", *flags.MaintenanceRate)
	}

	return nil
}

// PrintUsageExamples prints common invocations
func PrintUsageExamples() {
	examples := []struct {
		command     string
		description string
	}{
		{
			"overfit-analyzer -data results/backtest.xlsx",
			"Full analysis with capital auto-detection and default margin settings",
		},
		{
			"overfit-analyzer -data results/backtest.xlsx -capital 1000 -leverage 5",
			"Override the margin account parameters",
		},
		{
			"overfit-analyzer -data results/backtest.xlsx -no-liquidation",
			"Over-optimization diagnostics only",
		},
		{
			"overfit-analyzer -data results/backtest.xlsx -console-only",
			"Skip report files, console output only",
		},
		{
			"overfit-analyzer -data results/backtest.xlsx -sheet \"Trades\" -out reports/",
			"Custom trade sheet and output directory",
		},
	}

	fmt.Printf("\n📚 USAGE EXAMPLES:\n")
	fmt.Printf("%s\n", strings.Repeat("-", 60))

	for _, example := range examples {
		fmt.Printf("\n• %s\n", example.description)
		fmt.Printf("  %s\n", example.command)
	}
}

// PrintFlagGroups prints flags organized by category
func PrintFlagGroups() {
	fmt.Printf(`
📊 INPUT FLAGS:
  -data FILE            Backtest Excel workbook to analyze (required)
  -sheet NAME           Trade list sheet name (default: %q)

💰 MARGIN ACCOUNT FLAGS:
  -capital AMOUNT       Initial capital; 0 auto-detects from the workbook (default: 0)
  -leverage MULT        Position leverage (default: %.0f)
  -maintenance-rate R   Maintenance margin rate (default: %.3f)
  -full-exposure        Assume full leveraged exposure each trade (default: true)

🧪 ANALYSIS FLAGS:
  -no-liquidation       Skip the liquidation risk simulation
  -no-detect            Skip workbook capital detection

📁 OUTPUT FLAGS:
  -console-only         Console output only, no report files
  -out DIR              Report output directory (default: next to the workbook)
  -env FILE             Environment file path (default: .env)

❓ HELP FLAGS:
  -version              Show version information
  -help                 Show this help message
`, data.DefaultTradesSheet, analysis.DefaultLeverage, analysis.DefaultMaintenanceMarginRate)
}
