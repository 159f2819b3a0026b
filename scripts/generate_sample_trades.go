package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"
)

// Generates a sample exported trade-list workbook for trying the analyzer
// without a real platform export. The layout mirrors a TradingView strategy
// export: a "List of trades" sheet with paired entry/exit rows and a
// "Properties" sheet carrying the initial capital.

func main() {
	var (
		output  = flag.String("output", "data/sample_backtest.xlsx", "Output workbook path")
		trades  = flag.Int("trades", 50, "Number of completed trades to generate")
		capital = flag.Float64("capital", 300, "Initial capital written to the Properties sheet")
		seed    = flag.Int64("seed", 42, "Random seed")
		start   = flag.String("start", "2024-01-02", "First trade date (YYYY-MM-DD)")
	)

	flag.Parse()

	startDate, err := time.Parse("2006-01-02", *start)
	if err != nil {
		log.Fatalf("Invalid start date format: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	fmt.Printf("\n📊 Generating %d sample trades\n", *trades)
	fmt.Printf("📁 Output: %s\n", *output)

	if err := writeWorkbook(*output, *trades, *capital, *seed, startDate); err != nil {
		log.Fatalf("Failed to write workbook: %v", err)
	}

	fmt.Printf("✅ Sample workbook saved to %s\n", *output)
	fmt.Printf("\nTry it:\n  overfit-analyzer -data %s\n", *output)
}

func writeWorkbook(path string, trades int, capital float64, seed int64, startDate time.Time) error {
	rng := rand.New(rand.NewSource(seed))

	fx := excelize.NewFile()
	defer fx.Close()

	const tradesSheet = "List of trades"
	const propsSheet = "Properties"

	if err := fx.SetSheetName(fx.GetSheetName(0), tradesSheet); err != nil {
		return err
	}
	if _, err := fx.NewSheet(propsSheet); err != nil {
		return err
	}

	header := []interface{}{"Trade #", "Type", "Date/Time", "Price", "Net P&L %"}
	if err := fx.SetSheetRow(tradesSheet, "A1", &header); err != nil {
		return err
	}

	// Mildly profitable returns with fat losing tails, enough to light up
	// the analyzer's statistics on a default run
	row := 2
	date := startDate
	price := 42000.0
	for i := 1; i <= trades; i++ {
		returnPct := rng.NormFloat64()*2.0 + 0.3
		holdHours := 4 + rng.Intn(72)

		entry := []interface{}{i, "Entry long", date.Format("2006-01-02 15:04:05"), price, ""}
		if err := fx.SetSheetRow(tradesSheet, fmt.Sprintf("A%d", row), &entry); err != nil {
			return err
		}
		row++

		date = date.Add(time.Duration(holdHours) * time.Hour)
		price *= 1 + returnPct/100
		exit := []interface{}{i, "Exit long", date.Format("2006-01-02 15:04:05"), price, returnPct}
		if err := fx.SetSheetRow(tradesSheet, fmt.Sprintf("A%d", row), &exit); err != nil {
			return err
		}
		row++

		date = date.Add(time.Duration(2+rng.Intn(24)) * time.Hour)
	}

	propsHeader := []interface{}{"Initial Capital", "Symbol", "Timeframe"}
	if err := fx.SetSheetRow(propsSheet, "A1", &propsHeader); err != nil {
		return err
	}
	propsRow := []interface{}{capital, "BTCUSDT", "1h"}
	if err := fx.SetSheetRow(propsSheet, "A2", &propsRow); err != nil {
		return err
	}

	return fx.SaveAs(path)
}
