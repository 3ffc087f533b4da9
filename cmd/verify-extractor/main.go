// verify-extractor is a smoke test for the live extraction path: it sends a
// small sample timesheet to the model and prints the validated entries.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"invoice-agent/internal/ai"
	"invoice-agent/internal/core"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func main() {
	_ = godotenv.Load() // Load .env if present

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY not set")
	}

	extractor := ai.NewExtractor(apiKey)
	ctx := context.Background()

	timesheet := `3/15 - 4 hours - Initial project setup
3/16 - 6.5 hours - Development work
3/17 - 2 hours - Client meeting`
	rate := decimal.RequireFromString("150.00")

	fmt.Printf("EXTRACTING FROM:\n%s\n\n", timesheet)
	raws, err := extractor.ExtractEntries(ctx, timesheet, core.FormatAmount(rate))
	if err != nil {
		log.Fatalf("Extraction error: %v", err)
	}

	entries, err := core.ValidateEntries(raws, rate)
	if err != nil {
		log.Fatalf("Validation error: %v", err)
	}

	fmt.Println("--- VALIDATED ENTRIES ---")
	for _, e := range entries {
		fmt.Printf("%s  %6s h  $%10s  %s\n",
			e.Date, core.FormatAmount(e.Hours), core.FormatAmount(e.Amount), e.Description)
	}

	totals, err := core.CalculateTotals(entries)
	if err != nil {
		log.Fatalf("Totals error: %v", err)
	}
	fmt.Printf("\nTotal: %s hours, $%s\n",
		core.FormatAmount(totals.TotalHours), core.FormatAmount(totals.TotalAmount))
}
