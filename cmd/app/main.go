package main

import (
	"context"
	"log"
	"os"

	"invoice-agent/internal/adapters/cli"
	"invoice-agent/internal/ai"
	"invoice-agent/internal/app"
	"invoice-agent/internal/core"
	"invoice-agent/internal/db"
	"invoice-agent/internal/pdf"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer pool.Close()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set")
	}

	outputDir := os.Getenv("INVOICE_OUTPUT_DIR")
	if outputDir == "" {
		outputDir = "outputs"
	}
	renderer := pdf.NewInvoiceRenderer(outputDir, pdf.BusinessDetails{
		Name:    os.Getenv("BUSINESS_NAME"),
		Contact: os.Getenv("BUSINESS_CONTACT"),
		Address: os.Getenv("BUSINESS_ADDRESS"),
		Email:   os.Getenv("BUSINESS_EMAIL"),
	})

	svc := app.NewAppService(
		ai.NewExtractor(apiKey),
		ai.NewWriter(apiKey),
		renderer,
		core.NewInvoiceService(pool),
		core.NewPostService(pool),
		core.NewUserService(pool),
	)

	cli.Run(ctx, svc, os.Args[1:])
}
