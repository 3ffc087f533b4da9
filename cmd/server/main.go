package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "invoice-agent/internal/adapters/web"
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
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set")
	}
	extractor := ai.NewExtractor(apiKey)
	writer := ai.NewWriter(apiKey)

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
		extractor,
		writer,
		renderer,
		core.NewInvoiceService(pool),
		core.NewPostService(pool),
		core.NewUserService(pool),
	)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
