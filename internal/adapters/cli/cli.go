package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"invoice-agent/internal/app"
	"invoice-agent/internal/core"
)

// Run executes a one-shot CLI command and exits.
// args is os.Args[1:] — the first element is the subcommand name.
func Run(ctx context.Context, svc app.ApplicationService, args []string) {
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	switch args[0] {
	case "generate", "gen", "g":
		req := invoiceRequest(args[1:])
		result, err := svc.GenerateInvoice(ctx, req)
		if err != nil {
			log.Fatalf("Invoice generation failed: %v", err)
		}
		printJSON(result.Invoice)
		if result.PDFPath != "" {
			fmt.Fprintln(os.Stderr, "PDF written to", result.PDFPath)
		}

	case "preview", "pre", "p":
		req := invoiceRequest(args[1:])
		result, err := svc.PreviewEntries(ctx, app.PreviewRequest{
			RawText:    req.RawText,
			HourlyRate: req.HourlyRate,
		})
		if err != nil {
			log.Fatalf("Preview failed: %v", err)
		}
		printJSON(result)

	case "render", "r":
		if len(args) < 2 {
			log.Fatal("Usage: app render <invoice number>")
		}
		result, err := svc.RenderInvoice(ctx, args[1])
		if err != nil {
			log.Fatalf("Render failed: %v", err)
		}
		printJSON(result.Invoice)
		fmt.Fprintln(os.Stderr, "PDF written to", result.PDFPath)

	case "invoices", "inv":
		result, err := svc.ListInvoices(ctx)
		if err != nil {
			log.Fatalf("List failed: %v", err)
		}
		printJSON(result)

	case "posts":
		result, err := svc.ListPosts(ctx, false)
		if err != nil {
			log.Fatalf("List failed: %v", err)
		}
		printJSON(result)

	case "draft", "d":
		if len(args) < 2 {
			log.Fatal("Usage: app draft \"<topic>\"")
		}
		post, err := svc.DraftPost(ctx, args[1])
		if err != nil {
			log.Fatalf("Draft failed: %v", err)
		}
		printJSON(post)

	default:
		usage()
		os.Exit(1)
	}
}

// invoiceRequest parses "<timesheet text> <hourly rate>" positional args plus
// optional client/bank JSON blocks read from CLIENT_JSON / BANK_JSON env vars.
func invoiceRequest(args []string) app.GenerateInvoiceRequest {
	if len(args) < 2 {
		log.Fatal("Usage: app generate \"<time entries text>\" <hourly rate>")
	}
	rate, err := core.ParseAmount(args[1])
	if err != nil {
		log.Fatalf("Invalid hourly rate %q: %v", args[1], err)
	}

	req := app.GenerateInvoiceRequest{RawText: args[0], HourlyRate: rate}
	decodeEnvJSON("CLIENT_JSON", &req.Client)
	decodeEnvJSON("BANK_JSON", &req.Bank)
	return req
}

func decodeEnvJSON(key string, v any) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage:
  app generate "<time entries text>" <hourly rate>   Generate invoice + PDF
  app preview  "<time entries text>" <hourly rate>   Extract and validate only
  app render   <invoice number>                      Re-render an archived invoice PDF
  app invoices                                       List archived invoices
  app posts                                          List blog posts
  app draft "<topic>"                                Draft a blog post`)
}
