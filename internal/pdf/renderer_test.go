package pdf_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"invoice-agent/internal/core"
	"invoice-agent/internal/pdf"

	"github.com/shopspring/decimal"
)

func testInvoice(t *testing.T) *core.Invoice {
	t.Helper()
	rate := decimal.RequireFromString("150.00")
	entries, err := core.ValidateEntries([]core.RawEntry{
		{Date: "2024-03-15", Hours: "4", Description: "Initial project setup"},
		{Date: "2024-03-16", Hours: "6.5", Description: "Development work"},
		{Date: "2024-03-17", Hours: "2", Description: "Client meeting"},
	}, rate)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	totals, err := core.CalculateTotals(entries)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	inv, err := core.BuildInvoice(entries, totals, rate,
		core.ClientDetails{Name: "Acme Corp", Address: "1 Main St, Springfield"},
		core.BankDetails{BankName: "First Bank", AccountType: "Checking", RoutingNumber: "021000021", AccountNumber: "123456789"},
		time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return inv
}

func TestRenderInvoice_WritesDeterministicPath(t *testing.T) {
	dir := t.TempDir()
	r := pdf.NewInvoiceRenderer(filepath.Join(dir, "invoices"), pdf.BusinessDetails{
		Name:    "V3Consult",
		Contact: "Willy VanSickle",
		Address: "375 Dean Apt 316, Brooklyn, NY 11217",
		Email:   "billing@example.com",
	})

	path, err := r.RenderInvoice(testInvoice(t))
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	want := filepath.Join(dir, "invoices", "invoice_INV-20240320.pdf")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	// The output dir is auto-created and the file is non-trivial.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat rendered file: %v", err)
	}
	if info.Size() == 0 {
		t.Error("rendered PDF is empty")
	}
}

func TestRenderInvoice_UnwritableDir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are not enforced")
	}
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	r := pdf.NewInvoiceRenderer(filepath.Join(dir, "out"), pdf.BusinessDetails{Name: "V3Consult"})
	_, err := r.RenderInvoice(testInvoice(t))
	if core.KindOf(err) != core.ErrRenderFailed {
		t.Errorf("expected RenderFailed, got %v", err)
	}
}
