// Package pdf renders assembled invoices into fixed-layout PDF documents.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"invoice-agent/internal/core"

	"github.com/go-pdf/fpdf"
)

// Renderer is the document rendering sink: it receives an assembled invoice
// and returns the path of the generated file.
type Renderer interface {
	RenderInvoice(inv *core.Invoice) (string, error)
}

// BusinessDetails is the issuer block printed in the FROM section.
type BusinessDetails struct {
	Name    string
	Contact string
	Address string
	Email   string
}

// InvoiceRenderer writes invoices as letter-format PDFs under OutputDir,
// one file per invoice at invoice_{invoice_number}.pdf. Same-day invoices
// share a number and therefore overwrite the same file.
type InvoiceRenderer struct {
	OutputDir string
	Business  BusinessDetails
}

func NewInvoiceRenderer(outputDir string, business BusinessDetails) *InvoiceRenderer {
	return &InvoiceRenderer{OutputDir: outputDir, Business: business}
}

// brand palette, matching the company letterhead
var (
	brandR, brandG, brandB = 46, 90, 136   // deep blue
	greyR, greyG, greyB    = 245, 245, 245 // light panel background
)

func (r *InvoiceRenderer) RenderInvoice(inv *core.Invoice) (string, error) {
	if err := os.MkdirAll(r.OutputDir, 0o755); err != nil {
		return "", &core.PipelineError{Kind: core.ErrRenderFailed, Index: -1,
			Message: fmt.Sprintf("create output dir %s: %v", r.OutputDir, err)}
	}
	outPath := filepath.Join(r.OutputDir, fmt.Sprintf("invoice_%s.pdf", inv.InvoiceNumber))

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(13, 13, 13)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 26

	// Header band
	pdf.SetFillColor(brandR, brandG, brandB)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 24)
	pdf.CellFormat(contentW, 18, r.Business.Name, "", 1, "L", true, 0, "")
	pdf.Ln(4)

	// FROM / INVOICE DETAILS panels
	pdf.SetFillColor(greyR, greyG, greyB)
	top := pdf.GetY()
	leftW := contentW * 0.55

	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(leftW, 6, "FROM", "", 2, "L", true, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 9)
	fromLines := nonEmpty(r.Business.Contact, r.Business.Address, r.Business.Email)
	pdf.MultiCell(leftW, 5, strings.Join(fromLines, "\n"), "", "L", true)
	leftBottom := pdf.GetY()

	pdf.SetXY(13+leftW, top)
	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW-leftW, 6, "INVOICE DETAILS", "", 2, "L", true, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 9)
	details := fmt.Sprintf("Invoice Number: %s\nDate: %s\nPeriod: %s - %s",
		inv.InvoiceNumber, inv.InvoiceDate, inv.PeriodStart, inv.PeriodEnd)
	pdf.SetX(13 + leftW)
	pdf.MultiCell(contentW-leftW, 5, details, "", "L", true)
	if y := pdf.GetY(); y < leftBottom {
		pdf.SetY(leftBottom)
	}
	pdf.Ln(5)

	// BILL TO
	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, "BILL TO", "", 1, "L", false, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 9)
	billLines := nonEmpty(inv.Client.Name, inv.Client.Address, inv.Client.Email)
	if len(billLines) == 0 {
		billLines = []string{"-"}
	}
	pdf.MultiCell(leftW, 5, strings.Join(billLines, "\n"), "", "L", true)
	pdf.Ln(5)

	// Entries table
	colW := []float64{24, contentW - 24 - 18 - 24 - 26, 18, 24, 26}
	headers := []string{"Date", "Description", "Hours", "Rate", "Amount"}
	pdf.SetFillColor(brandR, brandG, brandB)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(colW[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 9)
	fill := false
	for _, e := range inv.Entries {
		if fill {
			pdf.SetFillColor(greyR, greyG, greyB)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.CellFormat(colW[0], 6, e.Date, "1", 0, "C", true, 0, "")
		pdf.CellFormat(colW[1], 6, truncate(e.Description, 70), "1", 0, "L", true, 0, "")
		pdf.CellFormat(colW[2], 6, core.FormatAmount(e.Hours), "1", 0, "R", true, 0, "")
		pdf.CellFormat(colW[3], 6, "$"+core.FormatAmount(e.Rate), "1", 0, "R", true, 0, "")
		pdf.CellFormat(colW[4], 6, "$"+core.FormatAmount(e.Amount), "1", 0, "R", true, 0, "")
		pdf.Ln(-1)
		fill = !fill
	}

	// Totals row
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(greyR, greyG, greyB)
	pdf.CellFormat(colW[0]+colW[1], 7, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colW[2], 7, core.FormatAmount(inv.Totals.TotalHours), "1", 0, "R", true, 0, "")
	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.CellFormat(colW[3]+colW[4], 7, "$"+core.FormatAmount(inv.Totals.TotalAmount), "1", 1, "R", true, 0, "")
	pdf.Ln(6)

	// Payment details
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, "PAYMENT DETAILS", "", 1, "L", false, 0, "")
	pdf.SetTextColor(51, 51, 51)
	pdf.SetFont("Helvetica", "", 9)
	payment := paymentLines(inv.Bank)
	pdf.MultiCell(leftW, 5, strings.Join(payment, "\n"), "", "L", true)
	pdf.Ln(6)

	pdf.SetTextColor(brandR, brandG, brandB)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 6, "Thank you for your business!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return "", &core.PipelineError{Kind: core.ErrRenderFailed, Index: -1,
			Message: fmt.Sprintf("write %s: %v", outPath, err)}
	}
	return outPath, nil
}

func paymentLines(bank core.BankDetails) []string {
	lines := []string{}
	if bank.BankName != "" {
		lines = append(lines, "Bank: "+bank.BankName)
	}
	if bank.BankAddress != "" {
		lines = append(lines, "Bank Address: "+bank.BankAddress)
	}
	if bank.AccountType != "" {
		lines = append(lines, "Account Type: "+bank.AccountType)
	}
	if bank.RoutingNumber != "" {
		lines = append(lines, "Routing Number: "+bank.RoutingNumber)
	}
	if bank.AccountNumber != "" {
		lines = append(lines, "Account Number: "+bank.AccountNumber)
	}
	if len(lines) == 0 {
		lines = append(lines, "Payment details on file.")
	}
	return lines
}

func nonEmpty(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}

// truncate shortens s to at most max runes. Slicing runes, not bytes, keeps
// multi-byte descriptions from being cut mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
