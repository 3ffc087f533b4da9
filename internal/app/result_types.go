package app

import "invoice-agent/internal/core"

// InvoiceResult is returned by GenerateInvoice.
type InvoiceResult struct {
	Invoice *core.Invoice `json:"invoice"`
	PDFPath string        `json:"pdf_path,omitempty"`
}

// PreviewResult is returned by PreviewEntries.
type PreviewResult struct {
	Entries []core.TimeEntry   `json:"entries"`
	Totals  core.InvoiceTotals `json:"totals"`
}

// InvoiceListResult is returned by ListInvoices.
type InvoiceListResult struct {
	Invoices []core.InvoiceRecord `json:"invoices"`
}

// PostListResult is returned by ListPosts.
type PostListResult struct {
	Posts []core.BlogPost `json:"posts"`
}

// UserSession is returned by AuthenticateUser.
type UserSession struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
