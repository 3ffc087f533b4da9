package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// BuildInvoice assembles the final invoice record from a validated entry list,
// its totals, and caller-supplied client and bank metadata. Pure assembly, no
// I/O. Entry order is preserved as given (not re-sorted by date).
//
// The invoice number derives only from the generation date (INV-YYYYMMDD);
// two invoices generated on the same calendar day share a number. Callers
// needing uniqueness must inject their own disambiguator.
func BuildInvoice(entries []TimeEntry, totals InvoiceTotals, rate decimal.Decimal,
	client ClientDetails, bank BankDetails, now time.Time) (*Invoice, error) {

	if len(entries) == 0 {
		return nil, pipelineErrorf(ErrEmptyEntryList, -1, "cannot build an invoice without entries")
	}

	// ISO 8601 dates sort lexicographically in calendar order, so min/max
	// string comparison yields the period bounds.
	periodStart := entries[0].Date
	periodEnd := entries[0].Date
	for _, e := range entries[1:] {
		if e.Date < periodStart {
			periodStart = e.Date
		}
		if e.Date > periodEnd {
			periodEnd = e.Date
		}
	}

	return &Invoice{
		InvoiceNumber: "INV-" + now.Format("20060102"),
		InvoiceDate:   now.Format("2006-01-02"),
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Entries:       entries,
		Totals:        totals,
		HourlyRate:    rate.Round(moneyPlaces),
		Client:        client,
		Bank:          bank,
	}, nil
}
