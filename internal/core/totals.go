package core

import "github.com/shopspring/decimal"

// CalculateTotals sums a validated entry list into invoice totals. The sum is
// additive over the already-rounded per-entry amounts; no re-rounding occurs.
// An empty list is rejected: an invoice with zero entries is not a valid
// billing document.
func CalculateTotals(entries []TimeEntry) (InvoiceTotals, error) {
	if len(entries) == 0 {
		return InvoiceTotals{}, pipelineErrorf(ErrEmptyEntryList, -1, "no entries to total")
	}

	totalHours := decimal.Zero
	totalAmount := decimal.Zero
	for _, e := range entries {
		totalHours = AddMoney(totalHours, e.Hours)
		totalAmount = AddMoney(totalAmount, e.Amount)
	}

	return InvoiceTotals{
		TotalHours:  totalHours.Round(moneyPlaces),
		TotalAmount: totalAmount.Round(moneyPlaces),
	}, nil
}
