package core_test

import (
	"testing"

	"invoice-agent/internal/core"

	"github.com/shopspring/decimal"
)

func mustEntry(t *testing.T, date, hours, rate string) core.TimeEntry {
	t.Helper()
	entries, err := core.ValidateEntries(
		[]core.RawEntry{{Date: date, Hours: hours, Description: "work"}},
		decimal.RequireFromString(rate),
	)
	if err != nil {
		t.Fatalf("building test entry: %v", err)
	}
	return entries[0]
}

func TestCalculateTotals(t *testing.T) {
	entries := []core.TimeEntry{
		mustEntry(t, "2024-03-15", "4", "150.00"),
		mustEntry(t, "2024-03-16", "6.5", "150.00"),
		mustEntry(t, "2024-03-17", "2", "150.00"),
	}

	totals, err := core.CalculateTotals(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.TotalHours.StringFixed(2) != "12.50" {
		t.Errorf("total hours = %s, want 12.50", totals.TotalHours.StringFixed(2))
	}
	if totals.TotalAmount.StringFixed(2) != "1875.00" {
		t.Errorf("total amount = %s, want 1875.00", totals.TotalAmount.StringFixed(2))
	}
}

func TestCalculateTotals_AdditiveRounding(t *testing.T) {
	// Totals are the sum of already-rounded per-entry amounts, not
	// total_hours * rate. 0.33h and 0.33h at 1.50/h round to 0.50 each:
	// additive total 1.00, while 0.66 * 1.50 = 0.99.
	entries := []core.TimeEntry{
		mustEntry(t, "2024-03-15", "0.33", "1.50"),
		mustEntry(t, "2024-03-16", "0.33", "1.50"),
	}

	totals, err := core.CalculateTotals(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if totals.TotalAmount.StringFixed(2) != "1.00" {
		t.Errorf("total amount = %s, want 1.00 (additive rounding)", totals.TotalAmount.StringFixed(2))
	}

	multiplicative := core.MultiplyMoney(totals.TotalHours, decimal.RequireFromString("1.50"))
	if multiplicative.StringFixed(2) != "0.99" {
		t.Errorf("sanity check: multiplicative total = %s, want 0.99", multiplicative.StringFixed(2))
	}
}

func TestCalculateTotals_ExactDecimalSum(t *testing.T) {
	// Decimal equality, not floating-point approximate equality.
	entries := []core.TimeEntry{
		mustEntry(t, "2024-03-15", "0.1", "1.00"),
		mustEntry(t, "2024-03-16", "0.2", "1.00"),
	}
	totals, err := core.CalculateTotals(entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	if !totals.TotalAmount.Equal(sum) {
		t.Errorf("total amount %s != exact sum %s", totals.TotalAmount, sum)
	}
}

func TestCalculateTotals_Empty(t *testing.T) {
	_, err := core.CalculateTotals(nil)
	if core.KindOf(err) != core.ErrEmptyEntryList {
		t.Errorf("expected EmptyEntryList, got %v", err)
	}
}
