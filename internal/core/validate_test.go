package core_test

import (
	"errors"
	"testing"

	"invoice-agent/internal/core"

	"github.com/shopspring/decimal"
)

func TestValidateEntries_RecomputesAmounts(t *testing.T) {
	// Bogus amounts from extraction must be discarded and recomputed.
	raws := []core.RawEntry{
		{Date: "2024-03-15", Hours: "4", Description: "Setup", Amount: "999"},
		{Date: "2024-03-16", Hours: "6", Description: "Development", Amount: "1"},
	}
	rate := decimal.RequireFromString("100.00")

	entries, err := core.ValidateEntries(raws, rate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Amount.StringFixed(2) != "400.00" {
		t.Errorf("entry 0 amount = %s, want 400.00", entries[0].Amount.StringFixed(2))
	}
	if entries[1].Amount.StringFixed(2) != "600.00" {
		t.Errorf("entry 1 amount = %s, want 600.00", entries[1].Amount.StringFixed(2))
	}

	totals, err := core.CalculateTotals(entries)
	if err != nil {
		t.Fatalf("unexpected totals error: %v", err)
	}
	if totals.TotalHours.StringFixed(2) != "10.00" {
		t.Errorf("total hours = %s, want 10.00", totals.TotalHours.StringFixed(2))
	}
	if totals.TotalAmount.StringFixed(2) != "1000.00" {
		t.Errorf("total amount = %s, want 1000.00", totals.TotalAmount.StringFixed(2))
	}
}

func TestValidateEntries_Normalization(t *testing.T) {
	raws := []core.RawEntry{
		{Date: " 2024-03-15 ", Hours: " 4 ", Description: "  Initial project setup  "},
	}
	entries, err := core.ValidateEntries(raws, decimal.RequireFromString("150.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	e := entries[0]
	if e.Date != "2024-03-15" {
		t.Errorf("date = %q, want 2024-03-15", e.Date)
	}
	if e.Hours.StringFixed(2) != "4.00" {
		t.Errorf("hours = %s, want 4.00", e.Hours.StringFixed(2))
	}
	if e.Description != "Initial project setup" {
		t.Errorf("description = %q", e.Description)
	}
	if e.Rate.StringFixed(2) != "150.00" {
		t.Errorf("rate = %s, want 150.00", e.Rate.StringFixed(2))
	}
	if e.Amount.StringFixed(2) != "600.00" {
		t.Errorf("amount = %s, want 600.00", e.Amount.StringFixed(2))
	}
}

func TestValidateEntries_Atomic(t *testing.T) {
	// One invalid entry among valid ones fails the whole call with zero output.
	raws := []core.RawEntry{
		{Date: "2024-03-15", Hours: "4", Description: "Setup"},
		{Date: "2024-03-16", Hours: "many", Description: "Development"},
		{Date: "2024-03-17", Hours: "2", Description: "Client meeting"},
	}
	entries, err := core.ValidateEntries(raws, decimal.RequireFromString("150.00"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if entries != nil {
		t.Errorf("expected no entries on failure, got %d", len(entries))
	}

	var pe *core.PipelineError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PipelineError, got %T", err)
	}
	if pe.Kind != core.ErrInvalidAmount {
		t.Errorf("kind = %s, want %s", pe.Kind, core.ErrInvalidAmount)
	}
	if pe.Index != 1 {
		t.Errorf("index = %d, want 1", pe.Index)
	}
}

func TestValidateEntries_Failures(t *testing.T) {
	rate := decimal.RequireFromString("150.00")
	tests := []struct {
		name      string
		raw       core.RawEntry
		wantKind  core.ErrorKind
		wantIndex int
	}{
		{
			name:     "missing date",
			raw:      core.RawEntry{Hours: "4", Description: "Setup"},
			wantKind: core.ErrMalformedEntry,
		},
		{
			name:     "missing hours",
			raw:      core.RawEntry{Date: "2024-03-15", Description: "Setup"},
			wantKind: core.ErrMalformedEntry,
		},
		{
			name:     "blank description",
			raw:      core.RawEntry{Date: "2024-03-15", Hours: "4", Description: "   "},
			wantKind: core.ErrMalformedEntry,
		},
		{
			name:     "non-ISO date",
			raw:      core.RawEntry{Date: "3/15/2024", Hours: "4", Description: "Setup"},
			wantKind: core.ErrMalformedEntry,
		},
		{
			name:     "negative hours",
			raw:      core.RawEntry{Date: "2024-03-15", Hours: "-4", Description: "Setup"},
			wantKind: core.ErrInvalidAmount,
		},
		{
			name:     "unparseable hours",
			raw:      core.RawEntry{Date: "2024-03-15", Hours: "a few", Description: "Setup"},
			wantKind: core.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := core.ValidateEntries([]core.RawEntry{tt.raw}, rate)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			var pe *core.PipelineError
			if !errors.As(err, &pe) {
				t.Fatalf("expected PipelineError, got %T", err)
			}
			if pe.Kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", pe.Kind, tt.wantKind)
			}
			if pe.Index != 0 {
				t.Errorf("index = %d, want 0", pe.Index)
			}
		})
	}
}

func TestValidateEntries_NegativeRate(t *testing.T) {
	raws := []core.RawEntry{{Date: "2024-03-15", Hours: "4", Description: "Setup"}}
	_, err := core.ValidateEntries(raws, decimal.RequireFromString("-150.00"))
	if core.KindOf(err) != core.ErrInvalidAmount {
		t.Errorf("expected InvalidAmount for negative rate, got %v", err)
	}
}

func TestValidateEntries_Idempotent(t *testing.T) {
	raws := []core.RawEntry{
		{Date: "2024-03-15", Hours: "4", Description: "Setup"},
		{Date: "2024-03-16", Hours: "6.5", Description: "Development"},
	}
	rate := decimal.RequireFromString("150.00")

	first, err := core.ValidateEntries(raws, rate)
	if err != nil {
		t.Fatalf("first pass: %v", err)
	}

	// Feed the normalized output back through as raw records.
	roundTrip := make([]core.RawEntry, len(first))
	for i, e := range first {
		roundTrip[i] = core.RawEntry{
			Date:        e.Date,
			Hours:       e.Hours.StringFixed(2),
			Description: e.Description,
			Rate:        e.Rate.StringFixed(2),
			Amount:      e.Amount.StringFixed(2),
		}
	}
	second, err := core.ValidateEntries(roundTrip, rate)
	if err != nil {
		t.Fatalf("second pass: %v", err)
	}

	for i := range first {
		a, b := first[i], second[i]
		if a.Date != b.Date || a.Description != b.Description ||
			!a.Hours.Equal(b.Hours) || !a.Rate.Equal(b.Rate) || !a.Amount.Equal(b.Amount) {
			t.Errorf("entry %d changed across passes: %+v vs %+v", i, a, b)
		}
	}
}

func TestValidateEntries_EmptyInputIsValid(t *testing.T) {
	// Empty input is the aggregator's problem, not the validator's.
	entries, err := core.ValidateEntries(nil, decimal.RequireFromString("150.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty output, got %d entries", len(entries))
	}
}
