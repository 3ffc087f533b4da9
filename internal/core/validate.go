package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ValidateEntries normalizes a list of raw extraction records against a single
// hourly rate. Validation is atomic: any invalid entry fails the whole call and
// no TimeEntry records are produced, so the caller surfaces one clear error
// instead of a partially-billed invoice.
//
// Per-entry amounts are always recomputed as hours*rate. The extraction step
// may compute wrong or fabricated totals; its amount field is never trusted.
func ValidateEntries(raws []RawEntry, rate decimal.Decimal) ([]TimeEntry, error) {
	if rate.IsNegative() {
		return nil, pipelineErrorf(ErrInvalidAmount, -1, "hourly rate must not be negative, got %s", rate)
	}
	rate = rate.Round(moneyPlaces)

	entries := make([]TimeEntry, 0, len(raws))
	for i, raw := range raws {
		entry, err := validateEntry(raw, rate, i)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func validateEntry(raw RawEntry, rate decimal.Decimal, index int) (TimeEntry, error) {
	var missing []string
	if strings.TrimSpace(raw.Date) == "" {
		missing = append(missing, "date")
	}
	if strings.TrimSpace(raw.Hours) == "" {
		missing = append(missing, "hours")
	}
	if strings.TrimSpace(raw.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return TimeEntry{}, pipelineErrorf(ErrMalformedEntry, index,
			"missing required field(s): %s", strings.Join(missing, ", "))
	}

	date := strings.TrimSpace(raw.Date)
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return TimeEntry{}, pipelineErrorf(ErrMalformedEntry, index,
			"date %q is not in YYYY-MM-DD format", raw.Date)
	}

	hours, err := ParseAmount(raw.Hours)
	if err != nil {
		var pe *PipelineError
		if errors.As(err, &pe) {
			pe.Index = index
		}
		return TimeEntry{}, err
	}
	if hours.IsNegative() {
		return TimeEntry{}, pipelineErrorf(ErrInvalidAmount, index,
			"hours must not be negative, got %s", raw.Hours)
	}

	return TimeEntry{
		Date:        date,
		Hours:       hours,
		Description: strings.TrimSpace(raw.Description),
		Rate:        rate,
		Amount:      MultiplyMoney(hours, rate),
	}, nil
}
