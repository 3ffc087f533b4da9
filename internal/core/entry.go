package core

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// RawEntry is the loosely-structured record produced by the AI extraction
// step. All fields are strings: the model's output is untrusted raw material
// and is parsed, checked, and recomputed by ValidateEntries before anything
// downstream sees it.
type RawEntry struct {
	Date        string `json:"date" jsonschema_description:"Work date in YYYY-MM-DD format"`
	Hours       string `json:"hours" jsonschema_description:"Hours worked as a decimal string, e.g. \"4.00\" or \"6.5\""`
	Description string `json:"description" jsonschema_description:"Clear, professional description of the work performed"`
	Rate        string `json:"rate" jsonschema_description:"The hourly rate exactly as given in the instructions, e.g. \"150.00\""`
	Amount      string `json:"amount" jsonschema_description:"hours * rate as a decimal string. This value is recomputed server-side."`
}

// UnmarshalJSON accepts JSON numbers as well as strings for every field.
// Off the strict-schema path the model often emits hours, rate, and amount as
// numbers; they are stringified verbatim here (json.Number keeps the literal,
// so "150.00" stays "150.00") and parsed properly during validation.
func (e *RawEntry) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return err
	}
	e.Date = stringifyField(fields["date"])
	e.Hours = stringifyField(fields["hours"])
	e.Description = stringifyField(fields["description"])
	e.Rate = stringifyField(fields["rate"])
	e.Amount = stringifyField(fields["amount"])
	return nil
}

func stringifyField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// TimesheetExtraction wraps the entry list so the structured-output schema has
// an object root, which the strict JSON-schema response format requires.
type TimesheetExtraction struct {
	Entries []RawEntry `json:"entries" jsonschema_description:"One entry per dated block of billable work found in the text"`
}

// TimeEntry is one validated, billable unit of work. Amount is always
// recomputed from Hours and Rate; whatever amount arrived from extraction is
// discarded. Entries are immutable once validated.
type TimeEntry struct {
	Date        string          `json:"date"`
	Hours       decimal.Decimal `json:"hours"`
	Description string          `json:"description"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// InvoiceTotals aggregates a validated entry list. TotalAmount is the sum of
// already-rounded per-entry amounts, not TotalHours*rate, so small rounding
// residues relative to the multiplicative total are possible and accepted.
type InvoiceTotals struct {
	TotalHours  decimal.Decimal `json:"total_hours"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ClientDetails is caller-supplied billing metadata, passed through to the
// invoice and the rendered document without interpretation.
type ClientDetails struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Email   string `json:"email,omitempty"`
}

// BankDetails is the caller-supplied payment block, passed through verbatim.
type BankDetails struct {
	BankName      string `json:"bank_name"`
	BankAddress   string `json:"bank_address,omitempty"`
	AccountType   string `json:"account_type,omitempty"`
	RoutingNumber string `json:"routing_number"`
	AccountNumber string `json:"account_number"`
}

// Invoice is the assembled billing document covering a date range of entries
// at a single hourly rate.
type Invoice struct {
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   string          `json:"invoice_date"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	Entries       []TimeEntry     `json:"entries"`
	Totals        InvoiceTotals   `json:"totals"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	Client        ClientDetails   `json:"client"`
	Bank          BankDetails     `json:"bank"`
	PDFPath       string          `json:"pdf_path,omitempty"`
}
