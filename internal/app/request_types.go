package app

import (
	"invoice-agent/internal/core"

	"github.com/shopspring/decimal"
)

// GenerateInvoiceRequest is the input for the full invoice pipeline.
// Client and Bank are opaque pass-through blocks: the pipeline copies them
// onto the invoice without interpreting them.
type GenerateInvoiceRequest struct {
	RawText    string             `json:"raw_text"`
	HourlyRate decimal.Decimal    `json:"hourly_rate"`
	Client     core.ClientDetails `json:"client"`
	Bank       core.BankDetails   `json:"bank"`
	SkipRender bool               `json:"skip_render,omitempty"`
}

// PreviewRequest is the input for extraction-plus-validation without assembly.
type PreviewRequest struct {
	RawText    string          `json:"raw_text"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}
