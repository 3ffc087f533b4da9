package core

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// InvoiceRecord is a stored snapshot of a generated invoice.
type InvoiceRecord struct {
	ID            int             `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   string          `json:"invoice_date"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	HourlyRate    decimal.Decimal `json:"hourly_rate"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Entries       []TimeEntry     `json:"entries"`
	Client        ClientDetails   `json:"client"`
	Bank          BankDetails     `json:"bank"`
	PDFPath       string          `json:"pdf_path,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// InvoiceService archives generated invoices. Invoice numbers are date-only
// and collide across same-day invoices, so the archive is keyed by a serial
// ID and lookups by number return the most recent match.
type InvoiceService interface {
	// SaveInvoice stores a generated invoice snapshot and returns its record.
	SaveInvoice(ctx context.Context, inv *Invoice) (*InvoiceRecord, error)

	// ListInvoices returns stored invoices, newest first.
	ListInvoices(ctx context.Context) ([]InvoiceRecord, error)

	// GetInvoiceByNumber returns the most recently stored invoice with the
	// given number.
	GetInvoiceByNumber(ctx context.Context, number string) (*InvoiceRecord, error)

	// UpdatePDFPath records the rendered file path for a stored invoice.
	UpdatePDFPath(ctx context.Context, id int, pdfPath string) error
}

type invoiceService struct {
	pool *pgxpool.Pool
}

// NewInvoiceService constructs an InvoiceService backed by PostgreSQL.
func NewInvoiceService(pool *pgxpool.Pool) InvoiceService {
	return &invoiceService{pool: pool}
}

const invoiceColumns = `id, invoice_number, invoice_date, period_start, period_end,
	hourly_rate, total_hours, total_amount, entries, client, bank, pdf_path, created_at`

func scanInvoice(row interface{ Scan(dest ...any) error }) (*InvoiceRecord, error) {
	rec := &InvoiceRecord{}
	var pdfPath *string
	if err := row.Scan(
		&rec.ID, &rec.InvoiceNumber, &rec.InvoiceDate, &rec.PeriodStart, &rec.PeriodEnd,
		&rec.HourlyRate, &rec.TotalHours, &rec.TotalAmount,
		&rec.Entries, &rec.Client, &rec.Bank, &pdfPath, &rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	if pdfPath != nil {
		rec.PDFPath = *pdfPath
	}
	return rec, nil
}

func (s *invoiceService) SaveInvoice(ctx context.Context, inv *Invoice) (*InvoiceRecord, error) {
	rec, err := scanInvoice(s.pool.QueryRow(ctx, `
		INSERT INTO invoices (invoice_number, invoice_date, period_start, period_end,
		                      hourly_rate, total_hours, total_amount, entries, client, bank, pdf_path)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING `+invoiceColumns,
		inv.InvoiceNumber, inv.InvoiceDate, inv.PeriodStart, inv.PeriodEnd,
		inv.HourlyRate, inv.Totals.TotalHours, inv.Totals.TotalAmount,
		inv.Entries, inv.Client, inv.Bank, nullable(inv.PDFPath),
	))
	if err != nil {
		return nil, fmt.Errorf("save invoice %s: %w", inv.InvoiceNumber, err)
	}
	return rec, nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) ([]InvoiceRecord, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	var records []InvoiceRecord
	for rows.Next() {
		rec, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (s *invoiceService) GetInvoiceByNumber(ctx context.Context, number string) (*InvoiceRecord, error) {
	rec, err := scanInvoice(s.pool.QueryRow(ctx, `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE invoice_number = $1
		ORDER BY created_at DESC
		LIMIT 1`,
		number,
	))
	if err != nil {
		return nil, fmt.Errorf("invoice %s not found: %w", number, err)
	}
	return rec, nil
}

func (s *invoiceService) UpdatePDFPath(ctx context.Context, id int, pdfPath string) error {
	tag, err := s.pool.Exec(ctx, `UPDATE invoices SET pdf_path = $2 WHERE id = $1`, id, pdfPath)
	if err != nil {
		return fmt.Errorf("update pdf path for invoice id=%d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("invoice id=%d not found", id)
	}
	return nil
}
