package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"invoice-agent/internal/core"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// fakeExtractor returns canned records without calling any external service.
type fakeExtractor struct {
	entries []core.RawEntry
	err     error
	gotRate string
}

func (f *fakeExtractor) ExtractEntries(_ context.Context, _ string, hourlyRate string) ([]core.RawEntry, error) {
	f.gotRate = hourlyRate
	return f.entries, f.err
}

type fakeRenderer struct {
	path   string
	err    error
	called bool
}

func (f *fakeRenderer) RenderInvoice(_ *core.Invoice) (string, error) {
	f.called = true
	return f.path, f.err
}

// fakeInvoiceRepo serves a single canned record.
type fakeInvoiceRepo struct {
	record      *core.InvoiceRecord
	updatedID   int
	updatedPath string
}

func (f *fakeInvoiceRepo) SaveInvoice(_ context.Context, inv *core.Invoice) (*core.InvoiceRecord, error) {
	return &core.InvoiceRecord{InvoiceNumber: inv.InvoiceNumber}, nil
}

func (f *fakeInvoiceRepo) ListInvoices(_ context.Context) ([]core.InvoiceRecord, error) {
	if f.record == nil {
		return nil, nil
	}
	return []core.InvoiceRecord{*f.record}, nil
}

func (f *fakeInvoiceRepo) GetInvoiceByNumber(_ context.Context, number string) (*core.InvoiceRecord, error) {
	if f.record == nil || f.record.InvoiceNumber != number {
		return nil, errors.New("not found")
	}
	return f.record, nil
}

func (f *fakeInvoiceRepo) UpdatePDFPath(_ context.Context, id int, pdfPath string) error {
	f.updatedID = id
	f.updatedPath = pdfPath
	return nil
}

type fakeUsers struct {
	user *core.User
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*core.User, error) {
	if f.user == nil || f.user.Username != username {
		return nil, errors.New("not found")
	}
	return f.user, nil
}

func (f *fakeUsers) GetByID(_ context.Context, _ int) (*core.User, error) {
	return f.user, nil
}

func newTestService(ext *fakeExtractor, rend *fakeRenderer) *appService {
	svc := NewAppService(ext, nil, rend, nil, nil, nil).(*appService)
	svc.now = func() time.Time { return time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestGenerateInvoice_Pipeline(t *testing.T) {
	ext := &fakeExtractor{entries: []core.RawEntry{
		// The fabricated amounts must not survive validation.
		{Date: "2024-03-15", Hours: "4", Description: "Setup", Amount: "999"},
		{Date: "2024-03-16", Hours: "6", Description: "Development", Amount: "1"},
	}}
	rend := &fakeRenderer{path: "/tmp/out/invoice_INV-20240320.pdf"}
	svc := newTestService(ext, rend)

	result, err := svc.GenerateInvoice(context.Background(), GenerateInvoiceRequest{
		RawText:    "3/15 - 4 hours - Setup\n3/16 - 6 hours - Development",
		HourlyRate: decimal.RequireFromString("100.00"),
		Client:     core.ClientDetails{Name: "Acme Corp"},
	})
	if err != nil {
		t.Fatalf("GenerateInvoice: %v", err)
	}

	if ext.gotRate != "100.00" {
		t.Errorf("rate pinned into extraction = %q, want \"100.00\"", ext.gotRate)
	}

	inv := result.Invoice
	if inv.InvoiceNumber != "INV-20240320" {
		t.Errorf("invoice number = %q", inv.InvoiceNumber)
	}
	if inv.Totals.TotalAmount.StringFixed(2) != "1000.00" {
		t.Errorf("total = %s, want 1000.00", inv.Totals.TotalAmount.StringFixed(2))
	}
	if !rend.called {
		t.Error("renderer was not invoked")
	}
	if result.PDFPath != rend.path || inv.PDFPath != rend.path {
		t.Errorf("pdf path not propagated: %q", result.PDFPath)
	}
}

func TestGenerateInvoice_SkipRender(t *testing.T) {
	ext := &fakeExtractor{entries: []core.RawEntry{
		{Date: "2024-03-15", Hours: "4", Description: "Setup"},
	}}
	rend := &fakeRenderer{path: "/tmp/never.pdf"}
	svc := newTestService(ext, rend)

	result, err := svc.GenerateInvoice(context.Background(), GenerateInvoiceRequest{
		RawText:    "3/15 - 4 hours - Setup",
		HourlyRate: decimal.RequireFromString("150.00"),
		SkipRender: true,
	})
	if err != nil {
		t.Fatalf("GenerateInvoice: %v", err)
	}
	if rend.called {
		t.Error("renderer invoked despite SkipRender")
	}
	if result.PDFPath != "" {
		t.Errorf("unexpected pdf path %q", result.PDFPath)
	}
}

func TestGenerateInvoice_ValidationFailurePropagates(t *testing.T) {
	ext := &fakeExtractor{entries: []core.RawEntry{
		{Date: "2024-03-15", Hours: "4", Description: "Setup"},
		{Date: "bad-date", Hours: "2", Description: "Meeting"},
	}}
	rend := &fakeRenderer{}
	svc := newTestService(ext, rend)

	_, err := svc.GenerateInvoice(context.Background(), GenerateInvoiceRequest{
		RawText:    "whatever",
		HourlyRate: decimal.RequireFromString("150.00"),
	})
	if core.KindOf(err) != core.ErrMalformedEntry {
		t.Errorf("expected MalformedEntry, got %v", err)
	}
	if rend.called {
		t.Error("renderer must not run after a validation failure")
	}
}

func TestGenerateInvoice_EmptyExtraction(t *testing.T) {
	// Scenario: extraction succeeds but the text contained no entries.
	ext := &fakeExtractor{entries: []core.RawEntry{}}
	svc := newTestService(ext, &fakeRenderer{})

	_, err := svc.GenerateInvoice(context.Background(), GenerateInvoiceRequest{
		RawText:    "nothing billable here",
		HourlyRate: decimal.RequireFromString("150.00"),
	})
	if core.KindOf(err) != core.ErrEmptyEntryList {
		t.Errorf("expected EmptyEntryList, got %v", err)
	}
}

func TestGenerateInvoice_ExtractionErrorNotRetried(t *testing.T) {
	extErr := &core.PipelineError{Kind: core.ErrExtractionFailed, Index: -1, Message: "no JSON array found"}
	ext := &fakeExtractor{err: extErr}
	svc := newTestService(ext, &fakeRenderer{})

	_, err := svc.GenerateInvoice(context.Background(), GenerateInvoiceRequest{
		RawText:    "timesheet",
		HourlyRate: decimal.RequireFromString("150.00"),
	})
	if !errors.Is(err, extErr) {
		t.Errorf("extraction error should propagate unchanged, got %v", err)
	}
}

func TestRenderInvoice_FromArchive(t *testing.T) {
	repo := &fakeInvoiceRepo{record: &core.InvoiceRecord{
		ID:            42,
		InvoiceNumber: "INV-20240320",
		InvoiceDate:   "2024-03-20",
		PeriodStart:   "2024-03-15",
		PeriodEnd:     "2024-03-16",
		HourlyRate:    decimal.RequireFromString("100.00"),
		TotalHours:    decimal.RequireFromString("10.00"),
		TotalAmount:   decimal.RequireFromString("1000.00"),
		Entries: []core.TimeEntry{{
			Date: "2024-03-15", Hours: decimal.RequireFromString("10"),
			Description: "Development", Rate: decimal.RequireFromString("100.00"),
			Amount: decimal.RequireFromString("1000.00"),
		}},
	}}
	rend := &fakeRenderer{path: "/tmp/out/invoice_INV-20240320.pdf"}
	svc := NewAppService(nil, nil, rend, repo, nil, nil)

	result, err := svc.RenderInvoice(context.Background(), "INV-20240320")
	if err != nil {
		t.Fatalf("RenderInvoice: %v", err)
	}
	if !rend.called {
		t.Error("renderer was not invoked")
	}
	if result.PDFPath != rend.path || result.Invoice.PDFPath != rend.path {
		t.Errorf("pdf path not propagated: %q", result.PDFPath)
	}
	if repo.updatedID != 42 || repo.updatedPath != rend.path {
		t.Errorf("archive not updated: id=%d path=%q", repo.updatedID, repo.updatedPath)
	}

	if _, err := svc.RenderInvoice(context.Background(), "INV-19990101"); err == nil {
		t.Error("unknown invoice number must fail")
	}
}

func TestAuthenticateUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	users := &fakeUsers{user: &core.User{ID: 7, Username: "willy", Role: "admin", PasswordHash: string(hash)}}
	svc := NewAppService(nil, nil, nil, nil, nil, users)

	session, err := svc.AuthenticateUser(context.Background(), "willy", "hunter2")
	if err != nil {
		t.Fatalf("AuthenticateUser: %v", err)
	}
	if session.UserID != 7 || session.Role != "admin" {
		t.Errorf("unexpected session %+v", session)
	}

	if _, err := svc.AuthenticateUser(context.Background(), "willy", "wrong"); err == nil {
		t.Error("wrong password must fail")
	}
	if _, err := svc.AuthenticateUser(context.Background(), "nobody", "hunter2"); err == nil {
		t.Error("unknown user must fail")
	}
}
