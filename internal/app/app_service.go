package app

import (
	"context"
	"fmt"
	"time"

	"invoice-agent/internal/ai"
	"invoice-agent/internal/core"
	"invoice-agent/internal/pdf"

	"golang.org/x/crypto/bcrypt"
)

type appService struct {
	extractor   ai.ExtractorService
	writer      ai.WriterService
	renderer    pdf.Renderer
	invoiceRepo core.InvoiceService
	posts       core.PostService
	users       core.UserService
	now         func() time.Time
}

// NewAppService constructs an appService that satisfies ApplicationService.
// All collaborators are injected; there are no package-level clients.
func NewAppService(
	extractor ai.ExtractorService,
	writer ai.WriterService,
	renderer pdf.Renderer,
	invoiceRepo core.InvoiceService,
	posts core.PostService,
	users core.UserService,
) ApplicationService {
	return &appService{
		extractor:   extractor,
		writer:      writer,
		renderer:    renderer,
		invoiceRepo: invoiceRepo,
		posts:       posts,
		users:       users,
		now:         time.Now,
	}
}

// GenerateInvoice runs the full pipeline. The extraction call is the only step
// that blocks on an external service; the caller's ctx bounds it.
func (s *appService) GenerateInvoice(ctx context.Context, req GenerateInvoiceRequest) (*InvoiceResult, error) {
	raws, err := s.extractor.ExtractEntries(ctx, req.RawText, core.FormatAmount(req.HourlyRate))
	if err != nil {
		return nil, err
	}

	entries, err := core.ValidateEntries(raws, req.HourlyRate)
	if err != nil {
		return nil, err
	}

	totals, err := core.CalculateTotals(entries)
	if err != nil {
		return nil, err
	}

	inv, err := core.BuildInvoice(entries, totals, req.HourlyRate, req.Client, req.Bank, s.now())
	if err != nil {
		return nil, err
	}

	result := &InvoiceResult{Invoice: inv}
	if !req.SkipRender {
		path, err := s.renderer.RenderInvoice(inv)
		if err != nil {
			return nil, err
		}
		inv.PDFPath = path
		result.PDFPath = path
	}

	if s.invoiceRepo != nil {
		if _, err := s.invoiceRepo.SaveInvoice(ctx, inv); err != nil {
			return nil, fmt.Errorf("archive invoice: %w", err)
		}
	}
	return result, nil
}

func (s *appService) PreviewEntries(ctx context.Context, req PreviewRequest) (*PreviewResult, error) {
	raws, err := s.extractor.ExtractEntries(ctx, req.RawText, core.FormatAmount(req.HourlyRate))
	if err != nil {
		return nil, err
	}

	entries, err := core.ValidateEntries(raws, req.HourlyRate)
	if err != nil {
		return nil, err
	}

	totals, err := core.CalculateTotals(entries)
	if err != nil {
		return nil, err
	}
	return &PreviewResult{Entries: entries, Totals: totals}, nil
}

// RenderInvoice re-renders an archived invoice from its stored snapshot. The
// archived entries and totals are used as-is; nothing is re-extracted or
// re-validated.
func (s *appService) RenderInvoice(ctx context.Context, invoiceNumber string) (*InvoiceResult, error) {
	rec, err := s.invoiceRepo.GetInvoiceByNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}

	inv := &core.Invoice{
		InvoiceNumber: rec.InvoiceNumber,
		InvoiceDate:   rec.InvoiceDate,
		PeriodStart:   rec.PeriodStart,
		PeriodEnd:     rec.PeriodEnd,
		Entries:       rec.Entries,
		Totals:        core.InvoiceTotals{TotalHours: rec.TotalHours, TotalAmount: rec.TotalAmount},
		HourlyRate:    rec.HourlyRate,
		Client:        rec.Client,
		Bank:          rec.Bank,
	}

	path, err := s.renderer.RenderInvoice(inv)
	if err != nil {
		return nil, err
	}
	inv.PDFPath = path

	if err := s.invoiceRepo.UpdatePDFPath(ctx, rec.ID, path); err != nil {
		return nil, fmt.Errorf("record pdf path: %w", err)
	}
	return &InvoiceResult{Invoice: inv, PDFPath: path}, nil
}

func (s *appService) ListInvoices(ctx context.Context) (*InvoiceListResult, error) {
	records, err := s.invoiceRepo.ListInvoices(ctx)
	if err != nil {
		return nil, err
	}
	return &InvoiceListResult{Invoices: records}, nil
}

func (s *appService) GetInvoice(ctx context.Context, invoiceNumber string) (*core.InvoiceRecord, error) {
	return s.invoiceRepo.GetInvoiceByNumber(ctx, invoiceNumber)
}

func (s *appService) ListPosts(ctx context.Context, publishedOnly bool) (*PostListResult, error) {
	posts, err := s.posts.ListPosts(ctx, publishedOnly)
	if err != nil {
		return nil, err
	}
	return &PostListResult{Posts: posts}, nil
}

func (s *appService) GetPost(ctx context.Context, id string) (*core.BlogPost, error) {
	return s.posts.GetPost(ctx, id)
}

func (s *appService) CreatePost(ctx context.Context, input core.PostInput) (*core.BlogPost, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("post title is required")
	}
	return s.posts.CreatePost(ctx, input)
}

func (s *appService) UpdatePost(ctx context.Context, id string, input core.PostInput) (*core.BlogPost, error) {
	return s.posts.UpdatePost(ctx, id, input)
}

func (s *appService) SetPostPublished(ctx context.Context, id string, published bool) (*core.BlogPost, error) {
	return s.posts.SetPublished(ctx, id, published)
}

func (s *appService) DeletePost(ctx context.Context, id string) error {
	return s.posts.DeletePost(ctx, id)
}

// DraftPost asks the writing agent for an article and stores it unpublished.
// A human reviews the draft before it goes live.
func (s *appService) DraftPost(ctx context.Context, topic string) (*core.BlogPost, error) {
	if topic == "" {
		return nil, fmt.Errorf("draft topic is required")
	}
	input, err := s.writer.DraftPost(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("draft post: %w", err)
	}
	return s.posts.CreatePost(ctx, *input)
}

func (s *appService) AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return &UserSession{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}
