package app

import (
	"context"

	"invoice-agent/internal/core"
)

// ApplicationService is the single interface all UI adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// GenerateInvoice runs the full pipeline: extract entries from free text,
	// validate and recompute amounts, aggregate totals, assemble the invoice,
	// archive it, and render the PDF. Validation is all-or-nothing: one bad
	// entry fails the whole invoice.
	GenerateInvoice(ctx context.Context, req GenerateInvoiceRequest) (*InvoiceResult, error)

	// PreviewEntries runs extraction and validation only, so the caller can
	// inspect the normalized entries before committing to an invoice.
	PreviewEntries(ctx context.Context, req PreviewRequest) (*PreviewResult, error)

	// RenderInvoice regenerates the PDF for an archived invoice, identified by
	// its number (most recent match), and records the new file path.
	RenderInvoice(ctx context.Context, invoiceNumber string) (*InvoiceResult, error)

	// ListInvoices returns archived invoices, newest first.
	ListInvoices(ctx context.Context) (*InvoiceListResult, error)

	// GetInvoice returns the most recently archived invoice with the given number.
	GetInvoice(ctx context.Context, invoiceNumber string) (*core.InvoiceRecord, error)

	// ListPosts returns blog posts, optionally restricted to published ones.
	ListPosts(ctx context.Context, publishedOnly bool) (*PostListResult, error)

	// GetPost returns a single blog post by ID.
	GetPost(ctx context.Context, id string) (*core.BlogPost, error)

	// CreatePost inserts a new draft post.
	CreatePost(ctx context.Context, input core.PostInput) (*core.BlogPost, error)

	// UpdatePost replaces the writeable fields of an existing post.
	UpdatePost(ctx context.Context, id string, input core.PostInput) (*core.BlogPost, error)

	// SetPostPublished publishes or unpublishes a post.
	SetPostPublished(ctx context.Context, id string, published bool) (*core.BlogPost, error)

	// DeletePost removes a post permanently.
	DeletePost(ctx context.Context, id string) error

	// DraftPost asks the writing agent to draft an article for the given topic
	// and stores it as an unpublished post.
	DraftPost(ctx context.Context, topic string) (*core.BlogPost, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, username, password string) (*UserSession, error)
}
