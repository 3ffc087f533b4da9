package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"invoice-agent/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
)

// generateInvoice handles POST /api/invoices — runs the full pipeline and
// returns the assembled invoice plus the rendered PDF path.
func (h *Handler) generateInvoice(w http.ResponseWriter, r *http.Request) {
	var req app.GenerateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid request body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.RawText) == "" {
		writeError(w, r, "raw_text is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.GenerateInvoice(r.Context(), req)
	if err != nil {
		writePipelineError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// previewEntries handles POST /api/invoices/preview — extraction and
// validation only, no invoice and no PDF.
func (h *Handler) previewEntries(w http.ResponseWriter, r *http.Request) {
	var req app.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid request body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.RawText) == "" {
		writeError(w, r, "raw_text is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.PreviewEntries(r.Context(), req)
	if err != nil {
		writePipelineError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// listInvoices handles GET /api/invoices.
func (h *Handler) listInvoices(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListInvoices(r.Context())
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// getInvoice handles GET /api/invoices/{number}.
func (h *Handler) getInvoice(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	rec, err := h.svc.GetInvoice(r.Context(), number)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, rec)
}

// writeLookupError maps a repository lookup failure to 404 only when the row
// genuinely does not exist; anything else (connection loss, bad SQL) is a 500.
func writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, pgx.ErrNoRows) {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
}

// downloadInvoicePDF handles GET /api/invoices/{number}/pdf — streams the
// rendered file from disk.
func (h *Handler) downloadInvoicePDF(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	rec, err := h.svc.GetInvoice(r.Context(), number)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	if rec.PDFPath == "" {
		writeError(w, r, "no rendered document for this invoice", "NOT_FOUND", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="invoice_`+number+`.pdf"`)
	http.ServeFile(w, r, rec.PDFPath)
}
