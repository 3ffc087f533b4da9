package web

import (
	"net/http"

	"invoice-agent/internal/app"

	"github.com/go-chi/chi/v5"
)

// maxRequestBody caps JSON request bodies. Timesheet text is small; anything
// past this is abuse or an accident.
const maxRequestBody = 1 << 20 // 1 MiB

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{svc: svc, jwtSecret: jwtSecret}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(maxRequestBody))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)
	r.Get("/api/posts/published", h.listPublishedPosts)

	// ── Protected API ─────────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/api/auth/me", h.currentUser)

		r.Post("/api/invoices", h.generateInvoice)
		r.Post("/api/invoices/preview", h.previewEntries)
		r.Get("/api/invoices", h.listInvoices)
		r.Get("/api/invoices/{number}", h.getInvoice)
		r.Get("/api/invoices/{number}/pdf", h.downloadInvoicePDF)

		r.Get("/api/posts", h.listPosts)
		r.Post("/api/posts", h.createPost)
		r.Post("/api/posts/draft", h.draftPost)
		r.Get("/api/posts/{id}", h.getPost)
		r.Put("/api/posts/{id}", h.updatePost)
		r.Post("/api/posts/{id}/publish", h.publishPost)
		r.Post("/api/posts/{id}/unpublish", h.unpublishPost)
		r.Delete("/api/posts/{id}", h.deletePost)
	})

	return r
}

// health handles GET /api/health.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
