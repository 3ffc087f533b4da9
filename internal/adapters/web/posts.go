package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"invoice-agent/internal/core"

	"github.com/go-chi/chi/v5"
)

// listPublishedPosts handles GET /api/posts/published — the public blog feed.
func (h *Handler) listPublishedPosts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListPosts(r.Context(), true)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// listPosts handles GET /api/posts — drafts included, authors only.
func (h *Handler) listPosts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListPosts(r.Context(), false)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// getPost handles GET /api/posts/{id}.
func (h *Handler) getPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.svc.GetPost(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, post)
}

// createPost handles POST /api/posts.
func (h *Handler) createPost(w http.ResponseWriter, r *http.Request) {
	var input core.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, "invalid request body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	post, err := h.svc.CreatePost(r.Context(), input)
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	writeJSONStatus(w, http.StatusCreated, post)
}

// draftPost handles POST /api/posts/draft — the writing agent drafts an
// article for the given topic and stores it unpublished. This call blocks on
// the external model for as long as the request context allows.
func (h *Handler) draftPost(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, "invalid request body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Topic) == "" {
		writeError(w, r, "topic is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	post, err := h.svc.DraftPost(r.Context(), req.Topic)
	if err != nil {
		writeError(w, r, err.Error(), "DRAFT_FAILED", http.StatusBadGateway)
		return
	}
	writeJSONStatus(w, http.StatusCreated, post)
}

// updatePost handles PUT /api/posts/{id}.
func (h *Handler) updatePost(w http.ResponseWriter, r *http.Request) {
	var input core.PostInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, r, "invalid request body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	post, err := h.svc.UpdatePost(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, post)
}

// publishPost handles POST /api/posts/{id}/publish.
func (h *Handler) publishPost(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, true)
}

// unpublishPost handles POST /api/posts/{id}/unpublish.
func (h *Handler) unpublishPost(w http.ResponseWriter, r *http.Request) {
	h.setPublished(w, r, false)
}

func (h *Handler) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	post, err := h.svc.SetPostPublished(r.Context(), chi.URLParam(r, "id"), published)
	if err != nil {
		writeLookupError(w, r, err)
		return
	}
	writeJSON(w, post)
}

// deletePost handles DELETE /api/posts/{id}.
func (h *Handler) deletePost(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeletePost(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
