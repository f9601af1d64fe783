package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/thislife/planner/internal/api/respond"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

// IdeasHandler provides HTTP transport for the captured-ideas collection.
type IdeasHandler struct {
	ideas store.Ideas
}

func NewIdeasHandler(s store.Store) *IdeasHandler {
	return &IdeasHandler{ideas: s.Ideas()}
}

// List GET /api/ideas
func (h *IdeasHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.ideas.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []*model.Idea{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"ideas": list, "count": len(list)})
}

// Create POST /api/ideas
func (h *IdeasHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text     string `json:"text"`
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Text == "" {
		respond.WriteBadRequest(w, "text is required")
		return
	}
	idea, err := h.ideas.Create(r.Context(), &model.Idea{Text: req.Text, Category: req.Category})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, idea)
}

// Update PATCH /api/ideas/{ideaId}
func (h *IdeasHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["ideaId"]

	var req struct {
		Text        *string `json:"text"`
		Category    *string `json:"category"`
		LinkedBrand *string `json:"linkedBrand"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	patch := store.IdeaPatch{Text: req.Text, Category: req.Category, LinkedBrand: req.LinkedBrand}
	if err := h.ideas.Update(r.Context(), id, patch); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete DELETE /api/ideas/{ideaId}
func (h *IdeasHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.ideas.Delete(r.Context(), mux.Vars(r)["ideaId"]); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
