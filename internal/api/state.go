package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/thislife/planner/internal/api/respond"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

// StateHandler serves the whole-state snapshot endpoint clients sync against.
type StateHandler struct {
	snapshots store.Snapshots
}

func NewStateHandler(s store.Store) *StateHandler {
	return &StateHandler{snapshots: s.Snapshots()}
}

type stateResponse struct {
	State     model.StateSnapshot `json:"state"`
	UpdatedAt *time.Time          `json:"updatedAt"`
}

// Handle serves GET and PUT /api/state; every other method gets 405 with
// an Allow header.
func (h *StateHandler) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.put(w, r)
	default:
		w.Header().Set("Allow", "GET, PUT")
		respond.WriteError(w, http.StatusMethodNotAllowed, "")
	}
}

func (h *StateHandler) get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.snapshots.Get(r.Context())
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, stateResponse{State: rec.State, UpdatedAt: rec.UpdatedAt})
}

func (h *StateHandler) put(w http.ResponseWriter, r *http.Request) {
	var req struct {
		State model.StateSnapshot `json:"state"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.snapshots.Put(r.Context(), req.State); err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
