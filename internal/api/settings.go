package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/thislife/planner/internal/api/respond"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

// SettingsHandler provides HTTP transport for the singleton settings record.
type SettingsHandler struct {
	settings store.Settings
}

func NewSettingsHandler(s store.Store) *SettingsHandler {
	return &SettingsHandler{settings: s.Settings()}
}

// Get GET /api/settings. Never-saved settings fall back to the defaults.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.settings.Get(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if s == nil {
		def := model.DefaultSettings(time.Now().UTC())
		s = &def
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"settings": s})
}

// Put PUT /api/settings
func (h *SettingsHandler) Put(w http.ResponseWriter, r *http.Request) {
	var s model.Settings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.settings.Put(r.Context(), &s); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
