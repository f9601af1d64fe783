package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/thislife/planner/internal/api/respond"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

// ScheduleHandler provides HTTP transport for work items and meetings.
type ScheduleHandler struct {
	schedule store.Schedule
}

func NewScheduleHandler(s store.Store) *ScheduleHandler {
	return &ScheduleHandler{schedule: s.Schedule()}
}

// ListWork GET /api/schedule/work
func (h *ScheduleHandler) ListWork(w http.ResponseWriter, r *http.Request) {
	list, err := h.schedule.ListWork(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []*model.WorkItem{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": list, "count": len(list)})
}

// CreateWork POST /api/schedule/work
func (h *ScheduleHandler) CreateWork(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Date        string `json:"date"`
		Time        string `json:"time"`
		Priority    string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Title == "" || req.Date == "" {
		respond.WriteBadRequest(w, "title and date are required")
		return
	}
	item, err := h.schedule.CreateWork(r.Context(), &model.WorkItem{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Priority:    req.Priority,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, item)
}

// UpdateWork PATCH /api/schedule/work/{itemId}
func (h *ScheduleHandler) UpdateWork(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Date        *string `json:"date"`
		Time        *string `json:"time"`
		Priority    *string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	patch := store.WorkPatch{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Priority:    req.Priority,
	}
	if err := h.schedule.UpdateWork(r.Context(), mux.Vars(r)["itemId"], patch); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteWork DELETE /api/schedule/work/{itemId}
func (h *ScheduleHandler) DeleteWork(w http.ResponseWriter, r *http.Request) {
	if err := h.schedule.DeleteWork(r.Context(), mux.Vars(r)["itemId"]); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ListMeetings GET /api/schedule/meetings
func (h *ScheduleHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	list, err := h.schedule.ListMeetings(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []*model.MeetingItem{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"items": list, "count": len(list)})
}

// CreateMeeting POST /api/schedule/meetings
func (h *ScheduleHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		With  string `json:"with"`
		Date  string `json:"date"`
		Time  string `json:"time"`
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Title == "" || req.Date == "" {
		respond.WriteBadRequest(w, "title and date are required")
		return
	}
	item, err := h.schedule.CreateMeeting(r.Context(), &model.MeetingItem{
		Title: req.Title,
		With:  req.With,
		Date:  req.Date,
		Time:  req.Time,
		Notes: req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, item)
}

// UpdateMeeting PATCH /api/schedule/meetings/{itemId}
func (h *ScheduleHandler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title *string `json:"title"`
		With  *string `json:"with"`
		Date  *string `json:"date"`
		Time  *string `json:"time"`
		Notes *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	patch := store.MeetingPatch{
		Title: req.Title,
		With:  req.With,
		Date:  req.Date,
		Time:  req.Time,
		Notes: req.Notes,
	}
	if err := h.schedule.UpdateMeeting(r.Context(), mux.Vars(r)["itemId"], patch); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteMeeting DELETE /api/schedule/meetings/{itemId}
func (h *ScheduleHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	if err := h.schedule.DeleteMeeting(r.Context(), mux.Vars(r)["itemId"]); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
