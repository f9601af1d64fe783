package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/thislife/planner/internal/api/respond"
	"github.com/thislife/planner/internal/dates"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

// DayLogsHandler provides HTTP transport for the per-day logs: timetable
// completion, protocol outcomes and connection counts.
type DayLogsHandler struct {
	logs store.DayLogs
}

func NewDayLogsHandler(s store.Store) *DayLogsHandler {
	return &DayLogsHandler{logs: s.DayLogs()}
}

// rangeKeys parses ?from=&to= into date keys. An inverted range is a valid,
// empty query.
func rangeKeys(r *http.Request) ([]string, bool) {
	from, err := dates.ParseKey(r.URL.Query().Get("from"))
	if err != nil {
		return nil, false
	}
	to, err := dates.ParseKey(r.URL.Query().Get("to"))
	if err != nil {
		return nil, false
	}
	return dates.RangeKeys(from, to), true
}

// UpsertTimetable PUT /api/logs/timetable
func (h *DayLogsHandler) UpsertTimetable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   string `json:"date"`
		TaskID string `json:"taskId"`
		Status string `json:"status"`
		Zone   string `json:"zone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Date == "" || req.TaskID == "" || req.Status == "" {
		respond.WriteBadRequest(w, "date, taskId and status are required")
		return
	}
	entry := &model.TimetableLog{Date: req.Date, TaskID: req.TaskID, Status: req.Status, Zone: dates.Zone(req.Zone)}
	if err := h.logs.UpsertTimetable(r.Context(), entry); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// TimetableRange GET /api/logs/timetable?from=&to=
func (h *DayLogsHandler) TimetableRange(w http.ResponseWriter, r *http.Request) {
	keys, ok := rangeKeys(r)
	if !ok {
		respond.WriteBadRequest(w, "from and to must be yyyy-mm-dd date keys")
		return
	}
	logs, err := h.logs.TimetableRange(r.Context(), keys)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}

// UpsertProtocol PUT /api/logs/protocol
func (h *DayLogsHandler) UpsertProtocol(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   string `json:"date"`
		ItemID string `json:"itemId"`
		Status string `json:"status"`
		Zone   string `json:"zone"`
		Auto   bool   `json:"auto"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Date == "" || req.ItemID == "" || req.Status == "" {
		respond.WriteBadRequest(w, "date, itemId and status are required")
		return
	}
	entry := &model.ProtocolLog{Date: req.Date, ItemID: req.ItemID, Status: req.Status, Zone: dates.Zone(req.Zone), Auto: req.Auto}
	if err := h.logs.UpsertProtocol(r.Context(), entry); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ProtocolRange GET /api/logs/protocol?from=&to=
func (h *DayLogsHandler) ProtocolRange(w http.ResponseWriter, r *http.Request) {
	keys, ok := rangeKeys(r)
	if !ok {
		respond.WriteBadRequest(w, "from and to must be yyyy-mm-dd date keys")
		return
	}
	logs, err := h.logs.ProtocolRange(r.Context(), keys)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}

// UpsertConnections PUT /api/logs/connections
func (h *DayLogsHandler) UpsertConnections(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Date == "" || req.Count < 0 {
		respond.WriteBadRequest(w, "date is required and count must be non-negative")
		return
	}
	if err := h.logs.UpsertConnections(r.Context(), &model.ConnectionLog{Date: req.Date, Count: req.Count}); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetConnections GET /api/logs/connections/{dateKey}
func (h *DayLogsHandler) GetConnections(w http.ResponseWriter, r *http.Request) {
	entry, err := h.logs.GetConnections(r.Context(), mux.Vars(r)["dateKey"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"log": entry})
}

// ConnectionsRange GET /api/logs/connections?from=&to=
func (h *DayLogsHandler) ConnectionsRange(w http.ResponseWriter, r *http.Request) {
	keys, ok := rangeKeys(r)
	if !ok {
		respond.WriteBadRequest(w, "from and to must be yyyy-mm-dd date keys")
		return
	}
	logs, err := h.logs.ConnectionsRange(r.Context(), keys)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"logs": logs})
}
