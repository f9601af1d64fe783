package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/thislife/planner/internal/api/respond"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

// PlanningHandler provides HTTP transport for month/week/day plans.
// Plans are keyed by their natural keys; a GET for an absent key answers
// with a null plan, not 404.
type PlanningHandler struct {
	planning store.Planning
}

func NewPlanningHandler(s store.Store) *PlanningHandler {
	return &PlanningHandler{planning: s.Planning()}
}

// GetMonthly GET /api/planning/monthly/{monthKey}
func (h *PlanningHandler) GetMonthly(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planning.GetMonthly(r.Context(), mux.Vars(r)["monthKey"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"plan": plan})
}

// SaveMonthly PUT /api/planning/monthly/{monthKey}
func (h *PlanningHandler) SaveMonthly(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goals []string `json:"goals"`
		Notes string   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	plan := &model.MonthlyPlan{MonthKey: mux.Vars(r)["monthKey"], Goals: req.Goals, Notes: req.Notes}
	if err := h.planning.SaveMonthly(r.Context(), plan); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetWeekly GET /api/planning/weekly/{weekKey}
func (h *PlanningHandler) GetWeekly(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planning.GetWeekly(r.Context(), mux.Vars(r)["weekKey"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"plan": plan})
}

// SaveWeekly PUT /api/planning/weekly/{weekKey}
func (h *PlanningHandler) SaveWeekly(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Goals []string `json:"goals"`
		Tasks []string `json:"tasks"`
		Notes string   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	plan := &model.WeeklyPlan{WeekKey: mux.Vars(r)["weekKey"], Goals: req.Goals, Tasks: req.Tasks, Notes: req.Notes}
	if err := h.planning.SaveWeekly(r.Context(), plan); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetDaily GET /api/planning/daily/{dateKey}
func (h *PlanningHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	plan, err := h.planning.GetDaily(r.Context(), mux.Vars(r)["dateKey"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"plan": plan})
}

// SaveDaily PUT /api/planning/daily/{dateKey}
func (h *PlanningHandler) SaveDaily(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []string `json:"items"`
		Notes string   `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	plan := &model.DailyPlan{DateKey: mux.Vars(r)["dateKey"], Items: req.Items, Notes: req.Notes}
	if err := h.planning.SaveDaily(r.Context(), plan); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
