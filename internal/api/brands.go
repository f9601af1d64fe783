package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/thislife/planner/internal/api/respond"
	"github.com/thislife/planner/internal/core/brands"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

// BrandsHandler provides HTTP transport for the brand pipeline and its
// lifecycle transitions.
type BrandsHandler struct {
	brands  store.Brands
	service *brands.Service
}

func NewBrandsHandler(s store.Store, svc *brands.Service) *BrandsHandler {
	return &BrandsHandler{brands: s.Brands(), service: svc}
}

// GetCurrent GET /api/brands/current
func (h *BrandsHandler) GetCurrent(w http.ResponseWriter, r *http.Request) {
	cur, err := h.brands.GetCurrent(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"brand": cur})
}

// PutCurrent PUT /api/brands/current
func (h *BrandsHandler) PutCurrent(w http.ResponseWriter, r *http.Request) {
	var brand model.CurrentBrand
	if err := json.NewDecoder(r.Body).Decode(&brand); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if brand.Name == "" {
		respond.WriteBadRequest(w, "name is required")
		return
	}
	brand.UpdatedAt = time.Now().UTC()
	if err := h.brands.PutCurrent(r.Context(), &brand); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// AddDailyLog POST /api/brands/current/logs
func (h *BrandsHandler) AddDailyLog(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Text == "" {
		respond.WriteBadRequest(w, "text is required")
		return
	}
	cur, err := h.service.AddDailyLog(r.Context(), req.Text, time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"brand": cur})
}

// SetPhase POST /api/brands/current/phase
func (h *BrandsHandler) SetPhase(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phase int `json:"phase"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	cur, err := h.service.SetPhase(r.Context(), req.Phase, time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"brand": cur})
}

// MarkAutomated POST /api/brands/current/automate
func (h *BrandsHandler) MarkAutomated(w http.ResponseWriter, r *http.Request) {
	live, err := h.service.MarkAutomated(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, live)
}

// ListPipeline GET /api/brands/pipeline
func (h *BrandsHandler) ListPipeline(w http.ResponseWriter, r *http.Request) {
	list, err := h.brands.ListPipeline(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []*model.PipelineBrand{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"brands": list, "count": len(list)})
}

// CreatePipeline POST /api/brands/pipeline
func (h *BrandsHandler) CreatePipeline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name             string `json:"name"`
		Description      string `json:"description"`
		Category         string `json:"category"`
		PlannedStartDate string `json:"plannedStartDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Name == "" {
		respond.WriteBadRequest(w, "name is required")
		return
	}
	existing, err := h.brands.ListPipeline(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	brand, err := h.brands.CreatePipeline(r.Context(), &model.PipelineBrand{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		PlannedStartDate: req.PlannedStartDate,
		Order:            model.NextOrder(existing),
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, brand)
}

// UpdatePipeline PATCH /api/brands/pipeline/{brandId}
func (h *BrandsHandler) UpdatePipeline(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name             *string `json:"name"`
		Description      *string `json:"description"`
		Category         *string `json:"category"`
		PlannedStartDate *string `json:"plannedStartDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	patch := store.PipelinePatch{
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		PlannedStartDate: req.PlannedStartDate,
	}
	if err := h.brands.UpdatePipeline(r.Context(), mux.Vars(r)["brandId"], patch); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeletePipeline DELETE /api/brands/pipeline/{brandId}
func (h *BrandsHandler) DeletePipeline(w http.ResponseWriter, r *http.Request) {
	if err := h.brands.DeletePipeline(r.Context(), mux.Vars(r)["brandId"]); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Reorder POST /api/brands/pipeline/{brandId}/reorder
func (h *BrandsHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if err := h.service.Reorder(r.Context(), mux.Vars(r)["brandId"], req.Direction); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Promote POST /api/brands/pipeline/{brandId}/promote
func (h *BrandsHandler) Promote(w http.ResponseWriter, r *http.Request) {
	cur, err := h.service.PromotePipeline(r.Context(), mux.Vars(r)["brandId"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]interface{}{"brand": cur})
}

// PromoteIdea POST /api/ideas/{ideaId}/promote
func (h *BrandsHandler) PromoteIdea(w http.ResponseWriter, r *http.Request) {
	brand, err := h.service.PromoteIdea(r.Context(), mux.Vars(r)["ideaId"])
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, brand)
}

// ListLive GET /api/brands/live
func (h *BrandsHandler) ListLive(w http.ResponseWriter, r *http.Request) {
	list, err := h.brands.ListLive(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []*model.LiveBrand{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"brands": list, "count": len(list)})
}

// CreateLive POST /api/brands/live
func (h *BrandsHandler) CreateLive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name      string `json:"name"`
		StartDate string `json:"startDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Name == "" {
		respond.WriteBadRequest(w, "name is required")
		return
	}
	live, err := h.brands.CreateLive(r.Context(), &model.LiveBrand{Name: req.Name, StartDate: req.StartDate})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, live)
}

// LogRevenue POST /api/brands/live/{brandId}/revenue
func (h *BrandsHandler) LogRevenue(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date   string   `json:"date"`
		Amount *float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	// Amount is a pointer so an explicit zero survives; absence is rejected.
	if req.Date == "" || req.Amount == nil {
		respond.WriteBadRequest(w, "date and amount are required")
		return
	}
	if err := h.brands.LogRevenue(r.Context(), mux.Vars(r)["brandId"], req.Date, *req.Amount); err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// CloseLive POST /api/brands/live/{brandId}/close
func (h *BrandsHandler) CloseLive(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reason string `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	arch, err := h.service.CloseLive(r.Context(), mux.Vars(r)["brandId"], req.Reason, time.Now().UTC())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, arch)
}

// ListArchive GET /api/brands/archive
func (h *BrandsHandler) ListArchive(w http.ResponseWriter, r *http.Request) {
	list, err := h.brands.ListArchive(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if list == nil {
		list = []*model.ArchivedBrand{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"brands": list, "count": len(list)})
}
