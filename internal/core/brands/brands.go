// Package brands enforces the brand lifecycle rules on top of the store:
// Idea -> PipelineBrand -> CurrentBrand (singleton) -> LiveBrand -> ArchivedBrand.
// Transitions are one-way; the store itself stays rule-free.
package brands

import (
	"context"
	"fmt"
	"time"

	"github.com/thislife/planner/internal/dates"
	"github.com/thislife/planner/internal/model"
	"github.com/thislife/planner/internal/store"
)

type Service struct {
	store store.Store
}

func New(s store.Store) *Service { return &Service{store: s} }

// PromoteIdea moves a captured idea into the pipeline. The idea stays in the
// list, linked to the pipeline record it spawned.
func (s *Service) PromoteIdea(ctx context.Context, ideaID string) (*model.PipelineBrand, error) {
	list, err := s.store.Ideas().List(ctx)
	if err != nil {
		return nil, err
	}
	var idea *model.Idea
	for _, it := range list {
		if it.ID == ideaID {
			idea = it
			break
		}
	}
	if idea == nil {
		return nil, fmt.Errorf("idea %s: %w", ideaID, model.ErrNotFound)
	}

	pipeline, err := s.store.Brands().ListPipeline(ctx)
	if err != nil {
		return nil, err
	}
	created, err := s.store.Brands().CreatePipeline(ctx, &model.PipelineBrand{
		Name:       idea.Text,
		Category:   idea.Category,
		SourceIdea: idea.ID,
		Order:      model.NextOrder(pipeline),
	})
	if err != nil {
		return nil, err
	}
	link := created.ID
	if err := s.store.Ideas().Update(ctx, idea.ID, store.IdeaPatch{LinkedBrand: &link}); err != nil {
		return nil, err
	}
	return created, nil
}

// PromotePipeline turns a pipeline brand into the current brand. Rejected
// without touching any state while a current brand exists.
func (s *Service) PromotePipeline(ctx context.Context, pipelineID string) (*model.CurrentBrand, error) {
	cur, err := s.store.Brands().GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if cur != nil {
		return nil, model.ErrCurrentBrandExists
	}

	pipeline, err := s.store.Brands().ListPipeline(ctx)
	if err != nil {
		return nil, err
	}
	var src *model.PipelineBrand
	for _, b := range pipeline {
		if b.ID == pipelineID {
			src = b
			break
		}
	}
	if src == nil {
		return nil, fmt.Errorf("pipeline brand %s: %w", pipelineID, model.ErrNotFound)
	}

	brand := model.NewCurrentBrand(src.Name, time.Now().UTC())
	brand.Category = src.Category
	brand.Description = src.Description
	brand.PlannedStartDate = src.PlannedStartDate
	brand.SourceIdea = src.SourceIdea
	if err := s.store.Brands().PutCurrent(ctx, brand); err != nil {
		return nil, err
	}
	if err := s.store.Brands().DeletePipeline(ctx, pipelineID); err != nil {
		return nil, err
	}
	return brand, nil
}

// MarkAutomated retires the current brand into the live list at phase 3 and
// frees the current slot.
func (s *Service) MarkAutomated(ctx context.Context) (*model.LiveBrand, error) {
	cur, err := s.store.Brands().GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("current brand: %w", model.ErrNotFound)
	}
	live, err := s.store.Brands().CreateLive(ctx, &model.LiveBrand{
		Name:      cur.Name,
		StartDate: cur.StartDate,
		Status:    "active",
		Phase:     3,
		Source:    "current_brand_transition",
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Brands().ClearCurrent(ctx); err != nil {
		return nil, err
	}
	return live, nil
}

// CloseLive archives a live brand with its summed revenue.
func (s *Service) CloseLive(ctx context.Context, id, reason string, now time.Time) (*model.ArchivedBrand, error) {
	liveList, err := s.store.Brands().ListLive(ctx)
	if err != nil {
		return nil, err
	}
	var live *model.LiveBrand
	for _, b := range liveList {
		if b.ID == id {
			live = b
			break
		}
	}
	if live == nil {
		return nil, fmt.Errorf("live brand %s: %w", id, model.ErrNotFound)
	}

	arch, err := s.store.Brands().CreateArchive(ctx, &model.ArchivedBrand{
		Name:         live.Name,
		Reason:       reason,
		ClosedDate:   dates.Key(now),
		TotalRevenue: live.TotalRevenue(),
		Summary:      live.Name + " closed after active run.",
	})
	if err != nil {
		return nil, err
	}
	if err := s.store.Brands().DeleteLive(ctx, id); err != nil {
		return nil, err
	}
	return arch, nil
}

// ReorderDirection is accepted by Reorder.
const (
	ReorderUp   = "up"
	ReorderDown = "down"
)

// Reorder swaps the Order values of a pipeline brand and its neighbour.
// Reordering past either end of the list is a no-op.
func (s *Service) Reorder(ctx context.Context, id, direction string) error {
	pipeline, err := s.store.Brands().ListPipeline(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, b := range pipeline {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("pipeline brand %s: %w", id, model.ErrNotFound)
	}

	var other int
	switch direction {
	case ReorderUp:
		other = idx - 1
	case ReorderDown:
		other = idx + 1
	default:
		return fmt.Errorf("reorder direction %q: %w", direction, model.ErrValidation)
	}
	if other < 0 || other >= len(pipeline) {
		return nil
	}

	a, b := pipeline[idx], pipeline[other]
	if err := s.store.Brands().UpdatePipeline(ctx, a.ID, store.PipelinePatch{Order: &b.Order}); err != nil {
		return err
	}
	return s.store.Brands().UpdatePipeline(ctx, b.ID, store.PipelinePatch{Order: &a.Order})
}

// AddDailyLog appends a dated log line to the current brand. One log per
// day; a second write on the same date replaces the first.
func (s *Service) AddDailyLog(ctx context.Context, text string, now time.Time) (*model.CurrentBrand, error) {
	cur, err := s.store.Brands().GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("current brand: %w", model.ErrNotFound)
	}
	if cur.DailyLogs == nil {
		cur.DailyLogs = map[string]model.BrandLog{}
	}
	cur.DailyLogs[dates.Key(now)] = model.BrandLog{Text: text, Timestamp: now}
	cur.UpdatedAt = now
	if err := s.store.Brands().PutCurrent(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// SetPhase moves the current brand between build phases 1..3. Phases only
// move forward.
func (s *Service) SetPhase(ctx context.Context, phase int, now time.Time) (*model.CurrentBrand, error) {
	if phase < 1 || phase > 3 {
		return nil, fmt.Errorf("phase %d out of range: %w", phase, model.ErrValidation)
	}
	cur, err := s.store.Brands().GetCurrent(ctx)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, fmt.Errorf("current brand: %w", model.ErrNotFound)
	}
	if phase < cur.Phase {
		return nil, fmt.Errorf("phase cannot move backwards: %w", model.ErrValidation)
	}
	cur.Phase = phase
	cur.UpdatedAt = now
	if err := s.store.Brands().PutCurrent(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}
