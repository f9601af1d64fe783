package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thislife/planner/internal/dates"
	"github.com/thislife/planner/internal/model"
)

// BrandsAPI is the brand-building hook. The lifecycle rules (singleton
// current brand, one-way transitions) hold on both paths: the service
// enforces them remotely and the local fallback re-implements them.
type BrandsAPI struct{ c *Client }

func (c *Client) Brands() *BrandsAPI { return &BrandsAPI{c: c} }

// --- current brand ---

func (a *BrandsAPI) Current(ctx context.Context) (*model.CurrentBrand, error) {
	if a.c.Authenticated() {
		var out struct {
			Brand *model.CurrentBrand `json:"brand"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/brands/current")
		if err == nil && resp.IsSuccess() {
			return out.Brand, nil
		}
	}
	return a.localCurrent(), nil
}

func (a *BrandsAPI) SaveCurrent(ctx context.Context, brand *model.CurrentBrand) (*model.CurrentBrand, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).SetBody(brand).Put("/api/brands/current")
		if err == nil && resp.IsSuccess() {
			return a.Current(ctx)
		}
	}
	brand.UpdatedAt = time.Now().UTC()
	if err := a.c.local.SetJSON(keyCurrentBrand, brand); err != nil {
		return nil, err
	}
	return brand, nil
}

func (a *BrandsAPI) AddDailyLog(ctx context.Context, text string) (*model.CurrentBrand, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).
			SetBody(map[string]string{"text": text}).
			Post("/api/brands/current/logs")
		if err == nil && resp.IsSuccess() {
			return a.Current(ctx)
		}
	}

	cur := a.localCurrent()
	if cur == nil {
		return nil, model.ErrNotFound
	}
	now := time.Now().UTC()
	if cur.DailyLogs == nil {
		cur.DailyLogs = map[string]model.BrandLog{}
	}
	cur.DailyLogs[dates.Key(now)] = model.BrandLog{Text: text, Timestamp: now}
	cur.UpdatedAt = now
	if err := a.c.local.SetJSON(keyCurrentBrand, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

func (a *BrandsAPI) SetPhase(ctx context.Context, phase int) (*model.CurrentBrand, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).
			SetBody(map[string]int{"phase": phase}).
			Post("/api/brands/current/phase")
		if err == nil && resp.IsSuccess() {
			return a.Current(ctx)
		}
	}

	cur := a.localCurrent()
	if cur == nil {
		return nil, model.ErrNotFound
	}
	if phase < 1 || phase > 3 || phase < cur.Phase {
		return nil, model.ErrValidation
	}
	cur.Phase = phase
	cur.UpdatedAt = time.Now().UTC()
	if err := a.c.local.SetJSON(keyCurrentBrand, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

// MarkAutomated retires the current brand into the live list.
func (a *BrandsAPI) MarkAutomated(ctx context.Context) ([]*model.LiveBrand, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).Post("/api/brands/current/automate")
		if err == nil && resp.IsSuccess() {
			return a.Live(ctx)
		}
	}

	cur := a.localCurrent()
	if cur == nil {
		return nil, model.ErrNotFound
	}
	live := &model.LiveBrand{
		ID:         "live_brand_" + uuid.New().String(),
		Name:       cur.Name,
		StartDate:  cur.StartDate,
		RevenueLog: map[string]float64{},
		Status:     "active",
		Phase:      3,
		Source:     "current_brand_transition",
		CreatedAt:  time.Now().UTC(),
	}
	list := append(a.localLive(), live)
	if err := a.c.local.SetJSON(keyLiveBrands, list); err != nil {
		return nil, err
	}
	if err := a.c.local.Remove(keyCurrentBrand); err != nil {
		return nil, err
	}
	return list, nil
}

// --- pipeline ---

func (a *BrandsAPI) Pipeline(ctx context.Context) ([]*model.PipelineBrand, error) {
	if a.c.Authenticated() {
		var out struct {
			Brands []*model.PipelineBrand `json:"brands"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/brands/pipeline")
		if err == nil && resp.IsSuccess() {
			return out.Brands, nil
		}
	}
	return a.localPipeline(), nil
}

func (a *BrandsAPI) CreatePipeline(ctx context.Context, name, description, category, plannedStartDate string) ([]*model.PipelineBrand, error) {
	if a.c.Authenticated() {
		body := map[string]string{
			"name":             name,
			"description":      description,
			"category":         category,
			"plannedStartDate": plannedStartDate,
		}
		resp, err := a.c.request().SetContext(ctx).SetBody(body).Post("/api/brands/pipeline")
		if err == nil && resp.IsSuccess() {
			return a.Pipeline(ctx)
		}
	}

	list := a.localPipeline()
	list = append(list, &model.PipelineBrand{
		ID:               "pipeline_brand_" + uuid.New().String(),
		Name:             name,
		Description:      description,
		Category:         category,
		PlannedStartDate: plannedStartDate,
		Order:            model.NextOrder(list),
		CreatedAt:        time.Now().UTC(),
	})
	if err := a.c.local.SetJSON(keyPipelineBrands, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a *BrandsAPI) DeletePipeline(ctx context.Context, id string) ([]*model.PipelineBrand, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).Delete("/api/brands/pipeline/" + id)
		if err == nil && resp.IsSuccess() {
			return a.Pipeline(ctx)
		}
	}

	list := a.localPipeline()
	kept := list[:0]
	for _, b := range list {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	if err := a.c.local.SetJSON(keyPipelineBrands, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

// Reorder swaps a pipeline brand with its neighbour; moves past either end
// are no-ops.
func (a *BrandsAPI) Reorder(ctx context.Context, id, direction string) ([]*model.PipelineBrand, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).
			SetBody(map[string]string{"direction": direction}).
			Post("/api/brands/pipeline/" + id + "/reorder")
		if err == nil && resp.IsSuccess() {
			return a.Pipeline(ctx)
		}
	}

	list := a.localPipeline()
	idx := -1
	for i, b := range list {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, model.ErrNotFound
	}
	other := idx - 1
	if direction == "down" {
		other = idx + 1
	}
	if other >= 0 && other < len(list) {
		list[idx].Order, list[other].Order = list[other].Order, list[idx].Order
		list[idx], list[other] = list[other], list[idx]
		if err := a.c.local.SetJSON(keyPipelineBrands, list); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// Promote turns a pipeline brand into the current brand. While a current
// brand exists the call fails with ErrCurrentBrandExists and changes nothing.
func (a *BrandsAPI) Promote(ctx context.Context, id string) (*model.CurrentBrand, error) {
	if a.c.Authenticated() {
		var out struct {
			Brand *model.CurrentBrand `json:"brand"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).
			Post("/api/brands/pipeline/" + id + "/promote")
		if err == nil {
			if resp.IsSuccess() {
				return a.Current(ctx)
			}
			if resp.StatusCode() == 409 {
				return nil, model.ErrCurrentBrandExists
			}
		}
	}

	if a.localCurrent() != nil {
		return nil, model.ErrCurrentBrandExists
	}
	list := a.localPipeline()
	var src *model.PipelineBrand
	kept := list[:0]
	for _, b := range list {
		if b.ID == id {
			src = b
			continue
		}
		kept = append(kept, b)
	}
	if src == nil {
		return nil, model.ErrNotFound
	}
	cur := model.NewCurrentBrand(src.Name, time.Now().UTC())
	cur.Category = src.Category
	cur.Description = src.Description
	cur.PlannedStartDate = src.PlannedStartDate
	cur.SourceIdea = src.SourceIdea
	if err := a.c.local.SetJSON(keyCurrentBrand, cur); err != nil {
		return nil, err
	}
	if err := a.c.local.SetJSON(keyPipelineBrands, kept); err != nil {
		return nil, err
	}
	return cur, nil
}

// PromoteIdea moves a captured idea into the pipeline.
func (a *BrandsAPI) PromoteIdea(ctx context.Context, ideaID string) ([]*model.PipelineBrand, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).Post("/api/ideas/" + ideaID + "/promote")
		if err == nil && resp.IsSuccess() {
			return a.Pipeline(ctx)
		}
	}

	var ideas []*model.Idea
	a.c.local.GetJSON(keyIdeas, &ideas)
	var idea *model.Idea
	for _, it := range ideas {
		if it.ID == ideaID {
			idea = it
			break
		}
	}
	if idea == nil {
		return nil, model.ErrNotFound
	}

	list := a.localPipeline()
	created := &model.PipelineBrand{
		ID:         "pipeline_brand_" + uuid.New().String(),
		Name:       idea.Text,
		Category:   idea.Category,
		SourceIdea: idea.ID,
		Order:      model.NextOrder(list),
		CreatedAt:  time.Now().UTC(),
	}
	list = append(list, created)
	idea.LinkedBrand = &created.ID
	if err := a.c.local.SetJSON(keyPipelineBrands, list); err != nil {
		return nil, err
	}
	if err := a.c.local.SetJSON(keyIdeas, ideas); err != nil {
		return nil, err
	}
	return list, nil
}

// --- live and archive ---

func (a *BrandsAPI) Live(ctx context.Context) ([]*model.LiveBrand, error) {
	if a.c.Authenticated() {
		var out struct {
			Brands []*model.LiveBrand `json:"brands"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/brands/live")
		if err == nil && resp.IsSuccess() {
			return out.Brands, nil
		}
	}
	return a.localLive(), nil
}

// LogRevenue records the amount earned on a date. An explicit zero is a
// real entry, distinct from a day with no value logged.
func (a *BrandsAPI) LogRevenue(ctx context.Context, id, dateKey string, amount float64) ([]*model.LiveBrand, error) {
	if a.c.Authenticated() {
		body := map[string]interface{}{"date": dateKey, "amount": amount}
		resp, err := a.c.request().SetContext(ctx).SetBody(body).
			Post("/api/brands/live/" + id + "/revenue")
		if err == nil && resp.IsSuccess() {
			return a.Live(ctx)
		}
	}

	list := a.localLive()
	found := false
	for _, b := range list {
		if b.ID == id {
			if b.RevenueLog == nil {
				b.RevenueLog = map[string]float64{}
			}
			b.RevenueLog[dateKey] = amount
			found = true
		}
	}
	if !found {
		return nil, model.ErrNotFound
	}
	if err := a.c.local.SetJSON(keyLiveBrands, list); err != nil {
		return nil, err
	}
	return list, nil
}

// CloseLive archives a live brand with its summed revenue.
func (a *BrandsAPI) CloseLive(ctx context.Context, id, reason string) ([]*model.ArchivedBrand, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).
			SetBody(map[string]string{"reason": reason}).
			Post("/api/brands/live/" + id + "/close")
		if err == nil && resp.IsSuccess() {
			return a.Archive(ctx)
		}
	}

	list := a.localLive()
	var closed *model.LiveBrand
	kept := list[:0]
	for _, b := range list {
		if b.ID == id {
			closed = b
			continue
		}
		kept = append(kept, b)
	}
	if closed == nil {
		return nil, model.ErrNotFound
	}

	archive := a.localArchive()
	archive = append(archive, &model.ArchivedBrand{
		ID:           "archive_brand_" + uuid.New().String(),
		Name:         closed.Name,
		Reason:       reason,
		ClosedDate:   dates.Key(time.Now().UTC()),
		TotalRevenue: closed.TotalRevenue(),
		Summary:      closed.Name + " closed after active run.",
		CreatedAt:    time.Now().UTC(),
	})
	if err := a.c.local.SetJSON(keyLiveBrands, kept); err != nil {
		return nil, err
	}
	if err := a.c.local.SetJSON(keyArchivedBrands, archive); err != nil {
		return nil, err
	}
	return archive, nil
}

func (a *BrandsAPI) Archive(ctx context.Context) ([]*model.ArchivedBrand, error) {
	if a.c.Authenticated() {
		var out struct {
			Brands []*model.ArchivedBrand `json:"brands"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/brands/archive")
		if err == nil && resp.IsSuccess() {
			return out.Brands, nil
		}
	}
	return a.localArchive(), nil
}

// --- local fallbacks ---

func (a *BrandsAPI) localCurrent() *model.CurrentBrand {
	var cur *model.CurrentBrand
	if a.c.local.GetJSON(keyCurrentBrand, &cur) {
		return nil
	}
	return cur
}

func (a *BrandsAPI) localPipeline() []*model.PipelineBrand {
	var list []*model.PipelineBrand
	a.c.local.GetJSON(keyPipelineBrands, &list)
	if list == nil {
		list = []*model.PipelineBrand{}
	}
	return list
}

func (a *BrandsAPI) localLive() []*model.LiveBrand {
	var list []*model.LiveBrand
	a.c.local.GetJSON(keyLiveBrands, &list)
	if list == nil {
		list = []*model.LiveBrand{}
	}
	return list
}

func (a *BrandsAPI) localArchive() []*model.ArchivedBrand {
	var list []*model.ArchivedBrand
	a.c.local.GetJSON(keyArchivedBrands, &list)
	if list == nil {
		list = []*model.ArchivedBrand{}
	}
	return list
}
