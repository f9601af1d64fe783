package client

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/thislife/planner/internal/model"
)

// IdeasAPI is the captured-ideas hook: remote-first, with a silent fall
// back to the local store when the service is unreachable. Every mutation
// answers with a full re-read of the collection.
type IdeasAPI struct{ c *Client }

func (c *Client) Ideas() *IdeasAPI { return &IdeasAPI{c: c} }

func (a *IdeasAPI) List(ctx context.Context) ([]*model.Idea, error) {
	if a.c.Authenticated() {
		var out struct {
			Ideas []*model.Idea `json:"ideas"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/ideas")
		if err == nil && resp.IsSuccess() {
			return out.Ideas, nil
		}
	}
	return a.localList(), nil
}

func (a *IdeasAPI) Create(ctx context.Context, text, category string) ([]*model.Idea, error) {
	if a.c.Authenticated() {
		body := map[string]string{"text": text, "category": category}
		resp, err := a.c.request().SetContext(ctx).SetBody(body).Post("/api/ideas")
		if err == nil && resp.IsSuccess() {
			return a.List(ctx)
		}
	}

	idea := &model.Idea{
		ID:        "idea_" + uuid.New().String(),
		Text:      text,
		Category:  category,
		CreatedAt: time.Now().UTC(),
	}
	list := append([]*model.Idea{idea}, a.localList()...)
	if err := a.c.local.SetJSON(keyIdeas, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a *IdeasAPI) Update(ctx context.Context, id string, patch map[string]interface{}) ([]*model.Idea, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).SetBody(patch).Patch("/api/ideas/" + id)
		if err == nil && resp.IsSuccess() {
			return a.List(ctx)
		}
	}

	list := a.localList()
	for _, idea := range list {
		if idea.ID != id {
			continue
		}
		if v, ok := patch["text"].(string); ok {
			idea.Text = v
		}
		if v, ok := patch["category"].(string); ok {
			idea.Category = v
		}
		if v, ok := patch["linkedBrand"].(string); ok {
			if v == "" {
				idea.LinkedBrand = nil
			} else {
				linked := v
				idea.LinkedBrand = &linked
			}
		}
	}
	if err := a.c.local.SetJSON(keyIdeas, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a *IdeasAPI) Delete(ctx context.Context, id string) ([]*model.Idea, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).Delete("/api/ideas/" + id)
		if err == nil && resp.IsSuccess() {
			return a.List(ctx)
		}
	}

	list := a.localList()
	kept := list[:0]
	for _, idea := range list {
		if idea.ID != id {
			kept = append(kept, idea)
		}
	}
	if err := a.c.local.SetJSON(keyIdeas, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (a *IdeasAPI) localList() []*model.Idea {
	var list []*model.Idea
	a.c.local.GetJSON(keyIdeas, &list)
	if list == nil {
		list = []*model.Idea{}
	}
	return list
}
