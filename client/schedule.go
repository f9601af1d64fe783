package client

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/thislife/planner/internal/model"
)

// ScheduleAPI is the work/meetings hook.
type ScheduleAPI struct{ c *Client }

func (c *Client) Schedule() *ScheduleAPI { return &ScheduleAPI{c: c} }

func (a *ScheduleAPI) Work(ctx context.Context) ([]*model.WorkItem, error) {
	if a.c.Authenticated() {
		var out struct {
			Items []*model.WorkItem `json:"items"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/schedule/work")
		if err == nil && resp.IsSuccess() {
			return out.Items, nil
		}
	}
	return a.localWork(), nil
}

func (a *ScheduleAPI) CreateWork(ctx context.Context, item *model.WorkItem) ([]*model.WorkItem, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).SetBody(item).Post("/api/schedule/work")
		if err == nil && resp.IsSuccess() {
			return a.Work(ctx)
		}
	}

	stored := *item
	stored.ID = "work_" + uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	if stored.Priority == "" {
		stored.Priority = "Medium"
	}
	list := append(a.localWork(), &stored)
	sortByDateTime(list, func(w *model.WorkItem) (string, string) { return w.Date, w.Time })
	if err := a.c.local.SetJSON(keyWorkSchedule, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a *ScheduleAPI) UpdateWork(ctx context.Context, id string, patch map[string]interface{}) ([]*model.WorkItem, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).SetBody(patch).Patch("/api/schedule/work/" + id)
		if err == nil && resp.IsSuccess() {
			return a.Work(ctx)
		}
	}

	list := a.localWork()
	for _, w := range list {
		if w.ID != id {
			continue
		}
		if v, ok := patch["title"].(string); ok {
			w.Title = v
		}
		if v, ok := patch["description"].(string); ok {
			w.Description = v
		}
		if v, ok := patch["date"].(string); ok {
			w.Date = v
		}
		if v, ok := patch["time"].(string); ok {
			w.Time = v
		}
		if v, ok := patch["priority"].(string); ok {
			w.Priority = v
		}
	}
	sortByDateTime(list, func(w *model.WorkItem) (string, string) { return w.Date, w.Time })
	if err := a.c.local.SetJSON(keyWorkSchedule, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a *ScheduleAPI) DeleteWork(ctx context.Context, id string) ([]*model.WorkItem, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).Delete("/api/schedule/work/" + id)
		if err == nil && resp.IsSuccess() {
			return a.Work(ctx)
		}
	}

	list := a.localWork()
	kept := list[:0]
	for _, w := range list {
		if w.ID != id {
			kept = append(kept, w)
		}
	}
	if err := a.c.local.SetJSON(keyWorkSchedule, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (a *ScheduleAPI) Meetings(ctx context.Context) ([]*model.MeetingItem, error) {
	if a.c.Authenticated() {
		var out struct {
			Items []*model.MeetingItem `json:"items"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/schedule/meetings")
		if err == nil && resp.IsSuccess() {
			return out.Items, nil
		}
	}
	return a.localMeetings(), nil
}

func (a *ScheduleAPI) CreateMeeting(ctx context.Context, item *model.MeetingItem) ([]*model.MeetingItem, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).SetBody(item).Post("/api/schedule/meetings")
		if err == nil && resp.IsSuccess() {
			return a.Meetings(ctx)
		}
	}

	stored := *item
	stored.ID = "meeting_" + uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	list := append(a.localMeetings(), &stored)
	sortByDateTime(list, func(m *model.MeetingItem) (string, string) { return m.Date, m.Time })
	if err := a.c.local.SetJSON(keyMeetings, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a *ScheduleAPI) UpdateMeeting(ctx context.Context, id string, patch map[string]interface{}) ([]*model.MeetingItem, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).SetBody(patch).Patch("/api/schedule/meetings/" + id)
		if err == nil && resp.IsSuccess() {
			return a.Meetings(ctx)
		}
	}

	list := a.localMeetings()
	for _, m := range list {
		if m.ID != id {
			continue
		}
		if v, ok := patch["title"].(string); ok {
			m.Title = v
		}
		if v, ok := patch["with"].(string); ok {
			m.With = v
		}
		if v, ok := patch["date"].(string); ok {
			m.Date = v
		}
		if v, ok := patch["time"].(string); ok {
			m.Time = v
		}
		if v, ok := patch["notes"].(string); ok {
			m.Notes = v
		}
	}
	sortByDateTime(list, func(m *model.MeetingItem) (string, string) { return m.Date, m.Time })
	if err := a.c.local.SetJSON(keyMeetings, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (a *ScheduleAPI) DeleteMeeting(ctx context.Context, id string) ([]*model.MeetingItem, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).Delete("/api/schedule/meetings/" + id)
		if err == nil && resp.IsSuccess() {
			return a.Meetings(ctx)
		}
	}

	list := a.localMeetings()
	kept := list[:0]
	for _, m := range list {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	if err := a.c.local.SetJSON(keyMeetings, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (a *ScheduleAPI) localWork() []*model.WorkItem {
	var list []*model.WorkItem
	a.c.local.GetJSON(keyWorkSchedule, &list)
	if list == nil {
		list = []*model.WorkItem{}
	}
	return list
}

func (a *ScheduleAPI) localMeetings() []*model.MeetingItem {
	var list []*model.MeetingItem
	a.c.local.GetJSON(keyMeetings, &list)
	if list == nil {
		list = []*model.MeetingItem{}
	}
	return list
}

// sortByDateTime keeps a schedule slice ordered by (date, time).
func sortByDateTime[T any](list []T, key func(T) (string, string)) {
	sort.SliceStable(list, func(i, j int) bool {
		di, ti := key(list[i])
		dj, tj := key(list[j])
		if di != dj {
			return di < dj
		}
		return ti < tj
	})
}
