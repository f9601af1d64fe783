package client

import (
	"context"
	"time"

	"github.com/thislife/planner/internal/model"
)

// SettingsAPI is the singleton settings hook.
type SettingsAPI struct{ c *Client }

func (c *Client) Settings() *SettingsAPI { return &SettingsAPI{c: c} }

// Get returns the saved settings, falling back to the defaults when the
// user has never saved any.
func (a *SettingsAPI) Get(ctx context.Context) (*model.Settings, error) {
	if a.c.Authenticated() {
		var out struct {
			Settings *model.Settings `json:"settings"`
		}
		resp, err := a.c.request().SetContext(ctx).SetResult(&out).Get("/api/settings")
		if err == nil && resp.IsSuccess() && out.Settings != nil {
			return out.Settings, nil
		}
	}

	var s *model.Settings
	if a.c.local.GetJSON(keySettings, &s) || s == nil {
		def := model.DefaultSettings(time.Now().UTC())
		return &def, nil
	}
	return s, nil
}

// Save stores the settings and returns a full re-read.
func (a *SettingsAPI) Save(ctx context.Context, s *model.Settings) (*model.Settings, error) {
	if a.c.Authenticated() {
		resp, err := a.c.request().SetContext(ctx).SetBody(s).Put("/api/settings")
		if err == nil && resp.IsSuccess() {
			return a.Get(ctx)
		}
	}

	s.UpdatedAt = time.Now().UTC()
	if err := a.c.local.SetJSON(keySettings, s); err != nil {
		return nil, err
	}
	return s, nil
}

// TouchVisit records today's visit date in settings.
func (a *SettingsAPI) TouchVisit(ctx context.Context, dateKey string) (*model.Settings, error) {
	s, err := a.Get(ctx)
	if err != nil {
		return nil, err
	}
	s.LastVisitDate = &dateKey
	return a.Save(ctx, s)
}
