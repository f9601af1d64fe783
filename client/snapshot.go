package client

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

type snapshotPayload struct {
	State     map[string]string `json:"state"`
	UpdatedAt *time.Time        `json:"updatedAt"`
}

// Pull fetches the cloud snapshot and applies it to the local store.
// Failure means "stay on local state": the return is false, never a panic
// or an error the caller has to branch on.
func (c *Client) Pull(ctx context.Context) bool {
	if c.baseURL == "" || !c.Authenticated() {
		return false
	}

	var payload snapshotPayload
	resp, err := c.request().
		SetContext(ctx).
		SetResult(&payload).
		ForceContentType("application/json").
		Get("/api/state")
	if err != nil || !resp.IsSuccess() {
		pullFailuresTotal.Inc()
		log.Debug().Err(err).Msg("snapshot pull failed, staying on local state")
		return false
	}

	// A 200 whose body did not decode into a state map must not wipe the
	// local store. The empty-store response decodes to a non-nil empty map.
	if payload.State == nil {
		pullFailuresTotal.Inc()
		log.Warn().Msg("snapshot pull returned no state payload, staying on local state")
		return false
	}

	if err := c.local.Replace(payload.State); err != nil {
		pullFailuresTotal.Inc()
		log.Warn().Err(err).Msg("failed to apply pulled snapshot")
		return false
	}
	pullsTotal.Inc()
	return true
}

// Push uploads the full local snapshot. Unauthenticated clients never push.
func (c *Client) Push(ctx context.Context) bool {
	if c.baseURL == "" || !c.Authenticated() {
		return false
	}

	body := map[string]interface{}{"state": c.local.Snapshot()}
	resp, err := c.request().
		SetContext(ctx).
		SetBody(body).
		Put("/api/state")
	if err != nil || !resp.IsSuccess() {
		pushFailuresTotal.Inc()
		log.Debug().Err(err).Msg("snapshot push failed")
		return false
	}
	pushesTotal.Inc()
	return true
}
