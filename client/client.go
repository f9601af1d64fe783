// Package client is the planner SDK: a local-first state store with
// debounced cloud sync and remote-first collection access when a richer
// backend is reachable.
package client

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/thislife/planner/client/localstore"
)

// Client talks to a planner service and keeps the local state store.
type Client struct {
	baseURL    string
	accessCode string
	http       *resty.Client
	local      *localstore.Store
	sync       *syncScheduler

	debounce  time.Duration
	storeDir  string
	closeOnce uint32
}

// New constructs a Client with optional functional arguments. An empty
// access code leaves the client unauthenticated: reads stay local and the
// sync scheduler never pushes.
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		debounce: 700 * time.Millisecond,
	}

	if os.Getenv("THISLIFE_DEBUG") == "true" || os.Getenv("DEBUG") == "true" {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if c.http == nil {
		c.http = resty.NewWithClient(&http.Client{Timeout: 30 * time.Second})
	}
	c.http.SetBaseURL(c.baseURL).SetHeader("Content-Type", "application/json")

	if c.local == nil {
		dir := c.storeDir
		if dir == "" {
			var err error
			dir, err = localstore.DefaultDir()
			if err != nil {
				return nil, err
			}
		}
		local, err := localstore.Open(dir)
		if err != nil {
			return nil, fmt.Errorf("open local store: %w", err)
		}
		c.local = local
	}

	c.sync = newSyncScheduler(c, c.debounce)
	c.local.OnChange(c.sync.Schedule)
	return c, nil
}

// Local exposes the underlying local store.
func (c *Client) Local() *localstore.Store { return c.local }

// Authenticated reports whether an access code is set. Unauthenticated
// clients never push to the cloud.
func (c *Client) Authenticated() bool { return c.accessCode != "" }

// Close flushes nothing and tears down the sync scheduler. Safe to call
// more than once.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closeOnce, 0, 1) {
		return nil
	}
	c.sync.Close()
	return nil
}

// request returns a resty request with the access-code header applied.
func (c *Client) request() *resty.Request {
	req := c.http.R()
	if c.accessCode != "" {
		req.SetHeader("x-access-code", c.accessCode)
	}
	return req
}
