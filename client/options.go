package client

// Functional options configuring the Client during New(). Kept in a
// standalone file so every available knob is discoverable at a glance.

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Option mutates the Client during New().
type Option func(*Client) error

// WithAccessCode sets the shared secret sent in the x-access-code header.
func WithAccessCode(code string) Option {
	return func(c *Client) error {
		c.accessCode = code
		return nil
	}
}

// WithHTTPClient injects a custom *http.Client. Useful for setting transport
// timeouts, tracing, custom TLS settings, etc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = resty.NewWithClient(hc)
		return nil
	}
}

// WithLocalStorePath overrides the ~/.this-life state directory.
func WithLocalStorePath(dir string) Option {
	return func(c *Client) error {
		if dir == "" {
			return fmt.Errorf("empty local store path")
		}
		c.storeDir = dir
		return nil
	}
}

// WithDebounce overrides the trailing-debounce window for cloud pushes.
func WithDebounce(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("debounce must be positive")
		}
		c.debounce = d
		return nil
	}
}

// WithDebugLogging logs every request/response through the transport when
// enabled.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if !enabled {
			return nil
		}
		if c.http == nil {
			c.http = resty.New()
		}
		c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			log.Debug().Str("method", req.Method).Str("url", req.URL).Msg("HTTP request")
			return nil
		})
		c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			if dump, err := httputil.DumpResponse(resp.RawResponse, false); err == nil {
				log.Debug().Int("status_code", resp.StatusCode()).Str("response_dump", string(dump)).Msg("HTTP response")
			}
			return nil
		})
		return nil
	}
}
