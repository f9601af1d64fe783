package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
)

// syncScheduler debounces cloud pushes. It holds at most one pending timer:
// each Schedule call replaces the previous one, so a burst of local writes
// collapses into a single trailing push.
type syncScheduler struct {
	c     *Client
	delay time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	probing bool
	closed  bool

	probeCtx    context.Context
	probeCancel context.CancelFunc
}

func newSyncScheduler(c *Client, delay time.Duration) *syncScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &syncScheduler{
		c:           c,
		delay:       delay,
		probeCtx:    ctx,
		probeCancel: cancel,
	}
}

// Schedule arms (or re-arms) the trailing-debounce timer.
func (s *syncScheduler) Schedule() {
	s.scheduleAfter(s.delay)
}

func (s *syncScheduler) scheduleAfter(delay time.Duration) {
	if !s.c.Authenticated() {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	pushesScheduledTotal.Inc()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(delay, s.fire)
}

// fire pushes the full snapshot once. A failed push hands off to the
// reconnect watcher instead of retrying inline.
func (s *syncScheduler) fire() {
	ctx, cancel := context.WithTimeout(s.probeCtx, 30*time.Second)
	defer cancel()

	if s.c.Push(ctx) {
		return
	}
	s.startReconnectWatcher()
}

// startReconnectWatcher probes /api/health with exponential backoff and
// re-schedules a quick flush once the service is reachable again. Only one
// watcher runs at a time.
func (s *syncScheduler) startReconnectWatcher() {
	s.mu.Lock()
	if s.closed || s.probing {
		s.mu.Unlock()
		return
	}
	s.probing = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			s.probing = false
			s.mu.Unlock()
		}()

		policy := backoff.WithContext(backoff.NewExponentialBackOff(), s.probeCtx)
		err := backoff.Retry(func() error {
			resp, err := s.c.http.R().SetContext(s.probeCtx).Get("/api/health")
			if err != nil {
				return err
			}
			if !resp.IsSuccess() {
				return fmt.Errorf("health status %d", resp.StatusCode())
			}
			return nil
		}, policy)
		if err != nil {
			log.Debug().Err(err).Msg("reconnect probe abandoned")
			return
		}
		// Connectivity is back: flush the pending state promptly.
		s.scheduleAfter(50 * time.Millisecond)
	}()
}

// Close stops the pending timer and the reconnect watcher.
func (s *syncScheduler) Close() {
	s.mu.Lock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()
	s.probeCancel()
}
