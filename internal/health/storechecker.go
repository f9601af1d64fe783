package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/thislife/planner/internal/store"
)

// StoreChecker periodically pings the collections store and caches the
// result. Stores without a HealthPing are reported healthy unconditionally.
type StoreChecker struct {
	store   store.Store
	healthy atomic.Int32
	log     zerolog.Logger
}

func NewStoreChecker(log zerolog.Logger, s store.Store) *StoreChecker {
	return &StoreChecker{store: s, log: log}
}

func (c *StoreChecker) Name() string { return "store" }

// IsHealthy returns the cached result of the last ping.
func (c *StoreChecker) IsHealthy() bool { return c.healthy.Load() == 1 }

// Start pings on the given interval until the context is cancelled.
func (c *StoreChecker) Start(ctx context.Context, interval time.Duration) {
	pinger, ok := c.store.(store.HealthPinger)
	if !ok {
		c.healthy.Store(1)
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ping := func() {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := pinger.HealthPing(pingCtx); err != nil {
			c.healthy.Store(0)
			c.log.Warn().Err(err).Msg("store ping failed")
			return
		}
		c.healthy.Store(1)
	}

	ping()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			ping()
		}
	}
}

// StartMonitor wires a store checker into a service-level aggregate and
// starts both in the background. Returns the aggregate for status reads.
func StartMonitor(ctx context.Context, log zerolog.Logger, s store.Store, interval time.Duration) *ServiceHealthChecker {
	storeChecker := NewStoreChecker(log, s)
	svc := NewServiceHealthChecker(log, storeChecker)
	go storeChecker.Start(ctx, interval)
	go svc.Start(ctx, interval)
	return svc
}
