package health

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// HealthChecker is implemented by component-level checkers.
type HealthChecker interface {
	Name() string
	IsHealthy() bool
	Start(ctx context.Context, interval time.Duration)
}

// ServiceHealthChecker folds the component checkers into the single
// service-level flag served by /api/health.
type ServiceHealthChecker struct {
	healthy atomic.Bool
	deps    []HealthChecker
	log     zerolog.Logger
}

func NewServiceHealthChecker(log zerolog.Logger, deps ...HealthChecker) *ServiceHealthChecker {
	return &ServiceHealthChecker{deps: deps, log: log}
}

// IsHealthy returns the cached service health.
func (h *ServiceHealthChecker) IsHealthy() bool { return h.healthy.Load() }

// Start re-evaluates dependency health on the interval until the context is
// cancelled, logging transitions with the names of the components that are
// down.
func (h *ServiceHealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	wasHealthy := false
	eval := func() {
		var down []string
		for _, dep := range h.deps {
			if !dep.IsHealthy() {
				down = append(down, dep.Name())
			}
		}
		ok := len(down) == 0
		h.healthy.Store(ok)
		if ok != wasHealthy {
			if ok {
				h.log.Info().Msg("service healthy")
			} else {
				h.log.Error().Strs("unhealthy", down).Msg("service degraded")
			}
			wasHealthy = ok
		}
	}

	eval()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			eval()
		}
	}
}
