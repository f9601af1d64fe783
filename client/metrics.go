package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pushesScheduledTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "thislife_client",
			Name:      "pushes_scheduled_total",
			Help:      "Cloud pushes scheduled by local writes (before debouncing).",
		},
	)

	pushesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "thislife_client",
			Name:      "pushes_total",
			Help:      "Snapshot pushes that reached the service successfully.",
		},
	)

	pushFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "thislife_client",
			Name:      "push_failures_total",
			Help:      "Snapshot pushes that failed on transport or status.",
		},
	)

	pullsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "thislife_client",
			Name:      "pulls_total",
			Help:      "Snapshot pulls applied to the local store.",
		},
	)

	pullFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "thislife_client",
			Name:      "pull_failures_total",
			Help:      "Snapshot pulls that failed on transport or status.",
		},
	)
)
