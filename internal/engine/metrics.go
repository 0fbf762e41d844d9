package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	eventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatguard_events_total",
		Help: "Total number of events evaluated",
	})

	triggeredTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chatguard_triggered_total",
		Help: "Partitions with triggered filters in decisions that produced actions or a message",
	}, []string{"list", "type"})

	reloadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatguard_reloads_total",
		Help: "Total number of configuration snapshots installed",
	})

	filtersDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "chatguard_filters_dropped_total",
		Help: "Total number of malformed filter definitions skipped at load",
	})
)
