package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "mgnactivities"
)

const (
	ActionSignup     = "signup"
	ActionUnregister = "unregister"

	OutcomeApplied  = "applied"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"

	SourceCache = "cache"
	SourceStore = "store"
)

var (
	ActivityMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "activity", "mutations_total"),
		Help: "Count of participant mutations by action and outcome",
	}, []string{"action", "outcome"})
	CatalogLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "activity", "catalog_load_duration_seconds"),
		Help:    "Duration of activity catalog loads in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14),
	}, []string{"source"})
)
