package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LinksResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instasaver_links_resolved_total",
		Help: "The total number of resolved Instagram links by media type and status",
	}, []string{"media_type", "status"})

	ResolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "instasaver_resolve_duration_seconds",
		Help:    "Duration of Instagram resolver calls",
		Buckets: prometheus.DefBuckets,
	})

	CommandsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instasaver_commands_total",
		Help: "The total number of handled bot commands",
	}, []string{"command"})

	RepliesSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "instasaver_replies_sent_total",
		Help: "The total number of replies sent by kind",
	}, []string{"kind"})

	LogsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "instasaver_logs_total",
		Help: "Number of rows in the activity log",
	})
)
