package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpstreamRequests counts calls to the inventory API by operation and outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lab_inventory",
		Name:      "upstream_requests_total",
		Help:      "Calls made to the inventory API.",
	}, []string{"op", "outcome"})

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "lab_inventory",
		Name:      "upstream_request_duration_seconds",
		Help:      "Latency of inventory API calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})

	ReportPolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "lab_inventory",
		Name:      "report_polls_total",
		Help:      "Report refreshes performed by live pollers.",
	}, []string{"outcome"})

	LiveReportViews = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "lab_inventory",
		Name:      "live_report_views",
		Help:      "Open report websockets.",
	})
)

// Outcome labels a call result.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
