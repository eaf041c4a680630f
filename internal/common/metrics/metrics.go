// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests handled",
		},
		[]string{"route", "method", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request handling in seconds",
		},
		[]string{"route", "method"},
	)

	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_signups_total",
			Help: "Total number of signup attempts per activity and outcome",
		},
		[]string{"activity", "outcome"},
	)

	UnregistrationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "activity_unregistrations_total",
			Help: "Total number of unregister attempts per activity and outcome",
		},
		[]string{"activity", "outcome"},
	)

	ActivityParticipants = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "activity_participants",
			Help: "Current number of participants per activity",
		},
		[]string{"activity"},
	)
)
