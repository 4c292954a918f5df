// Package metrics holds the prometheus collectors of the game server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	Actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_actions_total",
			Help: "Player actions by kind and outcome",
		},
		[]string{"action", "outcome"},
	)
	IncomeCredited = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_income_credited_total",
			Help: "Passive income credited, by source of the reconciliation",
		},
		[]string{"source"},
	)
	CoursesCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_courses_completed_total",
			Help: "Learning courses completed",
		},
		[]string{"course"},
	)
	SubscriptionsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "game_subscriptions_granted_total",
			Help: "Subscriptions granted after a confirmed payment",
		},
		[]string{"tier"},
	)
	IncomeBatchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "game_income_batch_duration_seconds",
			Help:    "Duration of one batch income pass",
			Buckets: prometheus.DefBuckets,
		},
	)
	ChatConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_connections",
			Help: "Open chat websocket connections",
		},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

func init() {
	prometheus.MustRegister(Actions)
	prometheus.MustRegister(IncomeCredited)
	prometheus.MustRegister(CoursesCompleted)
	prometheus.MustRegister(SubscriptionsGranted)
	prometheus.MustRegister(IncomeBatchDuration)
	prometheus.MustRegister(ChatConnections)
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPDuration)
}

// Outcome labels an action result.
func Outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
