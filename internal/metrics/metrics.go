// Package metrics holds the Prometheus collectors exported by trackitd.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Requests      *prometheus.CounterVec
	Latency       *prometheus.HistogramVec
	HabitsCreated prometheus.Counter
}

// New registers the collectors on reg. Pass a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trackit_http_requests_total",
			Help: "HTTP requests by route, method and status code.",
		}, []string{"route", "method", "code"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "trackit_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		HabitsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trackit_habits_created_total",
			Help: "Habits created through the API.",
		}),
	}
	reg.MustRegister(m.Requests, m.Latency, m.HabitsCreated)
	return m
}
