package server

import "github.com/prometheus/client_golang/prometheus"

type metrics struct {
	regenerations       prometheus.Counter
	regenerationErrors  prometheus.Counter
	regenerationSeconds prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		regenerations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "panschema_regenerations_total",
			Help: "Completed output regenerations.",
		}),
		regenerationErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "panschema_regeneration_errors_total",
			Help: "Failed output regenerations.",
		}),
		regenerationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "panschema_regeneration_duration_seconds",
			Help:    "Time spent regenerating output.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(m.regenerations, m.regenerationErrors, m.regenerationSeconds)
	return m
}
