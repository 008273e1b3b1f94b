package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
)

var (
	TenantsProvisioned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tenants_provisioned_total",
			Help: "Total number of tenants provisioned by status",
		},
		[]string{"status"},
	)
	Enrollments = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrollments_total",
			Help: "Total number of student enrollments by status",
		},
		[]string{"status"},
	)
	EnrollmentDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "enrollment_duration_seconds",
			Help:    "Duration of the enrollment workflow in seconds",
			Buckets: prometheus.LinearBuckets(0, 1, 10), // 0 to 10 seconds
		},
	)
)

func InitMetrics() {
	for _, c := range []prometheus.Collector{TenantsProvisioned, Enrollments, EnrollmentDuration} {
		if err := prometheus.Register(c); err != nil {
			log.Error().Err(err).Msg("Failed to register metric")
		}
	}
}
