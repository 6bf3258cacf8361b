// Package metrics registers the service's Prometheus collectors. Labels stay
// low-cardinality: outcome classes, never emails or session ids.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OTPSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signup_service",
			Name:      "otp_sends_total",
			Help:      "Total number of OTP send attempts",
		},
		[]string{"result"}, // sent, provider_error, not_configured
	)

	OTPChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signup_service",
			Name:      "otp_checks_total",
			Help:      "Total number of OTP verification checks",
		},
		[]string{"result"}, // approved, rejected, provider_error
	)

	DuplicateChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signup_service",
			Name:      "duplicate_checks_total",
			Help:      "Total number of duplicate-email lookups",
		},
		[]string{"result"}, // available, taken, error
	)

	EnrichmentLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signup_service",
			Name:      "enrichment_lookups_total",
			Help:      "Total number of company enrichment lookups",
		},
		[]string{"result"}, // hit, miss, error
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "signup_service",
			Name:      "signup_submissions_total",
			Help:      "Total number of completed signup submissions",
		},
		[]string{"result"}, // accepted, rejected
	)
)
