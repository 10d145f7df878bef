// Package metrics exposes Prometheus counters for decisions and bookings.
package metrics

import (
	"concierge/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CodeConfirmed labels successful bookings in BookingResults.
const CodeConfirmed = "confirmed"

var (
	BookingResults = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_booking_results_total",
		Help: "Booking attempts by category and outcome code.",
	}, []string{"category", "code"})

	Decisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_decisions_total",
		Help: "Decision requests by outcome.",
	}, []string{"outcome"})

	DecisionConfidence = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "concierge_decision_confidence",
		Help:    "Confidence of returned decisions.",
		Buckets: []float64{0.5, 0.6, 0.7, 0.8, 0.9, 0.95},
	})
)

// ObserveBooking counts one booking result.
func ObserveBooking(r models.BookingResult) {
	code := string(r.Code)
	if r.Success {
		code = CodeConfirmed
	}
	category := string(r.Category)
	if category == "" {
		category = "unknown"
	}
	BookingResults.WithLabelValues(category, code).Inc()
}

// ObserveDecision counts one decision. outcome is "selected", "below_threshold" or an error code.
func ObserveDecision(outcome string, confidence float64) {
	Decisions.WithLabelValues(outcome).Inc()
	if confidence > 0 {
		DecisionConfidence.Observe(confidence)
	}
}
