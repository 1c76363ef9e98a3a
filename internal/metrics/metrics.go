// Package metrics exposes Prometheus counters for the booking workflow.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roombook",
			Name:      "booking_created_total",
			Help:      "Count of bookings created by initial status.",
		},
		[]string{"status"},
	)

	bookingDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roombook",
			Name:      "booking_deleted_total",
			Help:      "Count of bookings deleted.",
		},
	)

	bookingDecision = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roombook",
			Name:      "booking_decision_total",
			Help:      "Count of approval decisions over bookings.",
		},
		[]string{"decision"},
	)

	conflictRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "roombook",
			Name:      "conflict_rejections_total",
			Help:      "Count of booking requests rejected because the slot was taken.",
		},
	)

	statusCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "roombook",
			Name:      "status_cache_lookups_total",
			Help:      "Count of room status cache lookups by outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingCreated, bookingDeleted, bookingDecision, conflictRejections, statusCacheLookups)
	})
}

func IncBookingCreated(status string) {
	bookingCreated.WithLabelValues(status).Inc()
}

func IncBookingDeleted() {
	bookingDeleted.Inc()
}

func IncBookingDecision(decision string) {
	bookingDecision.WithLabelValues(decision).Inc()
}

func IncConflictRejection() {
	conflictRejections.Inc()
}

func IncStatusCacheLookup(outcome string) {
	statusCacheLookups.WithLabelValues(outcome).Inc()
}
