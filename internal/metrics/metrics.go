// Package metrics exposes the Prometheus collectors for the booking engine.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitch_booking",
		Name:      "bookings_created_total",
		Help:      "Bookings successfully created.",
	})
	bookingConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pitch_booking",
		Name:      "booking_conflicts_total",
		Help:      "Booking attempts rejected because the slot was taken.",
	})
	statusTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pitch_booking",
		Name:      "booking_transitions_total",
		Help:      "Booking status transitions by target status.",
	}, []string{"to"})
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, bookingConflicts, statusTransitions)
	})
}

// IncCreated counts a successful booking creation.
func IncCreated() { bookingsCreated.Inc() }

// IncConflict counts a rejected double-booking attempt.
func IncConflict() { bookingConflicts.Inc() }

// IncTransition counts a status transition into the given state.
func IncTransition(to string) { statusTransitions.WithLabelValues(to).Inc() }
