// Package metrics defines the domain Prometheus metrics of the appointments
// API. HTTP request metrics come from echoprometheus; these count what the
// request metrics cannot tell apart.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "citas"

// ── Booking metrics ───────────────────────────────────────────────────────────

// AppointmentsBookedTotal counts appointments created by POST /citas,
// idempotent replays included.
var AppointmentsBookedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of appointments booked.",
	},
)

// AppointmentConflictsTotal counts bookings rejected because the slot was
// already held by a non-cancelled appointment.
var AppointmentConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_conflicts_total",
		Help:      "Total number of bookings rejected for a taken slot.",
	},
)

// AppointmentStatusChangesTotal counts status updates.
// Label:
//   - estado: the status written (e.g. "confirmada")
var AppointmentStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointment_status_changes_total",
		Help:      "Total number of appointment status updates, by new status.",
	},
	[]string{"estado"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
