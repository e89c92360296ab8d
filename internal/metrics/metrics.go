// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "venuspay",
		Name:      "payments_submitted_total",
		Help:      "Payments recorded from the payer form.",
	})

	PaymentsApproved = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "venuspay",
		Name:      "payments_approved_total",
		Help:      "Pending payments moved to Approved.",
	})

	PaymentsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "venuspay",
		Name:      "payments_deleted_total",
		Help:      "Payments removed by the admin.",
	})

	AdminLogins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "venuspay",
		Name:      "admin_logins_total",
		Help:      "Admin login attempts by result.",
	}, []string{"result"})

	KeepAlivePings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "venuspay",
		Name:      "keepalive_pings_total",
		Help:      "Keep-alive requests by result.",
	}, []string{"result"})
)
