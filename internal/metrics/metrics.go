package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrderTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketing_order_transitions_total",
		Help: "Order lifecycle operations by action (submit, approve, reject, delete)",
	}, []string{"action"})

	TicketsAssigned = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketing_tickets_assigned_total",
		Help: "Ticket files bound to orders, by matching phase",
	}, []string{"phase"})

	AssignmentFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketing_assignment_failures_total",
		Help: "Ticket bindings that could not be applied, by stage",
	}, []string{"stage"})

	Dispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "ticketing_ticket_dispatches_total",
		Help: "Ticket delivery emails by result",
	}, []string{"result"})

	UploadDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "ticketing_ticket_upload_duration_seconds",
		Help:    "Time spent storing one ticket file",
		Buckets: prometheus.DefBuckets,
	})
)
