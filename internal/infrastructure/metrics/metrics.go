package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ReconciliationMetrics covers the reconciliation coordinator and the
// status validators.
type ReconciliationMetrics struct {
	// Reconcile calls by entry point and how they ended
	ReconciliationsTotal prometheus.CounterVec

	// Validator rejections by the rule that fired
	TransitionsRejectedTotal prometheus.CounterVec

	// Effective status changes
	OrderStatusChangedTotal   prometheus.CounterVec
	PaymentStatusChangedTotal prometheus.CounterVec

	// Urgent Pending->Delivered bypasses, attributed per admin
	UrgentDeliveriesTotal prometheus.CounterVec

	// Outbound gateway calls
	GatewayLookupDuration prometheus.HistogramVec

	// Orders placed
	OrdersCreatedTotal prometheus.CounterVec

	// Orphaned payments encountered (data-integrity faults)
	OrphanedPaymentsTotal prometheus.Counter
}

func NewReconciliationMetrics() *ReconciliationMetrics {
	return &ReconciliationMetrics{
		ReconciliationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "reconciliations_total",
				Help: "Reconcile calls by trigger (webhook/verify/admin) and outcome (changed/noop/rejected/error)",
			},
			[]string{"trigger", "outcome"},
		),

		TransitionsRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transitions_rejected_total",
				Help: "Status transitions rejected by the validator, by rule",
			},
			[]string{"entity", "rule"},
		),

		OrderStatusChangedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_status_changed_total",
				Help: "Effective order status transitions",
			},
			[]string{"from", "to"},
		),

		PaymentStatusChangedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_status_changed_total",
				Help: "Effective payment status transitions",
			},
			[]string{"from", "to", "method"},
		),

		UrgentDeliveriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "urgent_deliveries_total",
				Help: "Pending to Delivered expedite bypasses taken by admins",
			},
			[]string{"actor"},
		),

		GatewayLookupDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gateway_lookup_duration_seconds",
				Help:    "Duration of outbound gateway lookup calls",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),

		OrdersCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Orders placed, by payment method",
			},
			[]string{"payment_method"},
		),

		OrphanedPaymentsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orphaned_payments_total",
				Help: "Payments found without an owning order",
			},
		),
	}
}
