package domain

import "context"

// Trigger labels the entry point that started a reconciliation.
const (
	TriggerWebhook = "webhook"
	TriggerVerify  = "verify"
	TriggerAdmin   = "admin"
)

// ReconciliationResult reports what a reconcile call did. When a status
// did not move, New* equals Previous* and the matching Changed flag is
// false (the idempotent no-op path).
type ReconciliationResult struct {
	PaymentID             string
	OrderID               string
	PreviousPaymentStatus PaymentStatus
	NewPaymentStatus      PaymentStatus
	PreviousOrderStatus   OrderStatus
	NewOrderStatus        OrderStatus
	PaymentChanged        bool
	OrderChanged          bool
}

// Reconciler is the single coordinator for every payment-outcome
// mutation. All three entry points (gateway webhook, synchronous
// verify, admin status change) funnel through it.
type Reconciler interface {
	// ReconcileByCorrelationID applies an observed gateway status to the
	// payment identified by its correlation id and propagates to the
	// owning order.
	ReconcileByCorrelationID(ctx context.Context, correlationID string, observed GatewayStatus, trigger string) (*ReconciliationResult, error)

	// VerifyPayment looks the correlation id up at the gateway and
	// reconciles against the authoritative answer.
	VerifyPayment(ctx context.Context, correlationID string) (*ReconciliationResult, error)

	// ChangePaymentStatus is the manual admin path, addressed by payment
	// id instead of correlation id.
	ChangePaymentStatus(ctx context.Context, paymentID string, requested PaymentStatus, actor string) (*ReconciliationResult, error)
}
