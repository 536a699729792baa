package domain

import "context"

type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment *Payment) error
	GetPaymentByID(ctx context.Context, paymentID string) (*Payment, error)
	GetPaymentByCorrelationID(ctx context.Context, correlationID string) (*Payment, error)
	// SetCorrelationID stores the gateway session token (pidx). Set once
	// when the session is initiated.
	SetCorrelationID(ctx context.Context, paymentID, correlationID string) error
	DeletePayment(ctx context.Context, paymentID string) error
}

// ReconciliationRepository applies the approved payment mutation and the
// optional dependent order mutation as one unit: both rows change or
// neither does. Each update is conditional on the expected previous
// status; a zero-row match aborts the transaction with ErrStatusConflict.
type ReconciliationRepository interface {
	ApplyReconciliation(ctx context.Context, ch ReconciliationChange) error
}

type ReconciliationChange struct {
	PaymentID             string
	ExpectedPaymentStatus PaymentStatus
	NewPaymentStatus      PaymentStatus

	// Zero OrderID means the payment changes alone.
	OrderID             string
	ExpectedOrderStatus OrderStatus
	NewOrderStatus      OrderStatus
}
