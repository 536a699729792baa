package domain

// Event names fanned out to connected clients.
const (
	EventOrderStatusUpdated   = "orderStatusUpdated"
	EventPaymentStatusUpdated = "paymentStatusUpdated"
	EventOrderDeleted         = "orderDeleted"
)

type OrderStatusEvent struct {
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status"`
	PaymentStatus  string `json:"payment_status,omitempty"`
	Message        string `json:"message"`
	UpdatedBy      string `json:"updated_by,omitempty"`
}

type PaymentStatusEvent struct {
	PaymentID      string `json:"payment_id"`
	OrderID        string `json:"order_id"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status"`
	Message        string `json:"message"`
	UpdatedBy      string `json:"updated_by,omitempty"`
}

// EventNotifier fans state-change events out to connected clients.
// Delivery is best-effort, at most once: the persisted state is the
// source of truth and an emit must never block or fail the operation
// that produced it.
type EventNotifier interface {
	Emit(event string, payload any)
}
