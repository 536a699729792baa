package publisher

// OrderEvent is the audit record published to the order-events topic on
// every effective status transition.
type OrderEvent struct {
	OrderID        string  `json:"order_id"`
	PaymentID      string  `json:"payment_id"`
	Status         string  `json:"status"`
	PreviousStatus string  `json:"previous_status"`
	PaymentStatus  string  `json:"payment_status"`
	TotalPrice     float64 `json:"total_price"`
	Trigger        string  `json:"trigger"`
	Actor          string  `json:"actor,omitempty"`
}
