package response

import "time"

type OrderResponse struct {
	OrderID       string    `json:"order_id"`
	Status        string    `json:"status"`
	TotalPrice    string    `json:"total_price"`
	PaymentID     string    `json:"payment_id"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	PaymentStatus string    `json:"payment_status,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type PlaceOrderResponse struct {
	Message    string        `json:"message"`
	Order      OrderResponse `json:"order"`
	PaymentURL string        `json:"payment_url,omitempty"`
}

type ListOrdersResponse struct {
	Message string          `json:"message"`
	Orders  []OrderResponse `json:"orders"`
	Total   int64           `json:"total"`
}

type OrderStatusChangeResponse struct {
	Message        string `json:"message"`
	OrderID        string `json:"order_id"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
	PaymentStatus  string `json:"payment_status"`
	Urgent         bool   `json:"urgent,omitempty"`
}

type ReconciliationResponse struct {
	Message               string `json:"message"`
	PaymentID             string `json:"payment_id"`
	OrderID               string `json:"order_id"`
	PreviousPaymentStatus string `json:"previous_payment_status"`
	NewPaymentStatus      string `json:"new_payment_status"`
	PreviousOrderStatus   string `json:"previous_order_status"`
	NewOrderStatus        string `json:"new_order_status"`
	PaymentChanged        bool   `json:"payment_changed"`
	OrderChanged          bool   `json:"order_changed"`
}

type RejectionResponse struct {
	Message         string   `json:"message"`
	Rule            string   `json:"rule"`
	CurrentStatus   string   `json:"current_status"`
	RequestedStatus string   `json:"requested_status"`
	ValidNext       []string `json:"valid_transitions,omitempty"`
}
