package orderdto

import "github.com/sajilokart/kicks-order-service/internal/domain"

type OrderOutput struct {
	Order domain.Order
	// PaymentURL is the gateway redirect for online methods; empty for COD.
	PaymentURL string
}

type OrderStatusChange struct {
	OrderID        string
	PreviousStatus domain.OrderStatus
	NewStatus      domain.OrderStatus
	PaymentStatus  domain.PaymentStatus
	// Urgent marks the attributed Pending->Delivered expedite bypass.
	Urgent bool
}

type ListOrdersOutput struct {
	Orders []*domain.Order
	Total  int64
}
