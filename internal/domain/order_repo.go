package domain

import "context"

type OrderFilters struct {
	Statuses []OrderStatus
	UserID   string
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	// GetOrderByPaymentID resolves the order owning a payment. Returns
	// ErrOrderNotFound when the payment is orphaned.
	GetOrderByPaymentID(ctx context.Context, paymentID string) (*Order, error)
	GetOrders(ctx context.Context, filters OrderFilters, page, limit int) ([]*Order, int64, error)
	// UpdateOrderStatus is a conditional update: it only applies when the
	// stored status still equals expected, and returns ErrStatusConflict
	// otherwise.
	UpdateOrderStatus(ctx context.Context, orderID string, expected, newStatus OrderStatus) error
	DeleteOrder(ctx context.Context, orderID string) error
}
