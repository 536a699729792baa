package orderdto

import (
	"github.com/sajilokart/kicks-order-service/internal/domain"
	"github.com/shopspring/decimal"
)

type PlaceOrderInput struct {
	UserID        string
	Customer      domain.CustomerInfo
	TotalPrice    decimal.Decimal
	PaymentMethod domain.PaymentMethod
}

type ChangeOrderStatusInput struct {
	OrderID         string
	RequestedStatus domain.OrderStatus
	Actor           string
}

type ListOrdersInput struct {
	UserID   string
	Statuses []domain.OrderStatus
	Page     int
	Limit    int
}
