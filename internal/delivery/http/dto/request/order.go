package request

import "github.com/shopspring/decimal"

type PlaceOrderRequest struct {
	FirstName     string          `json:"firstName" binding:"required"`
	LastName      string          `json:"lastName" binding:"required"`
	Email         string          `json:"email" binding:"required,email"`
	PhoneNumber   string          `json:"phoneNumber" binding:"required,len=10"`
	City          string          `json:"city" binding:"required"`
	Street        string          `json:"street"`
	AddressLine   string          `json:"addressLine" binding:"required"`
	State         string          `json:"state" binding:"required"`
	Zipcode       string          `json:"zipcode" binding:"required"`
	TotalPrice    decimal.Decimal `json:"totalPrice" binding:"required"`
	PaymentMethod string          `json:"paymentMethod" binding:"required,oneof=COD ESEWA KHALTI"`
}

type ChangeOrderStatusRequest struct {
	OrderStatus string `json:"orderStatus" binding:"required"`
}

type ChangePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type VerifyPaymentRequest struct {
	Pidx string `json:"pidx" binding:"required"`
}

type KhaltiWebhookRequest struct {
	Pidx            string `json:"pidx" binding:"required"`
	Status          string `json:"status" binding:"required"`
	Amount          int64  `json:"amount"`
	PurchaseOrderID string `json:"purchase_order_id"`
}
