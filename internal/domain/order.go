package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending     OrderStatus = "PENDING"
	StatusPreparation OrderStatus = "PREPARATION"
	StatusOnTheWay    OrderStatus = "ON_THE_WAY"
	StatusDelivered   OrderStatus = "DELIVERED"
	StatusCancelled   OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparation, StatusOnTheWay, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Terminal statuses have no outgoing transitions.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

type CustomerInfo struct {
	FirstName   string
	LastName    string
	Email       string
	PhoneNumber string
	City        string
	Street      string
	AddressLine string
	State       string
	Zipcode     string
}

type Order struct {
	ID           string
	UserID       string
	Status       OrderStatus
	TotalPrice   decimal.Decimal
	PaymentID    string
	Payment      *Payment
	CustomerInfo CustomerInfo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
