package models

import (
	"time"

	"github.com/sajilokart/kicks-order-service/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderModel struct {
	ID          string             `gorm:"primaryKey;type:uuid"`
	UserID      string             `gorm:"index:idx_orders_user"`
	Status      domain.OrderStatus `gorm:"index:idx_orders_status;not null;default:PENDING"`
	TotalPrice  decimal.Decimal    `gorm:"type:numeric(12,2);not null"`
	PaymentID   string             `gorm:"type:uuid;uniqueIndex:idx_orders_payment"`
	Payment     PaymentModel       `gorm:"foreignKey:PaymentID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;"`
	FirstName   string             `gorm:"not null"`
	LastName    string             `gorm:"not null"`
	Email       string             `gorm:"not null"`
	PhoneNumber string             `gorm:"not null"`
	City        string             `gorm:"not null"`
	Street      string
	AddressLine string `gorm:"not null"`
	State       string `gorm:"not null"`
	Zipcode     string `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index:idx_orders_created_at"`
	UpdatedAt   time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
