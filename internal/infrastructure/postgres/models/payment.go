package models

import (
	"time"

	"github.com/sajilokart/kicks-order-service/internal/domain"
)

type PaymentModel struct {
	ID            string               `gorm:"primaryKey;type:uuid"`
	Method        domain.PaymentMethod `gorm:"not null"`
	Status        domain.PaymentStatus `gorm:"not null;default:UNPAID"`
	CorrelationID string               `gorm:"column:pidx;index:idx_payments_pidx"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PaymentModel) TableName() string {
	return "payments"
}
