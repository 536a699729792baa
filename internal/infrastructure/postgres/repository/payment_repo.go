package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sajilokart/kicks-order-service/internal/domain"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/postgres/mappers"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultPaymentRepository(db *gorm.DB) *DefaultPaymentRepository {
	return &DefaultPaymentRepository{DB: db}
}

func (r *DefaultPaymentRepository) CreatePayment(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.Status == "" {
		payment.Status = domain.PaymentUnpaid
	}
	paymentModel := mappers.ToGORMPayment(payment)
	if err := r.DB.WithContext(ctx).Create(paymentModel).Error; err != nil {
		return fmt.Errorf("create payment: %w", err)
	}
	return nil
}

func (r *DefaultPaymentRepository) GetPaymentByID(ctx context.Context, paymentID string) (*domain.Payment, error) {
	var paymentModel models.PaymentModel
	if err := r.DB.WithContext(ctx).First(&paymentModel, "id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment %s: %w", paymentID, err)
	}
	return mappers.ToDomainPayment(&paymentModel), nil
}

func (r *DefaultPaymentRepository) GetPaymentByCorrelationID(ctx context.Context, correlationID string) (*domain.Payment, error) {
	var paymentModel models.PaymentModel
	if err := r.DB.WithContext(ctx).First(&paymentModel, "pidx = ?", correlationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("get payment by pidx: %w", err)
	}
	return mappers.ToDomainPayment(&paymentModel), nil
}

func (r *DefaultPaymentRepository) SetCorrelationID(ctx context.Context, paymentID, correlationID string) error {
	res := r.DB.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Where("id = ?", paymentID).
		Update("pidx", correlationID)
	if res.Error != nil {
		return fmt.Errorf("set pidx for payment %s: %w", paymentID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}

func (r *DefaultPaymentRepository) DeletePayment(ctx context.Context, paymentID string) error {
	res := r.DB.WithContext(ctx).Delete(&models.PaymentModel{}, "id = ?", paymentID)
	if res.Error != nil {
		return fmt.Errorf("delete payment %s: %w", paymentID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}
	return nil
}
