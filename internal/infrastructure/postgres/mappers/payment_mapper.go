package mappers

import (
	"github.com/sajilokart/kicks-order-service/internal/domain"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/postgres/models"
)

func ToDomainPayment(model *models.PaymentModel) *domain.Payment {
	return &domain.Payment{
		ID:            model.ID,
		Method:        model.Method,
		Status:        model.Status,
		CorrelationID: model.CorrelationID,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

func ToGORMPayment(payment *domain.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:            payment.ID,
		Method:        payment.Method,
		Status:        payment.Status,
		CorrelationID: payment.CorrelationID,
		CreatedAt:     payment.CreatedAt,
		UpdatedAt:     payment.UpdatedAt,
	}
}
