package mappers

import (
	"github.com/sajilokart/kicks-order-service/internal/domain"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	order := &domain.Order{
		ID:         model.ID,
		UserID:     model.UserID,
		Status:     model.Status,
		TotalPrice: model.TotalPrice,
		PaymentID:  model.PaymentID,
		CustomerInfo: domain.CustomerInfo{
			FirstName:   model.FirstName,
			LastName:    model.LastName,
			Email:       model.Email,
			PhoneNumber: model.PhoneNumber,
			City:        model.City,
			Street:      model.Street,
			AddressLine: model.AddressLine,
			State:       model.State,
			Zipcode:     model.Zipcode,
		},
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.Payment.ID != "" {
		order.Payment = ToDomainPayment(&model.Payment)
	}
	return order
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:          order.ID,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalPrice:  order.TotalPrice,
		PaymentID:   order.PaymentID,
		FirstName:   order.CustomerInfo.FirstName,
		LastName:    order.CustomerInfo.LastName,
		Email:       order.CustomerInfo.Email,
		PhoneNumber: order.CustomerInfo.PhoneNumber,
		City:        order.CustomerInfo.City,
		Street:      order.CustomerInfo.Street,
		AddressLine: order.CustomerInfo.AddressLine,
		State:       order.CustomerInfo.State,
		Zipcode:     order.CustomerInfo.Zipcode,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
}
