package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sajilokart/kicks-order-service/internal/domain"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/postgres/mappers"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var orderModel models.OrderModel
	if err := r.DB.WithContext(ctx).Preload("Payment").First(&orderModel, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order %s: %w", orderID, err)
	}
	return mappers.ToDomainOrder(&orderModel), nil
}

func (r *DefaultOrderRepository) GetOrderByPaymentID(ctx context.Context, paymentID string) (*domain.Order, error) {
	var orderModel models.OrderModel
	if err := r.DB.WithContext(ctx).Preload("Payment").First(&orderModel, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by payment %s: %w", paymentID, err)
	}
	return mappers.ToDomainOrder(&orderModel), nil
}

func (r *DefaultOrderRepository) GetOrders(ctx context.Context, filters domain.OrderFilters, page, limit int) ([]*domain.Order, int64, error) {
	var orderModels []models.OrderModel
	var total int64

	query := r.DB.WithContext(ctx).Model(&models.OrderModel{}).Preload("Payment")
	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if len(filters.Statuses) > 0 {
		query = query.Where("status IN (?)", filters.Statuses)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if limit > 0 {
		query = query.Offset((page - 1) * limit).Limit(limit)
	}

	if err := query.Order("created_at DESC").Find(&orderModels).Error; err != nil {
		return nil, 0, fmt.Errorf("find orders: %w", err)
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}
	return orders, total, nil
}

// UpdateOrderStatus is conditional on the expected previous status so a
// concurrent writer cannot be silently overwritten.
func (r *DefaultOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, expected, newStatus domain.OrderStatus) error {
	res := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, expected).
		Updates(map[string]any{"status": newStatus, "updated_at": time.Now()})
	if res.Error != nil {
		return fmt.Errorf("update order %s status: %w", orderID, res.Error)
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := r.DB.WithContext(ctx).Model(&models.OrderModel{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
			return fmt.Errorf("update order %s status: %w", orderID, err)
		}
		if count == 0 {
			return domain.ErrOrderNotFound
		}
		return domain.ErrStatusConflict
	}
	return nil
}

func (r *DefaultOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	res := r.DB.WithContext(ctx).Delete(&models.OrderModel{}, "id = ?", orderID)
	if res.Error != nil {
		return fmt.Errorf("delete order %s: %w", orderID, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}
