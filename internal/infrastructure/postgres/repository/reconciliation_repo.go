package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/sajilokart/kicks-order-service/internal/domain"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultReconciliationRepository struct {
	DB *gorm.DB
}

func NewDefaultReconciliationRepository(db *gorm.DB) *DefaultReconciliationRepository {
	return &DefaultReconciliationRepository{DB: db}
}

// ApplyReconciliation runs both conditional updates inside one
// transaction. Each UPDATE carries the expected previous status in its
// WHERE clause; zero affected rows means another writer got there first
// and the whole unit rolls back with ErrStatusConflict, so a half-applied
// payment/order pair is never visible.
func (r *DefaultReconciliationRepository) ApplyReconciliation(ctx context.Context, ch domain.ReconciliationChange) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		res := tx.Model(&models.PaymentModel{}).
			Where("id = ? AND status = ?", ch.PaymentID, ch.ExpectedPaymentStatus).
			Updates(map[string]any{"status": ch.NewPaymentStatus, "updated_at": now})
		if res.Error != nil {
			return fmt.Errorf("update payment %s status: %w", ch.PaymentID, res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrStatusConflict
		}

		if ch.OrderID == "" {
			return nil
		}

		res = tx.Model(&models.OrderModel{}).
			Where("id = ? AND status = ?", ch.OrderID, ch.ExpectedOrderStatus).
			Updates(map[string]any{"status": ch.NewOrderStatus, "updated_at": now})
		if res.Error != nil {
			return fmt.Errorf("update order %s status: %w", ch.OrderID, res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrStatusConflict
		}
		return nil
	})
}
