package order

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sajilokart/kicks-order-service/internal/domain"
)

// DeleteOrder removes an order and its payment. Delivered orders are
// part of the financial record and stay.
func (uc *DefaultOrderUsecase) DeleteOrder(ctx context.Context, orderID, actor string) error {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status == domain.StatusDelivered {
		return fmt.Errorf("order %s: %w", orderID, domain.ErrDeleteDelivered)
	}

	// Order first, payment second: the order holds the foreign key.
	if err := uc.OrderRepo.DeleteOrder(ctx, orderID); err != nil {
		return err
	}
	if err := uc.PaymentRepo.DeletePayment(ctx, order.PaymentID); err != nil {
		slog.Error("order deleted but payment removal failed",
			"order_id", orderID, "payment_id", order.PaymentID, "error", err.Error())
		return err
	}

	uc.Notifier.Emit(domain.EventOrderDeleted, map[string]string{
		"order_id":   orderID,
		"message":    "Order deleted by admin",
		"deleted_by": actor,
	})

	slog.Info("order deleted", "order_id", orderID, "actor", actor)
	return nil
}
