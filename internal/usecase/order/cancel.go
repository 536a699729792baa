package order

import (
	"context"
	"errors"
	"log/slog"

	"github.com/sajilokart/kicks-order-service/internal/domain"
)

// CancelOrder is the customer-facing cancellation. It is stricter than
// the admin DAG: once staff started preparing or shipping, the customer
// can no longer pull the order back.
func (uc *DefaultOrderUsecase) CancelOrder(ctx context.Context, userID, orderID string) error {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.UserID != userID {
		return domain.ErrOrderNotFound
	}

	if order.Status == domain.StatusPreparation || order.Status == domain.StatusOnTheWay {
		return domain.ErrCancelNotAllowed
	}

	payment := order.Payment
	paymentStatus := domain.PaymentUnpaid
	method := domain.MethodCOD
	if payment != nil {
		paymentStatus = payment.Status
		method = payment.Method
	}
	if _, err := domain.ValidateOrderTransition(order.Status, domain.StatusCancelled, paymentStatus, method); err != nil {
		var te *domain.TransitionError
		if errors.As(err, &te) {
			uc.Metrics.TransitionsRejectedTotal.WithLabelValues("order", te.Rule).Inc()
		}
		return err
	}

	if err := uc.OrderRepo.UpdateOrderStatus(ctx, order.ID, order.Status, domain.StatusCancelled); err != nil {
		return err
	}

	uc.Metrics.OrderStatusChangedTotal.WithLabelValues(string(order.Status), string(domain.StatusCancelled)).Inc()

	uc.Notifier.Emit(domain.EventOrderStatusUpdated, domain.OrderStatusEvent{
		OrderID:        order.ID,
		Status:         string(domain.StatusCancelled),
		PreviousStatus: string(order.Status),
		Message:        "Order cancelled by customer",
		UpdatedBy:      userID,
	})
	if payment != nil {
		uc.publishOrderEvent(order, payment, domain.StatusCancelled, userID)
	}

	slog.Info("order cancelled by customer", "order_id", order.ID, "user_id", userID)
	return nil
}
