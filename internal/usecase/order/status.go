package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sajilokart/kicks-order-service/internal/domain"
	publisher "github.com/sajilokart/kicks-order-service/internal/infrastructure/kafka"
	orderdto "github.com/sajilokart/kicks-order-service/internal/usecase/dto/order"
)

// ChangeOrderStatus is the admin order transition. Every request runs
// through the shared validator; the update itself is conditional on the
// status the decision was made against.
func (uc *DefaultOrderUsecase) ChangeOrderStatus(ctx context.Context, input *orderdto.ChangeOrderStatusInput) (*orderdto.OrderStatusChange, error) {
	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	payment := order.Payment
	if payment == nil {
		payment, err = uc.PaymentRepo.GetPaymentByID(ctx, order.PaymentID)
		if err != nil {
			return nil, err
		}
	}

	urgent, err := domain.ValidateOrderTransition(order.Status, input.RequestedStatus, payment.Status, payment.Method)
	if err != nil {
		var te *domain.TransitionError
		if errors.As(err, &te) {
			uc.Metrics.TransitionsRejectedTotal.WithLabelValues("order", te.Rule).Inc()
		}
		return nil, err
	}

	if urgent {
		// The expedite bypass skips intermediate states and must stay
		// attributable to the admin who took it.
		slog.Warn("urgent delivery bypass taken",
			"order_id", order.ID,
			"from", string(order.Status),
			"actor", input.Actor,
		)
		uc.Metrics.UrgentDeliveriesTotal.WithLabelValues(input.Actor).Inc()
	}

	if err := uc.OrderRepo.UpdateOrderStatus(ctx, order.ID, order.Status, input.RequestedStatus); err != nil {
		return nil, err
	}

	uc.Metrics.OrderStatusChangedTotal.WithLabelValues(string(order.Status), string(input.RequestedStatus)).Inc()

	uc.Notifier.Emit(domain.EventOrderStatusUpdated, domain.OrderStatusEvent{
		OrderID:        order.ID,
		Status:         string(input.RequestedStatus),
		PreviousStatus: string(order.Status),
		PaymentStatus:  string(payment.Status),
		Message:        fmt.Sprintf("Order status updated from %s to %s", order.Status, input.RequestedStatus),
		UpdatedBy:      input.Actor,
	})
	uc.publishOrderEvent(order, payment, input.RequestedStatus, input.Actor)

	slog.Info("order status changed",
		"order_id", order.ID,
		"from", string(order.Status),
		"to", string(input.RequestedStatus),
		"actor", input.Actor,
	)

	return &orderdto.OrderStatusChange{
		OrderID:        order.ID,
		PreviousStatus: order.Status,
		NewStatus:      input.RequestedStatus,
		PaymentStatus:  payment.Status,
		Urgent:         urgent,
	}, nil
}

func (uc *DefaultOrderUsecase) publishOrderEvent(order *domain.Order, payment *domain.Payment, newStatus domain.OrderStatus, actor string) {
	if uc.Publisher == nil {
		return
	}
	totalPrice, _ := order.TotalPrice.Float64()
	go func(event publisher.OrderEvent) {
		if err := uc.Publisher.PublishOrder(uc.Topic, event); err != nil {
			slog.Error("failed to publish kafka OrderEvent", "stage", "status-change", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:        order.ID,
		PaymentID:      payment.ID,
		Status:         string(newStatus),
		PreviousStatus: string(order.Status),
		PaymentStatus:  string(payment.Status),
		TotalPrice:     totalPrice,
		Trigger:        domain.TriggerAdmin,
		Actor:          actor,
	})
}
