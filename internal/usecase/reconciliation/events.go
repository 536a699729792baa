package reconciliation

import (
	"fmt"
	"log/slog"

	"github.com/sajilokart/kicks-order-service/internal/domain"
	publisher "github.com/sajilokart/kicks-order-service/internal/infrastructure/kafka"
)

// emitReconciled fans out one event per mutated entity. Emission is
// best-effort and must never fail the reconciliation result.
func (uc *Usecase) emitReconciled(order *domain.Order, payment *domain.Payment, result *domain.ReconciliationResult, trigger, actor string) {
	if result.PaymentChanged {
		uc.Notifier.Emit(domain.EventPaymentStatusUpdated, domain.PaymentStatusEvent{
			PaymentID:      payment.ID,
			OrderID:        order.ID,
			Status:         string(result.NewPaymentStatus),
			PreviousStatus: string(result.PreviousPaymentStatus),
			Message: fmt.Sprintf("Payment status updated from %s to %s",
				result.PreviousPaymentStatus, result.NewPaymentStatus),
			UpdatedBy: actor,
		})
	}

	if result.OrderChanged {
		uc.Notifier.Emit(domain.EventOrderStatusUpdated, domain.OrderStatusEvent{
			OrderID:        order.ID,
			Status:         string(result.NewOrderStatus),
			PreviousStatus: string(result.PreviousOrderStatus),
			PaymentStatus:  string(result.NewPaymentStatus),
			Message:        "Order automatically moved to preparation after payment confirmation",
			UpdatedBy:      actor,
		})
	}

	if uc.Publisher == nil {
		return
	}

	totalPrice, _ := order.TotalPrice.Float64()
	go func(event publisher.OrderEvent) {
		if err := uc.Publisher.PublishOrder(uc.Topic, event); err != nil {
			slog.Error("failed to publish kafka OrderEvent", "stage", "reconciliation", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:        order.ID,
		PaymentID:      payment.ID,
		Status:         string(result.NewOrderStatus),
		PreviousStatus: string(result.PreviousOrderStatus),
		PaymentStatus:  string(result.NewPaymentStatus),
		TotalPrice:     totalPrice,
		Trigger:        trigger,
		Actor:          actor,
	})
}
