package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sajilokart/kicks-order-service/internal/domain"
)

const (
	outcomeChanged  = "changed"
	outcomeNoop     = "noop"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// mapGatewayStatus converts the gateway's wire status into the target
// payment status. Anything unrecognized is acknowledged without mutation.
func mapGatewayStatus(observed domain.GatewayStatus) (domain.PaymentStatus, bool) {
	switch observed {
	case domain.GatewayCompleted:
		return domain.PaymentPaid, true
	case domain.GatewayFailed, domain.GatewayCancelled:
		return domain.PaymentUnpaid, true
	default:
		return "", false
	}
}

func (uc *Usecase) ReconcileByCorrelationID(ctx context.Context, correlationID string, observed domain.GatewayStatus, trigger string) (*domain.ReconciliationResult, error) {
	payment, err := uc.PaymentRepo.GetPaymentByCorrelationID(ctx, correlationID)
	if err != nil {
		if !errors.Is(err, domain.ErrPaymentNotFound) {
			uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeError).Inc()
		}
		return nil, err
	}

	target, mutate := mapGatewayStatus(observed)
	if !mutate {
		return uc.acknowledge(ctx, payment, observed, trigger)
	}

	return uc.reconcile(ctx, payment.ID, target, trigger, "")
}

func (uc *Usecase) VerifyPayment(ctx context.Context, correlationID string) (*domain.ReconciliationResult, error) {
	start := time.Now()
	lookup, err := uc.Gateway.Lookup(ctx, correlationID)
	if err != nil {
		uc.Metrics.GatewayLookupDuration.WithLabelValues(outcomeError).Observe(time.Since(start).Seconds())
		uc.Metrics.ReconciliationsTotal.WithLabelValues(domain.TriggerVerify, outcomeError).Inc()
		return nil, fmt.Errorf("verify %s: %w", correlationID, err)
	}
	uc.Metrics.GatewayLookupDuration.WithLabelValues(string(lookup.Status)).Observe(time.Since(start).Seconds())

	return uc.ReconcileByCorrelationID(ctx, correlationID, lookup.Status, domain.TriggerVerify)
}

func (uc *Usecase) ChangePaymentStatus(ctx context.Context, paymentID string, requested domain.PaymentStatus, actor string) (*domain.ReconciliationResult, error) {
	if _, err := uc.PaymentRepo.GetPaymentByID(ctx, paymentID); err != nil {
		return nil, err
	}
	return uc.reconcile(ctx, paymentID, requested, domain.TriggerAdmin, actor)
}

// acknowledge handles gateway statuses that map to no mutation. The
// order is still resolved first so an orphaned payment never passes as
// success.
func (uc *Usecase) acknowledge(ctx context.Context, payment *domain.Payment, observed domain.GatewayStatus, trigger string) (*domain.ReconciliationResult, error) {
	order, err := uc.resolveOrder(ctx, payment, trigger)
	if err != nil {
		return nil, err
	}

	slog.Info("gateway status acknowledged without mutation",
		"payment_id", payment.ID,
		"gateway_status", string(observed),
		"trigger", trigger,
	)
	uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeNoop).Inc()

	return &domain.ReconciliationResult{
		PaymentID:             payment.ID,
		OrderID:               order.ID,
		PreviousPaymentStatus: payment.Status,
		NewPaymentStatus:      payment.Status,
		PreviousOrderStatus:   order.Status,
		NewOrderStatus:        order.Status,
	}, nil
}

// reconcile is the single-writer critical section. It re-reads both
// entities under the per-payment lock, validates the transition, applies
// payment and order mutations as one unit, and fans out events for what
// actually changed.
func (uc *Usecase) reconcile(ctx context.Context, paymentID string, target domain.PaymentStatus, trigger, actor string) (*domain.ReconciliationResult, error) {
	uc.locks.Lock(paymentID)
	defer uc.locks.Unlock(paymentID)

	payment, err := uc.PaymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		if !errors.Is(err, domain.ErrPaymentNotFound) {
			uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeError).Inc()
		}
		return nil, err
	}

	order, err := uc.resolveOrder(ctx, payment, trigger)
	if err != nil {
		return nil, err
	}

	result := &domain.ReconciliationResult{
		PaymentID:             payment.ID,
		OrderID:               order.ID,
		PreviousPaymentStatus: payment.Status,
		NewPaymentStatus:      payment.Status,
		PreviousOrderStatus:   order.Status,
		NewOrderStatus:        order.Status,
	}

	// Idempotence: already at the target means a duplicate trigger.
	if payment.Status == target {
		slog.Info("reconciliation acknowledged, no change",
			"payment_id", payment.ID,
			"status", string(target),
			"trigger", trigger,
		)
		uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeNoop).Inc()
		return result, nil
	}

	autoAdvance, err := domain.ValidatePaymentTransition(payment.Status, target, payment.Method, order.Status)
	if err != nil {
		uc.Metrics.TransitionsRejectedTotal.WithLabelValues("payment", transitionRule(err)).Inc()
		uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeRejected).Inc()
		return nil, err
	}

	change := domain.ReconciliationChange{
		PaymentID:             payment.ID,
		ExpectedPaymentStatus: payment.Status,
		NewPaymentStatus:      target,
	}

	// The auto-advance is a dependent second transition and runs through
	// the order validator like any other; a rejection there only skips
	// the advance, the payment outcome still lands.
	orderAdvanced := false
	if autoAdvance {
		if _, err := domain.ValidateOrderTransition(order.Status, domain.StatusPreparation, target, payment.Method); err != nil {
			slog.Warn("auto-advance to preparation rejected",
				"order_id", order.ID,
				"error", err.Error(),
			)
		} else {
			change.OrderID = order.ID
			change.ExpectedOrderStatus = order.Status
			change.NewOrderStatus = domain.StatusPreparation
			orderAdvanced = true
		}
	}

	if err := uc.ReconcileRepo.ApplyReconciliation(ctx, change); err != nil {
		if errors.Is(err, domain.ErrStatusConflict) {
			return uc.collapseConflict(ctx, paymentID, target, trigger, result)
		}
		uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeError).Inc()
		return nil, err
	}

	result.NewPaymentStatus = target
	result.PaymentChanged = true
	if orderAdvanced {
		result.NewOrderStatus = domain.StatusPreparation
		result.OrderChanged = true
	}

	uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeChanged).Inc()
	uc.Metrics.PaymentStatusChangedTotal.WithLabelValues(
		string(result.PreviousPaymentStatus), string(target), string(payment.Method),
	).Inc()
	if orderAdvanced {
		uc.Metrics.OrderStatusChangedTotal.WithLabelValues(
			string(result.PreviousOrderStatus), string(domain.StatusPreparation),
		).Inc()
	}

	uc.emitReconciled(order, payment, result, trigger, actor)

	slog.Info("payment reconciled",
		"payment_id", payment.ID,
		"order_id", order.ID,
		"payment_status", string(target),
		"previous_payment_status", string(result.PreviousPaymentStatus),
		"order_advanced", orderAdvanced,
		"trigger", trigger,
	)

	return result, nil
}

// collapseConflict re-reads after a lost conditional update. When the
// winner already applied the same target, the loser degrades to the
// idempotent no-op path instead of failing.
func (uc *Usecase) collapseConflict(ctx context.Context, paymentID string, target domain.PaymentStatus, trigger string, result *domain.ReconciliationResult) (*domain.ReconciliationResult, error) {
	current, err := uc.PaymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeError).Inc()
		return nil, err
	}
	if current.Status == target {
		slog.Info("concurrent reconciliation already applied target, no change",
			"payment_id", paymentID,
			"status", string(target),
			"trigger", trigger,
		)
		uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeNoop).Inc()
		result.PreviousPaymentStatus = current.Status
		result.NewPaymentStatus = current.Status
		return result, nil
	}
	uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeError).Inc()
	return nil, domain.ErrStatusConflict
}

func (uc *Usecase) resolveOrder(ctx context.Context, payment *domain.Payment, trigger string) (*domain.Order, error) {
	order, err := uc.OrderRepo.GetOrderByPaymentID(ctx, payment.ID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			// Data-integrity fault: the payment row exists but nothing
			// owns it. Loud log, distinct error, never success.
			slog.Error("orphaned payment: no order references it",
				"payment_id", payment.ID,
				"pidx", payment.CorrelationID,
				"trigger", trigger,
			)
			uc.Metrics.OrphanedPaymentsTotal.Inc()
			uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeError).Inc()
			return nil, fmt.Errorf("payment %s: %w", payment.ID, domain.ErrOrphanedPayment)
		}
		uc.Metrics.ReconciliationsTotal.WithLabelValues(trigger, outcomeError).Inc()
		return nil, err
	}
	return order, nil
}

func transitionRule(err error) string {
	var te *domain.TransitionError
	if errors.As(err, &te) {
		return te.Rule
	}
	return "unknown"
}
