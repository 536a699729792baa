package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jaevor/go-nanoid"
	"github.com/sajilokart/kicks-order-service/internal/domain"
	orderdto "github.com/sajilokart/kicks-order-service/internal/usecase/dto/order"
	"github.com/shopspring/decimal"
)

// PlaceOrder creates the payment shell first, then the order that owns
// it. Online methods additionally open a gateway session, persist the
// returned pidx and run one immediate verification pass so a payment
// settled during checkout is reconciled before the response leaves.
func (uc *DefaultOrderUsecase) PlaceOrder(ctx context.Context, input *orderdto.PlaceOrderInput) (*orderdto.OrderOutput, error) {
	if !input.PaymentMethod.Valid() {
		return nil, fmt.Errorf("unknown payment method %q", input.PaymentMethod)
	}
	if input.TotalPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("total price must be positive")
	}

	payment := &domain.Payment{
		Method: input.PaymentMethod,
		Status: domain.PaymentUnpaid,
	}
	if err := uc.PaymentRepo.CreatePayment(ctx, payment); err != nil {
		return nil, err
	}

	order := &domain.Order{
		UserID:       input.UserID,
		Status:       domain.StatusPending,
		TotalPrice:   input.TotalPrice,
		PaymentID:    payment.ID,
		CustomerInfo: input.Customer,
	}
	if err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
		// Remove the shell so a failed place-order never leaves an
		// orphaned payment behind.
		if delErr := uc.PaymentRepo.DeletePayment(ctx, payment.ID); delErr != nil {
			slog.Error("failed to clean up payment after order create failure",
				"payment_id", payment.ID, "error", delErr.Error())
		}
		return nil, err
	}
	order.Payment = payment

	uc.Metrics.OrdersCreatedTotal.WithLabelValues(string(input.PaymentMethod)).Inc()

	output := &orderdto.OrderOutput{Order: *order}
	if input.PaymentMethod != domain.MethodKhalti {
		return output, nil
	}

	session, err := uc.initiateGatewaySession(ctx, order, payment)
	if err != nil {
		return nil, err
	}
	output.PaymentURL = session.PaymentURL
	payment.CorrelationID = session.CorrelationID

	// Verify immediately: the gateway may have settled during checkout.
	// An inconclusive answer leaves the order Pending for the webhook or
	// a later verify call to finish.
	if result, err := uc.Reconciler.VerifyPayment(ctx, session.CorrelationID); err != nil {
		if errors.Is(err, domain.ErrGatewayInconclusive) {
			slog.Info("immediate verification inconclusive", "order_id", order.ID, "pidx", session.CorrelationID)
		} else {
			slog.Error("immediate verification failed", "order_id", order.ID, "error", err.Error())
		}
	} else if result.PaymentChanged {
		order.Status = result.NewOrderStatus
		payment.Status = result.NewPaymentStatus
		output.Order = *order
	}

	return output, nil
}

func (uc *DefaultOrderUsecase) initiateGatewaySession(ctx context.Context, order *domain.Order, payment *domain.Payment) (*domain.GatewaySession, error) {
	idGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, fmt.Errorf("init id generator: %w", err)
	}
	orderName := "order_" + idGenerator()

	amountPaisa := order.TotalPrice.Mul(decimal.NewFromInt(100)).IntPart()
	session, err := uc.Gateway.Initiate(ctx, amountPaisa, order.ID, orderName)
	if err != nil {
		return nil, fmt.Errorf("initiate gateway session for order %s: %w", order.ID, err)
	}

	if err := uc.PaymentRepo.SetCorrelationID(ctx, payment.ID, session.CorrelationID); err != nil {
		return nil, err
	}
	return session, nil
}
