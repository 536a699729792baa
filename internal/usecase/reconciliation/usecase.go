package reconciliation

import (
	"github.com/sajilokart/kicks-order-service/internal/domain"
	publisher "github.com/sajilokart/kicks-order-service/internal/infrastructure/kafka"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/metrics"
)

// Usecase is the reconciliation coordinator: the only code path allowed
// to mutate a payment's status or to propagate a payment outcome to its
// order. The webhook, the synchronous verify call and the admin
// payment-status change all enter here.
type Usecase struct {
	PaymentRepo   domain.PaymentRepository
	OrderRepo     domain.OrderRepository
	ReconcileRepo domain.ReconciliationRepository
	Gateway       domain.PaymentGateway
	Notifier      domain.EventNotifier
	Publisher     *publisher.DefaultKafkaPublisher
	Topic         string
	Metrics       *metrics.ReconciliationMetrics

	locks paymentLocks
}

func NewUsecase(
	paymentRepo domain.PaymentRepository,
	orderRepo domain.OrderRepository,
	reconcileRepo domain.ReconciliationRepository,
	gateway domain.PaymentGateway,
	notifier domain.EventNotifier,
	kafkaPublisher *publisher.DefaultKafkaPublisher,
	topic string,
	reconciliationMetrics *metrics.ReconciliationMetrics,
) *Usecase {
	return &Usecase{
		PaymentRepo:   paymentRepo,
		OrderRepo:     orderRepo,
		ReconcileRepo: reconcileRepo,
		Gateway:       gateway,
		Notifier:      notifier,
		Publisher:     kafkaPublisher,
		Topic:         topic,
		Metrics:       reconciliationMetrics,
	}
}
