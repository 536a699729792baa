package order

import (
	"context"

	"github.com/sajilokart/kicks-order-service/internal/domain"
	publisher "github.com/sajilokart/kicks-order-service/internal/infrastructure/kafka"
	"github.com/sajilokart/kicks-order-service/internal/infrastructure/metrics"
	orderdto "github.com/sajilokart/kicks-order-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	PlaceOrder(ctx context.Context, input *orderdto.PlaceOrderInput) (*orderdto.OrderOutput, error)
	CancelOrder(ctx context.Context, userID, orderID string) error
	ChangeOrderStatus(ctx context.Context, input *orderdto.ChangeOrderStatusInput) (*orderdto.OrderStatusChange, error)
	DeleteOrder(ctx context.Context, orderID, actor string) error

	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	GetOrders(ctx context.Context, input *orderdto.ListOrdersInput) (*orderdto.ListOrdersOutput, error)
}

type DefaultOrderUsecase struct {
	OrderRepo   domain.OrderRepository
	PaymentRepo domain.PaymentRepository
	Gateway     domain.PaymentGateway
	Reconciler  domain.Reconciler
	Notifier    domain.EventNotifier
	Publisher   *publisher.DefaultKafkaPublisher
	Topic       string
	Metrics     *metrics.ReconciliationMetrics
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	paymentRepo domain.PaymentRepository,
	gateway domain.PaymentGateway,
	reconciler domain.Reconciler,
	notifier domain.EventNotifier,
	kafkaPublisher *publisher.DefaultKafkaPublisher,
	topic string,
	reconciliationMetrics *metrics.ReconciliationMetrics,
) *DefaultOrderUsecase {
	return &DefaultOrderUsecase{
		OrderRepo:   orderRepo,
		PaymentRepo: paymentRepo,
		Gateway:     gateway,
		Reconciler:  reconciler,
		Notifier:    notifier,
		Publisher:   kafkaPublisher,
		Topic:       topic,
		Metrics:     reconciliationMetrics,
	}
}
