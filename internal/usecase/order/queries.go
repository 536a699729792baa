package order

import (
	"context"

	"github.com/sajilokart/kicks-order-service/internal/domain"
	orderdto "github.com/sajilokart/kicks-order-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return uc.OrderRepo.GetOrderByID(ctx, orderID)
}

func (uc *DefaultOrderUsecase) GetOrders(ctx context.Context, input *orderdto.ListOrdersInput) (*orderdto.ListOrdersOutput, error) {
	filters := domain.OrderFilters{
		UserID:   input.UserID,
		Statuses: input.Statuses,
	}
	orders, total, err := uc.OrderRepo.GetOrders(ctx, filters, input.Page, input.Limit)
	if err != nil {
		return nil, err
	}
	return &orderdto.ListOrdersOutput{Orders: orders, Total: total}, nil
}
