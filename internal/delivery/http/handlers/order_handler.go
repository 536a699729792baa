package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sajilokart/kicks-order-service/internal/delivery/http/dto/request"
	"github.com/sajilokart/kicks-order-service/internal/delivery/http/dto/response"
	"github.com/sajilokart/kicks-order-service/internal/delivery/http/middleware"
	"github.com/sajilokart/kicks-order-service/internal/domain"
	orderusecase "github.com/sajilokart/kicks-order-service/internal/usecase/order"
	orderdto "github.com/sajilokart/kicks-order-service/internal/usecase/dto/order"
)

type OrderHandler struct {
	uc orderusecase.OrderUsecase
}

func NewOrderHandler(uc orderusecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req request.PlaceOrderRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid order payload: " + err.Error()})
		return
	}

	output, err := h.uc.PlaceOrder(c.Request.Context(), &orderdto.PlaceOrderInput{
		UserID: middleware.ActorID(c),
		Customer: domain.CustomerInfo{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			Email:       req.Email,
			PhoneNumber: req.PhoneNumber,
			City:        req.City,
			Street:      req.Street,
			AddressLine: req.AddressLine,
			State:       req.State,
			Zipcode:     req.Zipcode,
		},
		TotalPrice:    req.TotalPrice,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.PlaceOrderResponse{
		Message:    "Order created successfully",
		Order:      toOrderResponse(&output.Order),
		PaymentURL: output.PaymentURL,
	})
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.uc.GetOrderByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Order fetched successfully",
		"order":   toOrderResponse(order),
	})
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	input := &orderdto.ListOrdersInput{
		UserID: c.Query("user_id"),
		Page:   intQuery(c, "page", 1),
		Limit:  intQuery(c, "limit", 50),
	}
	if status := c.Query("status"); status != "" {
		input.Statuses = []domain.OrderStatus{domain.OrderStatus(status)}
	}

	output, err := h.uc.GetOrders(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	orders := make([]response.OrderResponse, len(output.Orders))
	for i, order := range output.Orders {
		orders[i] = toOrderResponse(order)
	}
	c.JSON(http.StatusOK, response.ListOrdersResponse{
		Message: "Orders fetched successfully",
		Orders:  orders,
		Total:   output.Total,
	})
}

func (h *OrderHandler) CancelOrder(c *gin.Context) {
	if err := h.uc.CancelOrder(c.Request.Context(), middleware.ActorID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully"})
}

func (h *OrderHandler) ChangeOrderStatus(c *gin.Context) {
	var req request.ChangeOrderStatusRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload: " + err.Error()})
		return
	}

	change, err := h.uc.ChangeOrderStatus(c.Request.Context(), &orderdto.ChangeOrderStatusInput{
		OrderID:         c.Param("id"),
		RequestedStatus: domain.OrderStatus(req.OrderStatus),
		Actor:           middleware.ActorID(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.OrderStatusChangeResponse{
		Message:        "Order status updated successfully",
		OrderID:        change.OrderID,
		PreviousStatus: string(change.PreviousStatus),
		NewStatus:      string(change.NewStatus),
		PaymentStatus:  string(change.PaymentStatus),
		Urgent:         change.Urgent,
	})
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.uc.DeleteOrder(c.Request.Context(), c.Param("id"), middleware.ActorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

func toOrderResponse(order *domain.Order) response.OrderResponse {
	resp := response.OrderResponse{
		OrderID:    order.ID,
		Status:     string(order.Status),
		TotalPrice: order.TotalPrice.StringFixed(2),
		PaymentID:  order.PaymentID,
		CreatedAt:  order.CreatedAt,
	}
	if order.Payment != nil {
		resp.PaymentMethod = string(order.Payment.Method)
		resp.PaymentStatus = string(order.Payment.Status)
	}
	return resp
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
