package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sajilokart/kicks-order-service/internal/delivery/http/dto/request"
	"github.com/sajilokart/kicks-order-service/internal/delivery/http/dto/response"
	"github.com/sajilokart/kicks-order-service/internal/delivery/http/middleware"
	"github.com/sajilokart/kicks-order-service/internal/domain"
)

type PaymentHandler struct {
	reconciler domain.Reconciler
}

func NewPaymentHandler(reconciler domain.Reconciler) *PaymentHandler {
	return &PaymentHandler{reconciler: reconciler}
}

// ChangePaymentStatus is the manual admin path into the coordinator.
func (h *PaymentHandler) ChangePaymentStatus(c *gin.Context) {
	var req request.ChangePaymentStatusRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid payload: " + err.Error()})
		return
	}

	result, err := h.reconciler.ChangePaymentStatus(
		c.Request.Context(),
		c.Param("id"),
		domain.PaymentStatus(req.Status),
		middleware.ActorID(c),
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReconciliationResponse("Payment status updated successfully", result))
}

// VerifyPayment asks the gateway for the authoritative status of a
// correlation id and reconciles against the answer.
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req request.VerifyPaymentRequest
	if err := bindStrict(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Please provide pidx"})
		return
	}

	result, err := h.reconciler.VerifyPayment(c.Request.Context(), req.Pidx)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReconciliationResponse("Payment verified successfully", result))
}

func toReconciliationResponse(message string, result *domain.ReconciliationResult) response.ReconciliationResponse {
	if !result.PaymentChanged {
		message = fmt.Sprintf("%s (no change, payment already %s)", message, result.NewPaymentStatus)
	}
	return response.ReconciliationResponse{
		Message:               message,
		PaymentID:             result.PaymentID,
		OrderID:               result.OrderID,
		PreviousPaymentStatus: string(result.PreviousPaymentStatus),
		NewPaymentStatus:      string(result.NewPaymentStatus),
		PreviousOrderStatus:   string(result.PreviousOrderStatus),
		NewOrderStatus:        string(result.NewOrderStatus),
		PaymentChanged:        result.PaymentChanged,
		OrderChanged:          result.OrderChanged,
	}
}
