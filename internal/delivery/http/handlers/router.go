package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sajilokart/kicks-order-service/internal/delivery/http/middleware"
)

// NewRouter wires the HTTP boundary. The webhook route is unauthenticated
// (the gateway calls it); everything else requires an actor identity from
// the upstream proxy.
func NewRouter(orderHandler *OrderHandler, paymentHandler *PaymentHandler, webhookHandler *WebhookHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")

	api.POST("/orders/khalti-webhook", webhookHandler.KhaltiWebhook)

	orders := api.Group("/orders", middleware.RequireActor())
	{
		orders.POST("", orderHandler.PlaceOrder)
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.PATCH("/cancel/:id", orderHandler.CancelOrder)
		orders.POST("/khalti/verify", paymentHandler.VerifyPayment)
	}

	admin := api.Group("/admin", middleware.RequireActor(), middleware.RequireAdmin())
	{
		admin.PATCH("/orders/:id/status", orderHandler.ChangeOrderStatus)
		admin.DELETE("/orders/:id", orderHandler.DeleteOrder)
		admin.PATCH("/payments/:id/status", paymentHandler.ChangePaymentStatus)
	}

	return router
}
