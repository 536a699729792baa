package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sajilokart/kicks-order-service/internal/delivery/http/dto/request"
	"github.com/sajilokart/kicks-order-service/internal/domain"
)

// HeaderWebhookSignature carries the hex HMAC-SHA256 of the raw body,
// keyed with the shared webhook secret.
const HeaderWebhookSignature = "X-Webhook-Signature"

// WebhookHandler receives asynchronous gateway callbacks. The gateway
// retries on non-2xx, so anything that is not our fault must still
// answer deterministically.
type WebhookHandler struct {
	reconciler domain.Reconciler
	secret     string
}

func NewWebhookHandler(reconciler domain.Reconciler, secret string) *WebhookHandler {
	return &WebhookHandler{reconciler: reconciler, secret: secret}
}

func (h *WebhookHandler) KhaltiWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unreadable body"})
		return
	}

	var req request.KhaltiWebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid webhook payload"})
		return
	}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Missing required parameters: pidx, status"})
		return
	}

	if h.secret != "" && !h.verifySignature(body, c.GetHeader(HeaderWebhookSignature)) {
		slog.Warn("webhook signature rejected", "pidx", req.Pidx)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid signature"})
		return
	}

	result, err := h.reconciler.ReconcileByCorrelationID(
		c.Request.Context(),
		req.Pidx,
		domain.GatewayStatus(req.Status),
		domain.TriggerWebhook,
	)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toReconciliationResponse("Webhook processed", result))
}

// verifySignature checks the HMAC-SHA256 of the raw body against the
// signature header.
func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(bytes.TrimSpace(body))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
