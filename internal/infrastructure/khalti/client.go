package khalti

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sajilokart/kicks-order-service/internal/config"
	"github.com/sajilokart/kicks-order-service/internal/domain"
)

// Client talks to the Khalti e-payment API. Both calls are single plain
// HTTP requests with a bounded timeout; retry policy belongs to callers.
type Client struct {
	baseURL   string
	secretKey string
	returnURL string
	http      *http.Client
}

func NewClient(cfg config.KhaltiGateway) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		returnURL: cfg.ReturnURL,
		http:      &http.Client{Timeout: timeout},
	}
}

type initiateRequest struct {
	ReturnURL         string `json:"return_url"`
	WebsiteURL        string `json:"website_url"`
	Amount            int64  `json:"amount"`
	PurchaseOrderID   string `json:"purchase_order_id"`
	PurchaseOrderName string `json:"purchase_order_name"`
}

type initiateResponse struct {
	Pidx       string `json:"pidx"`
	PaymentURL string `json:"payment_url"`
}

type lookupRequest struct {
	Pidx string `json:"pidx"`
}

type lookupResponse struct {
	Pidx   string `json:"pidx"`
	Status string `json:"status"`
	Amount int64  `json:"total_amount"`
}

func (c *Client) Initiate(ctx context.Context, amountPaisa int64, orderRef, orderName string) (*domain.GatewaySession, error) {
	reqBody := initiateRequest{
		ReturnURL:         c.returnURL,
		WebsiteURL:        c.returnURL,
		Amount:            amountPaisa,
		PurchaseOrderID:   orderRef,
		PurchaseOrderName: orderName,
	}

	var resp initiateResponse
	if err := c.post(ctx, "/epayment/initiate/", reqBody, &resp); err != nil {
		return nil, err
	}
	if resp.Pidx == "" {
		return nil, fmt.Errorf("khalti initiate: empty pidx in response")
	}
	return &domain.GatewaySession{
		CorrelationID: resp.Pidx,
		PaymentURL:    resp.PaymentURL,
	}, nil
}

func (c *Client) Lookup(ctx context.Context, correlationID string) (*domain.GatewayLookup, error) {
	var resp lookupResponse
	if err := c.post(ctx, "/epayment/lookup/", lookupRequest{Pidx: correlationID}, &resp); err != nil {
		return nil, err
	}
	return &domain.GatewayLookup{
		Status: domain.GatewayStatus(resp.Status),
		Amount: resp.Amount,
	}, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("khalti request marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("khalti request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+c.secretKey)

	resp, err := c.http.Do(req)
	if err != nil {
		// A timed-out lookup says nothing about the payment outcome.
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return fmt.Errorf("khalti %s timed out: %w", path, domain.ErrGatewayInconclusive)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("khalti %s timed out: %w", path, domain.ErrGatewayInconclusive)
		}
		return fmt.Errorf("khalti %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("khalti %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("khalti %s decode: %w", path, err)
	}
	return nil
}
