package domain

import "context"

// GatewayStatus values are the wire statuses reported by the payment
// gateway, not our payment lifecycle.
type GatewayStatus string

const (
	GatewayCompleted GatewayStatus = "Completed"
	GatewayFailed    GatewayStatus = "Failed"
	GatewayCancelled GatewayStatus = "Cancelled"
	GatewayPending   GatewayStatus = "Pending"
)

type GatewaySession struct {
	CorrelationID string
	PaymentURL    string
}

type GatewayLookup struct {
	Status GatewayStatus
	Amount int64
}

// PaymentGateway is the opaque external verifier. Both calls are plain
// HTTP with a bounded timeout; no retries live in this core. A timeout
// surfaces as ErrGatewayInconclusive.
type PaymentGateway interface {
	Initiate(ctx context.Context, amountPaisa int64, orderRef, orderName string) (*GatewaySession, error)
	Lookup(ctx context.Context, correlationID string) (*GatewayLookup, error)
}
