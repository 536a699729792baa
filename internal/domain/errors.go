package domain

import (
	"errors"
	"fmt"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrOrphanedPayment means the payment row exists but no order
	// references it. This is a data-integrity fault and must never be
	// reported as success.
	ErrOrphanedPayment = errors.New("payment has no associated order")

	// ErrStatusConflict is returned when a conditional update matched
	// zero rows: another reconciliation won the race. Callers re-read
	// and fall into the idempotent no-op path.
	ErrStatusConflict = errors.New("status changed concurrently")

	// ErrGatewayInconclusive covers gateway timeouts and unrecognized
	// lookup statuses. No mutation is applied; the caller may retry.
	ErrGatewayInconclusive = errors.New("gateway status inconclusive")

	ErrCancelNotAllowed = errors.New("order can no longer be cancelled by the customer")

	ErrDeleteDelivered = errors.New("delivered orders cannot be deleted")
)

// TransitionError is a validator rejection. It always carries the
// current state, the attempted target and the legal next states so the
// client can render a precise message.
type TransitionError struct {
	Rule      string
	From      string
	To        string
	ValidNext []string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s: %s", e.From, e.To, e.Rule)
}

func IsTransitionError(err error) bool {
	var te *TransitionError
	return errors.As(err, &te)
}
