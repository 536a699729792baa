package domain

import "time"

type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "UNPAID"
	PaymentPaid   PaymentStatus = "PAID"
)

func (s PaymentStatus) Valid() bool {
	return s == PaymentUnpaid || s == PaymentPaid
}

type PaymentMethod string

const (
	MethodCOD    PaymentMethod = "COD"
	MethodEsewa  PaymentMethod = "ESEWA"
	MethodKhalti PaymentMethod = "KHALTI"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case MethodCOD, MethodEsewa, MethodKhalti:
		return true
	}
	return false
}

// Payment is the settlement record owned by exactly one order.
// CorrelationID (pidx) is issued by the gateway when a session is
// initiated and links asynchronous callbacks back to this payment.
type Payment struct {
	ID            string
	Method        PaymentMethod
	Status        PaymentStatus
	CorrelationID string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
