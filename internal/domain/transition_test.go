package domain

import (
	"errors"
	"testing"
)

func TestOrderTransitionDAG(t *testing.T) {
	all := []OrderStatus{StatusPending, StatusPreparation, StatusOnTheWay, StatusDelivered, StatusCancelled}

	allowed := map[[2]OrderStatus]bool{
		{StatusPending, StatusPreparation}:     true,
		{StatusPending, StatusCancelled}:       true,
		{StatusPreparation, StatusOnTheWay}:    true,
		{StatusPreparation, StatusCancelled}:   true,
		{StatusOnTheWay, StatusDelivered}:      true,
		// expedite bypass, only legal because payment is PAID below
		{StatusPending, StatusDelivered}: true,
	}

	// Payment is PAID so the payment-dependent rules never mask the DAG
	// check itself.
	for _, from := range all {
		for _, to := range all {
			if from == to {
				continue
			}
			_, err := ValidateOrderTransition(from, to, PaymentPaid, MethodKhalti)
			if allowed[[2]OrderStatus{from, to}] {
				if err != nil {
					t.Errorf("%s -> %s: expected ok, got %v", from, to, err)
				}
			} else if err == nil {
				t.Errorf("%s -> %s: expected rejection", from, to)
			}
		}
	}
}

func TestUrgentDeliveryBypass(t *testing.T) {
	urgent, err := ValidateOrderTransition(StatusPending, StatusDelivered, PaymentPaid, MethodKhalti)
	if err != nil {
		t.Fatalf("paid pending -> delivered should pass: %v", err)
	}
	if !urgent {
		t.Fatal("expected the urgent flag on the Pending -> Delivered bypass")
	}

	// Unpaid orders never take the bypass.
	_, err = ValidateOrderTransition(StatusPending, StatusDelivered, PaymentUnpaid, MethodKhalti)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("unpaid pending -> delivered: expected TransitionError, got %v", err)
	}

	// Regular edges do not set the flag.
	urgent, err = ValidateOrderTransition(StatusOnTheWay, StatusDelivered, PaymentPaid, MethodCOD)
	if err != nil || urgent {
		t.Fatalf("on_the_way -> delivered: err=%v urgent=%v", err, urgent)
	}
}

func TestDeliveredRequiresPaid(t *testing.T) {
	_, err := ValidateOrderTransition(StatusOnTheWay, StatusDelivered, PaymentUnpaid, MethodCOD)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if te.Rule != RulePaymentForDelivery {
		t.Errorf("expected rule %s, got %s", RulePaymentForDelivery, te.Rule)
	}
}

func TestPreparationPaymentRules(t *testing.T) {
	// COD may enter preparation while unpaid.
	if _, err := ValidateOrderTransition(StatusPending, StatusPreparation, PaymentUnpaid, MethodCOD); err != nil {
		t.Errorf("COD pending -> preparation while unpaid should pass: %v", err)
	}

	// Non-COD must be paid first.
	_, err := ValidateOrderTransition(StatusPending, StatusPreparation, PaymentUnpaid, MethodKhalti)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("khalti unpaid pending -> preparation: expected TransitionError, got %v", err)
	}
	if te.Rule != RulePaymentForPreparation {
		t.Errorf("expected rule %s, got %s", RulePaymentForPreparation, te.Rule)
	}
}

func TestOrderTransitionUnknownStatus(t *testing.T) {
	_, err := ValidateOrderTransition(StatusPending, OrderStatus("SHIPPED"), PaymentPaid, MethodCOD)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if te.Rule != RuleUnknownStatus {
		t.Errorf("expected rule %s, got %s", RuleUnknownStatus, te.Rule)
	}
}

func TestRejectionCarriesValidNext(t *testing.T) {
	_, err := ValidateOrderTransition(StatusPending, StatusOnTheWay, PaymentPaid, MethodCOD)
	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransitionError, got %v", err)
	}
	if te.From != string(StatusPending) || te.To != string(StatusOnTheWay) {
		t.Errorf("rejection should carry current and requested state, got %+v", te)
	}
	if len(te.ValidNext) != 2 {
		t.Errorf("pending should offer 2 valid next states, got %v", te.ValidNext)
	}
}

func TestPaymentTransitionRules(t *testing.T) {
	tests := []struct {
		name        string
		current     PaymentStatus
		requested   PaymentStatus
		method      PaymentMethod
		orderStatus OrderStatus
		wantRule    string
		wantAdvance bool
	}{
		{
			name:    "cancelled order freezes payment",
			current: PaymentUnpaid, requested: PaymentPaid,
			method: MethodCOD, orderStatus: StatusCancelled,
			wantRule: RuleCancelledFrozen,
		},
		{
			name:    "paid to unpaid rejected while on the way",
			current: PaymentPaid, requested: PaymentUnpaid,
			method: MethodKhalti, orderStatus: StatusOnTheWay,
			wantRule: RulePaidInTransit,
		},
		{
			name:    "paid to unpaid rejected when delivered",
			current: PaymentPaid, requested: PaymentUnpaid,
			method: MethodCOD, orderStatus: StatusDelivered,
			wantRule: RulePaidInTransit,
		},
		{
			name:    "khalti paid is terminal",
			current: PaymentPaid, requested: PaymentUnpaid,
			method: MethodKhalti, orderStatus: StatusPreparation,
			wantRule: RuleKhaltiTerminalPaid,
		},
		{
			name:    "cod cannot be paid while order pending",
			current: PaymentUnpaid, requested: PaymentPaid,
			method: MethodCOD, orderStatus: StatusPending,
			wantRule: RuleCODOrderPending,
		},
		{
			name:    "cod paid after preparation ok",
			current: PaymentUnpaid, requested: PaymentPaid,
			method: MethodCOD, orderStatus: StatusPreparation,
		},
		{
			name:    "khalti paid on pending order signals auto-advance",
			current: PaymentUnpaid, requested: PaymentPaid,
			method: MethodKhalti, orderStatus: StatusPending,
			wantAdvance: true,
		},
		{
			name:    "cod paid to unpaid before shipping ok",
			current: PaymentPaid, requested: PaymentUnpaid,
			method: MethodCOD, orderStatus: StatusPreparation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advance, err := ValidatePaymentTransition(tt.current, tt.requested, tt.method, tt.orderStatus)
			if tt.wantRule != "" {
				var te *TransitionError
				if !errors.As(err, &te) {
					t.Fatalf("expected TransitionError, got %v", err)
				}
				if te.Rule != tt.wantRule {
					t.Errorf("expected rule %s, got %s", tt.wantRule, te.Rule)
				}
				return
			}
			if err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if advance != tt.wantAdvance {
				t.Errorf("auto-advance = %v, want %v", advance, tt.wantAdvance)
			}
		})
	}
}
