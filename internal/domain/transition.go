package domain

// orderTransitions is the one source of truth for the order lifecycle.
// Every entry point funnels status changes through ValidateOrderTransition,
// never through ad-hoc checks in handlers.
var orderTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:     {StatusPreparation, StatusCancelled},
	StatusPreparation: {StatusOnTheWay, StatusCancelled},
	StatusOnTheWay:    {StatusDelivered},
	StatusDelivered:   {},
	StatusCancelled:   {},
}

func ValidNextOrderStatuses(current OrderStatus) []OrderStatus {
	next := make([]OrderStatus, len(orderTransitions[current]))
	copy(next, orderTransitions[current])
	return next
}

func validNextStrings(current OrderStatus) []string {
	next := orderTransitions[current]
	out := make([]string, len(next))
	for i, s := range next {
		out[i] = string(s)
	}
	return out
}

// Validator rule identifiers, used in rejection payloads and metrics labels.
const (
	RuleUnknownStatus         = "unknown_status"
	RuleInvalidEdge           = "invalid_transition"
	RulePaymentForDelivery    = "payment_required_for_delivery"
	RulePaymentForPreparation = "payment_required_for_non_cod"
	RuleCancelledFrozen       = "cancelled_order_payment_frozen"
	RulePaidInTransit         = "paid_order_in_transit"
	RuleKhaltiTerminalPaid    = "khalti_paid_terminal"
	RuleCODOrderPending       = "cod_requires_order_progress"
)

// ValidateOrderTransition decides whether an order may move from its
// current status to the requested one, given the state of its payment.
// Rules run in order, first failure wins. The returned urgent flag is
// set when the Pending->Delivered expedite bypass was taken; callers
// must log that transition attributed to the acting admin.
func ValidateOrderTransition(
	current, requested OrderStatus,
	paymentStatus PaymentStatus,
	method PaymentMethod,
) (urgent bool, err error) {
	if !requested.Valid() {
		return false, &TransitionError{
			Rule:      RuleUnknownStatus,
			From:      string(current),
			To:        string(requested),
			ValidNext: validNextStrings(current),
		}
	}

	edgeOK := false
	for _, next := range orderTransitions[current] {
		if next == requested {
			edgeOK = true
			break
		}
	}
	// Expedite bypass: a fully paid order may jump Pending->Delivered.
	if !edgeOK && current == StatusPending && requested == StatusDelivered && paymentStatus == PaymentPaid {
		edgeOK = true
		urgent = true
	}
	if !edgeOK {
		return false, &TransitionError{
			Rule:      RuleInvalidEdge,
			From:      string(current),
			To:        string(requested),
			ValidNext: validNextStrings(current),
		}
	}

	if requested == StatusDelivered && paymentStatus != PaymentPaid {
		return false, &TransitionError{
			Rule:      RulePaymentForDelivery,
			From:      string(current),
			To:        string(requested),
			ValidNext: validNextStrings(current),
		}
	}

	if requested == StatusPreparation && paymentStatus != PaymentPaid && method != MethodCOD {
		return false, &TransitionError{
			Rule:      RulePaymentForPreparation,
			From:      string(current),
			To:        string(requested),
			ValidNext: validNextStrings(current),
		}
	}

	return urgent, nil
}

// ValidatePaymentTransition decides whether a payment may move from its
// current status to the requested one. The autoAdvance flag signals the
// caller to additionally run the order validator for Pending->Preparation
// as a dependent second transition.
func ValidatePaymentTransition(
	current, requested PaymentStatus,
	method PaymentMethod,
	orderStatus OrderStatus,
) (autoAdvance bool, err error) {
	if !requested.Valid() {
		return false, &TransitionError{
			Rule: RuleUnknownStatus,
			From: string(current),
			To:   string(requested),
		}
	}

	if orderStatus == StatusCancelled {
		return false, &TransitionError{
			Rule: RuleCancelledFrozen,
			From: string(current),
			To:   string(requested),
		}
	}

	if current == PaymentPaid && requested == PaymentUnpaid {
		if orderStatus == StatusOnTheWay || orderStatus == StatusDelivered {
			return false, &TransitionError{
				Rule: RulePaidInTransit,
				From: string(current),
				To:   string(requested),
			}
		}
		if method == MethodKhalti {
			return false, &TransitionError{
				Rule: RuleKhaltiTerminalPaid,
				From: string(current),
				To:   string(requested),
			}
		}
	}

	if method == MethodCOD && requested == PaymentPaid && orderStatus == StatusPending {
		return false, &TransitionError{
			Rule: RuleCODOrderPending,
			From: string(current),
			To:   string(requested),
		}
	}

	return requested == PaymentPaid && orderStatus == StatusPending, nil
}
