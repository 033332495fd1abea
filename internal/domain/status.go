package domain

type OrderStatus string

const (
	StatusExpired         OrderStatus = "EXPIRED"
	StatusPayoutCancelled OrderStatus = "PAYOUT_CANCELLED"
	StatusPaymentRejected OrderStatus = "PAYMENT_REJECTED"
	StatusOrderRejected   OrderStatus = "ORDER_REJECTED"
	StatusCompleted       OrderStatus = "COMPLETED"
	StatusPayoutReceived  OrderStatus = "PAYOUT_RECEIVED"
	StatusPayoutCompleted OrderStatus = "PAYOUT_COMPLETED"
	StatusPayoutRejected  OrderStatus = "PAYOUT_REJECTED"
	StatusPayoutDelivered OrderStatus = "PAYOUT_DELIVERED"
	StatusPayoutOnHold    OrderStatus = "PAYOUT_ONHOLD"
	StatusOrderVerified   OrderStatus = "ORDER_VERIFIED"
	StatusPaymentVerified OrderStatus = "PAYMENT_VERIFIED"
	StatusFilled          OrderStatus = "FILLED"
	StatusIncomplete      OrderStatus = "INCOMPLETE"
)

// DeriveStatus evaluates the order timestamps in a fixed priority order; the
// first match wins. The timestamps are not mutually exclusive in storage.
func DeriveStatus(o *Order) OrderStatus {
	switch {
	case o.ExpiredAt != nil:
		return StatusExpired
	case o.RejectedAt != nil:
		switch {
		case o.PayoutStatus == PayoutCancelled:
			return StatusPayoutCancelled
		case o.IsPaymentRejected():
			return StatusPaymentRejected
		default:
			return StatusOrderRejected
		}
	case o.CompletedAt != nil:
		return StatusCompleted
	}

	switch o.PayoutStatus {
	case PayoutReceived:
		return StatusPayoutReceived
	case PayoutCompleted:
		return StatusPayoutCompleted
	case PayoutCancelled:
		return StatusPayoutCancelled
	case PayoutRejected:
		return StatusPayoutRejected
	case PayoutDelivered:
		return StatusPayoutDelivered
	case PayoutOnHold:
		return StatusPayoutOnHold
	}

	switch {
	case o.VerifiedAt != nil:
		return StatusOrderVerified
	case o.IsPaymentVerified():
		return StatusPaymentVerified
	case o.FilledAt != nil:
		return StatusFilled
	}
	return StatusIncomplete
}

func (o *Order) IsPaymentVerified() bool {
	return o.Payment != nil && o.Payment.VerifiedAt != nil
}

func (o *Order) IsPaymentRejected() bool {
	return o.Payment != nil && o.Payment.RejectedAt != nil
}

// CanValidatePayment guards payment verification and rejection.
func (o *Order) CanValidatePayment() bool {
	return o.Payment != nil &&
		o.RejectedAt == nil &&
		o.ExpiredAt == nil &&
		o.Payment.RejectedAt == nil &&
		o.Payment.VerifiedAt == nil
}

// CanValidateOrder guards order verification.
func (o *Order) CanValidateOrder() bool {
	return o.RejectedAt == nil &&
		o.ExpiredAt == nil &&
		o.CompletedAt == nil &&
		o.IsPaymentVerified()
}

// CanPayoutOrder gates the external payout request.
func (o *Order) CanPayoutOrder() bool {
	return o.RejectedAt == nil &&
		o.ExpiredAt == nil &&
		o.CompletedAt == nil &&
		o.IsPaymentVerified() &&
		o.VerifiedAt != nil
}

// HasOpenPayout reports a payout handed to the provider, or being handed to
// it, that did not end cancelled or rejected.
func (o *Order) HasOpenPayout() bool {
	return o.PaidOutAt != nil &&
		o.PayoutStatus != PayoutCancelled &&
		o.PayoutStatus != PayoutRejected
}
