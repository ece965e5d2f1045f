package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// PaymentStatus tracks the payment side of an order, independently of the
// fulfillment status. It is set by the payment-webhook collaborator or by cash
// reconciliation, never by the status state machine directly.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means an online payment has not yet been reported.
	PaymentPending

	// PaymentPaid means the gateway reported a successful capture.
	PaymentPaid

	// PaymentFailed means the gateway reported a failed capture.
	PaymentFailed

	// PaymentRefunded means the order total was credited back to the customer's wallet.
	PaymentRefunded

	// PaymentCashOnDelivery means the total is collected in cash by the delivery
	// agent; no gateway result is expected.
	PaymentCashOnDelivery
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:        "Unknown",
		PaymentPending:        "Pending",
		PaymentPaid:           "Paid",
		PaymentFailed:         "Failed",
		PaymentRefunded:       "Refunded",
		PaymentCashOnDelivery: "CashOnDelivery",
	}
}

// Validate checks if the PaymentStatus value is valid.
func (p PaymentStatus) Validate() error {
	if p <= PaymentUnknown || p > PaymentCashOnDelivery {
		return errs.NewValueIsInvalidErrorWithCause("payment status is invalid",
			fmt.Errorf("%d is not a valid payment status", p))
	}
	return nil
}

// String returns the human-readable name of the payment status.
func (p PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[p]; ok {
		return str
	}
	return "Unknown"
}

// PaymentMethod identifies how an order is paid.
type PaymentMethod int

const (
	// MethodUnknown represents an invalid or undefined payment method.
	MethodUnknown PaymentMethod = iota

	// MethodOnline means the total is captured by the payment gateway;
	// the engine only consumes the capture result.
	MethodOnline

	// MethodCashOnDelivery means the total is collected by the delivery agent
	// and reconciled through cash collection records.
	MethodCashOnDelivery
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		MethodUnknown:        "Unknown",
		MethodOnline:         "Online",
		MethodCashOnDelivery: "CashOnDelivery",
	}
}

// PaymentMethodFromString parses a payment method name from the API surface.
func PaymentMethodFromString(s string) (PaymentMethod, error) {
	for method, str := range getPaymentMethodStrings() {
		if method != MethodUnknown && str == s {
			return method, nil
		}
	}
	return MethodUnknown, errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
		fmt.Errorf("%q is not a valid payment method", s))
}

// Validate checks if the PaymentMethod value is valid.
func (m PaymentMethod) Validate() error {
	if m != MethodOnline && m != MethodCashOnDelivery {
		return errs.NewValueIsInvalidErrorWithCause("payment method is invalid",
			fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

// String returns the human-readable name of the payment method.
func (m PaymentMethod) String() string {
	if str, ok := getPaymentMethodStrings()[m]; ok {
		return str
	}
	return "Unknown"
}
