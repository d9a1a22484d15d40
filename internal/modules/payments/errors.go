package payments

import (
	"errors"
	"fmt"
)

var (
	ErrSignatureMismatch = errors.New("callback signature mismatch")
	ErrUnknownOrder      = errors.New("callback references unknown order")
	ErrOrderNotPayable   = errors.New("order not payable")
	ErrAmountMismatch    = errors.New("amount does not match order total")
	ErrUnknownGateway    = errors.New("unknown payment gateway")
)

// GatewayError carries the provider-reported or transport failure message.
// Network errors, non-2xx responses and business failures all normalize to
// this; none are retried automatically.
type GatewayError struct {
	Provider string
	Message  string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}
