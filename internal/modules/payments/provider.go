package payments

import (
	"context"
	"net/http"
)

// Callback statuses normalized across gateways.
const (
	CallbackSuccess = "success"
	CallbackFailed  = "failed"
	CallbackExpired = "expired"
)

type CreateTransactionInput struct {
	OrderID        string // merchant order id (our order_number); unique per attempt
	Amount         int    // whole rupiah, must be > 0
	CustomerName   string
	CustomerEmail  string
	ProductDetails string
}

type CreateTransactionResult struct {
	Reference   string // gateway-issued transaction id
	QRString    string
	CheckoutURL string
	Amount      int
}

// CallbackEvent is the normalized shape of a provider callback after
// signature verification.
type CallbackEvent struct {
	Reference       string
	MerchantOrderID string
	Amount          int
	Status          string // success|failed|expired
	PaymentMethod   string
}

type Provider interface {
	Name() string
	CreateTransaction(ctx context.Context, in CreateTransactionInput) (CreateTransactionResult, error)

	// VerifyCallback recomputes the provider signature over the raw body and
	// compares it to the header; returns ErrSignatureMismatch on mismatch.
	VerifyCallback(headers http.Header, body []byte) (CallbackEvent, error)
}
