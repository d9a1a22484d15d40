package payments

import (
	"context"

	"github.com/dianlent/apotik-online-sub001/internal/modules/orders"
)

// Provider-shaped status codes served to the polling client.
const (
	StatusPending = "PENDING"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	StatusExpired = "EXPIRED"

	CodeSuccess = "00"
	CodePending = "01"
	CodeFailed  = "02"
	CodeExpired = "03"
)

type StatusResult struct {
	Status        string `json:"status"`
	StatusCode    string `json:"statusCode"`
	Reference     string `json:"reference"`
	Amount        int    `json:"amount"`
	PaymentStatus string `json:"paymentStatus"`
	OrderStatus   string `json:"orderStatus"`
}

// StatusFor maps a persisted payment_status to the provider-shaped pair the
// polling client expects. Depends only on payment_status, never order_status.
func StatusFor(paymentStatus string) (status, code string) {
	switch paymentStatus {
	case orders.PaymentPaid:
		return StatusSuccess, CodeSuccess
	case orders.PaymentFailed:
		return StatusFailed, CodeFailed
	case orders.PaymentExpired:
		return StatusExpired, CodeExpired
	default:
		return StatusPending, CodePending
	}
}

// Status is the advisory polling read: it inspects the persisted order row
// only, never the provider. Pure read, idempotent.
func (s *Service) Status(ctx context.Context, reference string) (StatusResult, error) {
	ord, err := orders.NewRepo(s.db).GetByOrderNumber(ctx, reference)
	if err != nil {
		return StatusResult{}, ErrUnknownOrder
	}

	status, code := StatusFor(ord.PaymentStatus)
	return StatusResult{
		Status:        status,
		StatusCode:    code,
		Reference:     ord.OrderNumber,
		Amount:        ord.TotalAmount,
		PaymentStatus: ord.PaymentStatus,
		OrderStatus:   ord.OrderStatus,
	}, nil
}

// QRPayload returns the stored QR string for a pending order's reference.
func (s *Service) QRPayload(ctx context.Context, reference string) (string, error) {
	ord, err := orders.NewRepo(s.db).GetByOrderNumber(ctx, reference)
	if err != nil {
		return "", ErrUnknownOrder
	}
	if ord.QRString == nil || *ord.QRString == "" {
		return "", ErrOrderNotPayable
	}
	return *ord.QRString, nil
}
