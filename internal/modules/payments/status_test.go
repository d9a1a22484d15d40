package payments

import (
	"testing"

	"github.com/dianlent/apotik-online-sub001/internal/modules/orders"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		paymentStatus string
		wantStatus    string
		wantCode      string
	}{
		{orders.PaymentPaid, StatusSuccess, CodeSuccess},
		{orders.PaymentPending, StatusPending, CodePending},
		{orders.PaymentFailed, StatusFailed, CodeFailed},
		{orders.PaymentExpired, StatusExpired, CodeExpired},
		{"", StatusPending, CodePending},
		{"garbage", StatusPending, CodePending},
	}
	for _, c := range cases {
		status, code := StatusFor(c.paymentStatus)
		if status != c.wantStatus || code != c.wantCode {
			t.Errorf("StatusFor(%q): got (%s, %s), want (%s, %s)", c.paymentStatus, status, code, c.wantStatus, c.wantCode)
		}
	}
}

// Polling the same persisted state always yields the same answer.
func TestStatusForRepeatable(t *testing.T) {
	for i := 0; i < 3; i++ {
		status, code := StatusFor(orders.PaymentPaid)
		if status != StatusSuccess || code != CodeSuccess {
			t.Fatalf("iteration %d: got (%s, %s)", i, status, code)
		}
	}
}
