package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDuitkuSignature(t *testing.T) {
	cases := []struct {
		merchantCode string
		orderID      string
		amount       int
		apiKey       string
		want         string
	}{
		{"M001", "ORDER-1", 50000, "secret", "c819c88c15e767879b974cdadd2ab6cc"},
		{"DM0001", "INV-1001", 25000, "sk-test", "e536254dfc88a38c337a8e443cfd6819"},
	}
	for _, c := range cases {
		got := DuitkuSignature(c.merchantCode, c.orderID, c.amount, c.apiKey)
		if got != c.want {
			t.Errorf("DuitkuSignature(%s, %s, %d): got %s, want %s", c.merchantCode, c.orderID, c.amount, got, c.want)
		}
	}
}

func TestDuitkuCreateTransaction(t *testing.T) {
	var gotReq duitkuCreateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/merchant/v2/inquiry" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(duitkuCreateResponse{
			StatusCode: "00",
			Reference:  "D1234567890",
			PaymentURL: "https://sandbox.duitku.com/pay/D1234567890",
			QRString:   "00020101021226660014ID.CO.EXAMPLE",
		})
	}))
	defer srv.Close()

	c := &DuitkuClient{
		BaseURL:      srv.URL,
		MerchantCode: "DM0001",
		APIKey:       "sk-test",
		CallbackURL:  "https://shop.example/api/payments/callback/duitku",
		ReturnURL:    "https://shop.example/orders",
	}

	res, err := c.CreateTransaction(context.Background(), CreateTransactionInput{
		OrderID:        "INV-1001",
		Amount:         25000,
		CustomerName:   "Budi",
		CustomerEmail:  "budi@example.com",
		ProductDetails: "Paracetamol 500mg x2",
	})
	if err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}
	if res.Reference != "D1234567890" {
		t.Errorf("reference: got %s", res.Reference)
	}
	if res.QRString == "" || res.CheckoutURL == "" {
		t.Errorf("expected qr string and checkout url, got %+v", res)
	}
	if res.Amount != 25000 {
		t.Errorf("amount: got %d", res.Amount)
	}

	if gotReq.Signature != "e536254dfc88a38c337a8e443cfd6819" {
		t.Errorf("request signature: got %s", gotReq.Signature)
	}
	if gotReq.PaymentMethod != "SP" {
		t.Errorf("payment method: got %s", gotReq.PaymentMethod)
	}
	if gotReq.ExpiryPeriod != 10 {
		t.Errorf("expiry period: got %d", gotReq.ExpiryPeriod)
	}
}

func TestDuitkuCreateTransactionBusinessFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(duitkuCreateResponse{StatusCode: "01", StatusMessage: "merchant not found"})
	}))
	defer srv.Close()

	c := &DuitkuClient{BaseURL: srv.URL, MerchantCode: "DM0001", APIKey: "sk-test"}
	_, err := c.CreateTransaction(context.Background(), CreateTransactionInput{OrderID: "X", Amount: 1000})
	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
	if ge.Message != "merchant not found" {
		t.Errorf("message: got %q", ge.Message)
	}
}

func TestDuitkuCreateTransactionHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := &DuitkuClient{BaseURL: srv.URL, MerchantCode: "DM0001", APIKey: "sk-test"}
	_, err := c.CreateTransaction(context.Background(), CreateTransactionInput{OrderID: "X", Amount: 1000})
	var ge *GatewayError
	if !errors.As(err, &ge) {
		t.Fatalf("expected GatewayError, got %v", err)
	}
}

func TestDuitkuCreateTransactionRejectsNonPositiveAmount(t *testing.T) {
	c := &DuitkuClient{BaseURL: "http://unused", MerchantCode: "DM0001", APIKey: "sk-test"}
	if _, err := c.CreateTransaction(context.Background(), CreateTransactionInput{OrderID: "X", Amount: 0}); err == nil {
		t.Fatal("expected error for zero amount")
	}
}

func TestDuitkuVerifyCallback(t *testing.T) {
	c := &DuitkuClient{MerchantCode: "DM0001", APIKey: "sk-test"}

	body := []byte(`{"merchantCode":"DM0001","merchantOrderId":"ORD-20250101-ABCDEF","reference":"D999","amount":"75000","resultCode":"00","paymentCode":"SP"}`)
	h := http.Header{}
	h.Set(HeaderDuitkuSignature, "32ecaaa129bef54c597b52aaea6a086d")

	ev, err := c.VerifyCallback(h, body)
	if err != nil {
		t.Fatalf("VerifyCallback: %v", err)
	}
	if ev.Status != CallbackSuccess {
		t.Errorf("status: got %s", ev.Status)
	}
	if ev.MerchantOrderID != "ORD-20250101-ABCDEF" || ev.Reference != "D999" || ev.Amount != 75000 {
		t.Errorf("event: got %+v", ev)
	}
}

func TestDuitkuVerifyCallbackExpired(t *testing.T) {
	c := &DuitkuClient{MerchantCode: "DM0001", APIKey: "sk-test"}

	body := []byte(`{"merchantCode":"DM0001","merchantOrderId":"ORD-20250101-ABCDEF","reference":"D999","amount":75000,"resultCode":"02"}`)
	h := http.Header{}
	h.Set(HeaderDuitkuSignature, "32ecaaa129bef54c597b52aaea6a086d")

	ev, err := c.VerifyCallback(h, body)
	if err != nil {
		t.Fatalf("VerifyCallback: %v", err)
	}
	if ev.Status != CallbackExpired {
		t.Errorf("status: got %s", ev.Status)
	}
}

func TestDuitkuVerifyCallbackRejectsBadSignature(t *testing.T) {
	c := &DuitkuClient{MerchantCode: "DM0001", APIKey: "sk-test"}

	body := []byte(`{"merchantCode":"DM0001","merchantOrderId":"ORD-20250101-ABCDEF","amount":"75000","resultCode":"00"}`)

	cases := []http.Header{
		{},
		{HeaderDuitkuSignature: []string{"deadbeef"}},
		{HeaderDuitkuSignature: []string{"32ECAAA129BEF54C597B52AAEA6A086D"}}, // uppercase is not a match
	}
	for i, h := range cases {
		if _, err := c.VerifyCallback(h, body); !errors.Is(err, ErrSignatureMismatch) {
			t.Errorf("case %d: expected ErrSignatureMismatch, got %v", i, err)
		}
	}

	// tamper the amount: signature no longer covers the body
	tampered := []byte(`{"merchantCode":"DM0001","merchantOrderId":"ORD-20250101-ABCDEF","amount":"75001","resultCode":"00"}`)
	h := http.Header{}
	h.Set(HeaderDuitkuSignature, "32ecaaa129bef54c597b52aaea6a086d")
	if _, err := c.VerifyCallback(h, tampered); !errors.Is(err, ErrSignatureMismatch) {
		t.Errorf("tampered amount: expected ErrSignatureMismatch, got %v", err)
	}
}

func TestDuitkuVerifyCallbackMalformed(t *testing.T) {
	c := &DuitkuClient{MerchantCode: "DM0001", APIKey: "sk-test"}
	if _, err := c.VerifyCallback(http.Header{}, []byte("not json")); err == nil {
		t.Fatal("expected error for malformed body")
	}
	if _, err := c.VerifyCallback(http.Header{}, []byte(`{"amount":"NaN"}`)); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}
