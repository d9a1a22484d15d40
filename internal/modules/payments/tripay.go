package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

const (
	tripaySandboxBaseURL = "https://tripay.co.id/api-sandbox"
	tripayLiveBaseURL    = "https://tripay.co.id/api"

	HeaderTripaySignature = "X-Callback-Signature"
)

// TripayClient opens QRIS transactions against a Tripay-compatible gateway.
// Near-identical flow to Duitku, different signing scheme: HMAC-SHA256 with
// the merchant private key instead of a bare MD5 digest.
type TripayClient struct {
	BaseURL      string
	MerchantCode string
	APIKey       string
	PrivateKey   string
	CallbackURL  string
	ReturnURL    string
	HTTP         *http.Client
}

func (c *TripayClient) Name() string { return "tripay" }

// TripaySignature signs merchantCode + merchantRef + amount with the private
// key; lowercase hex.
func TripaySignature(merchantCode, merchantRef string, amount int, privateKey string) string {
	m := hmac.New(sha256.New, []byte(privateKey))
	m.Write([]byte(merchantCode + merchantRef + strconv.Itoa(amount)))
	return hex.EncodeToString(m.Sum(nil))
}

// TripayCallbackSignature signs the raw callback body with the private key.
func TripayCallbackSignature(privateKey string, body []byte) string {
	m := hmac.New(sha256.New, []byte(privateKey))
	m.Write(body)
	return hex.EncodeToString(m.Sum(nil))
}

type tripayCreateRequest struct {
	Method        string `json:"method"`
	MerchantRef   string `json:"merchant_ref"`
	Amount        int    `json:"amount"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	OrderItems    []struct {
		Name     string `json:"name"`
		Price    int    `json:"price"`
		Quantity int    `json:"quantity"`
	} `json:"order_items"`
	CallbackURL string `json:"callback_url"`
	ReturnURL   string `json:"return_url"`
	Signature   string `json:"signature"`
}

type tripayCreateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		Reference   string `json:"reference"`
		CheckoutURL string `json:"checkout_url"`
		QRString    string `json:"qr_string"`
		Amount      int    `json:"amount"`
	} `json:"data"`
}

func (c *TripayClient) CreateTransaction(ctx context.Context, in CreateTransactionInput) (CreateTransactionResult, error) {
	if in.Amount <= 0 {
		return CreateTransactionResult{}, &GatewayError{Provider: c.Name(), Message: "amount must be positive"}
	}

	body := tripayCreateRequest{
		Method:        "QRIS",
		MerchantRef:   in.OrderID,
		Amount:        in.Amount,
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		CallbackURL:   c.CallbackURL,
		ReturnURL:     c.ReturnURL,
		Signature:     TripaySignature(c.MerchantCode, in.OrderID, in.Amount, c.PrivateKey),
	}
	body.OrderItems = append(body.OrderItems, struct {
		Name     string `json:"name"`
		Price    int    `json:"price"`
		Quantity int    `json:"quantity"`
	}{Name: in.ProductDetails, Price: in.Amount, Quantity: 1})

	raw, err := json.Marshal(body)
	if err != nil {
		return CreateTransactionResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/transaction/create", bytes.NewReader(raw))
	if err != nil {
		return CreateTransactionResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return CreateTransactionResult{}, &GatewayError{Provider: c.Name(), Message: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return CreateTransactionResult{}, &GatewayError{Provider: c.Name(), Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return CreateTransactionResult{}, &GatewayError{
			Provider: c.Name(),
			Message:  fmt.Sprintf("http %d: %s", resp.StatusCode, truncate(string(respBody), 200)),
		}
	}

	var out tripayCreateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return CreateTransactionResult{}, &GatewayError{Provider: c.Name(), Message: "malformed gateway response"}
	}
	if !out.Success {
		return CreateTransactionResult{}, &GatewayError{Provider: c.Name(), Message: out.Message}
	}

	return CreateTransactionResult{
		Reference:   out.Data.Reference,
		QRString:    out.Data.QRString,
		CheckoutURL: out.Data.CheckoutURL,
		Amount:      in.Amount,
	}, nil
}

type tripayCallbackBody struct {
	Reference     string `json:"reference"`
	MerchantRef   string `json:"merchant_ref"`
	PaymentMethod string `json:"payment_method"`
	TotalAmount   int    `json:"total_amount"`
	Status        string `json:"status"` // PAID|FAILED|EXPIRED
}

func (c *TripayClient) VerifyCallback(headers http.Header, body []byte) (CallbackEvent, error) {
	want := TripayCallbackSignature(c.PrivateKey, body)
	if headers.Get(HeaderTripaySignature) != want {
		return CallbackEvent{}, ErrSignatureMismatch
	}

	var cb tripayCallbackBody
	if err := json.Unmarshal(body, &cb); err != nil {
		return CallbackEvent{}, &GatewayError{Provider: c.Name(), Message: "malformed callback payload"}
	}

	status := CallbackFailed
	switch cb.Status {
	case "PAID":
		status = CallbackSuccess
	case "EXPIRED":
		status = CallbackExpired
	}

	return CallbackEvent{
		Reference:       cb.Reference,
		MerchantOrderID: cb.MerchantRef,
		Amount:          cb.TotalAmount,
		Status:          status,
		PaymentMethod:   cb.PaymentMethod,
	}, nil
}

func (c *TripayClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}
