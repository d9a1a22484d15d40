package payments

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
)

const (
	duitkuSandboxBaseURL = "https://sandbox.duitku.com/webapi"
	duitkuLiveBaseURL    = "https://passport.duitku.com/webapi"

	// SP is Duitku's payment-method code for QRIS (ShopeePay interoperable QR).
	duitkuQRISMethod = "SP"

	HeaderDuitkuSignature = "X-Duitku-Signature"
)

// DuitkuClient opens QRIS transactions against a Duitku-compatible gateway.
type DuitkuClient struct {
	BaseURL      string
	MerchantCode string
	APIKey       string
	CallbackURL  string
	ReturnURL    string
	HTTP         *http.Client
}

func (c *DuitkuClient) Name() string { return "duitku" }

// DuitkuSignature is the provider's bit-exact contract: lowercase-hex MD5 of
// merchantCode + merchantOrderId + amount + apiKey, concatenated with no
// delimiters, in exactly that order.
func DuitkuSignature(merchantCode, merchantOrderID string, amount int, apiKey string) string {
	sum := md5.Sum([]byte(merchantCode + merchantOrderID + strconv.Itoa(amount) + apiKey))
	return hex.EncodeToString(sum[:])
}

type duitkuCreateRequest struct {
	MerchantCode    string `json:"merchantCode"`
	PaymentAmount   int    `json:"paymentAmount"`
	PaymentMethod   string `json:"paymentMethod"`
	MerchantOrderID string `json:"merchantOrderId"`
	ProductDetails  string `json:"productDetails"`
	Email           string `json:"email"`
	CustomerVaName  string `json:"customerVaName"`
	CallbackURL     string `json:"callbackUrl"`
	ReturnURL       string `json:"returnUrl"`
	Signature       string `json:"signature"`
	ExpiryPeriod    int    `json:"expiryPeriod"`
}

type duitkuCreateResponse struct {
	StatusCode    string `json:"statusCode"`
	StatusMessage string `json:"statusMessage"`
	Reference     string `json:"reference"`
	PaymentURL    string `json:"paymentUrl"`
	QRString      string `json:"qrString"`
}

func (c *DuitkuClient) CreateTransaction(ctx context.Context, in CreateTransactionInput) (CreateTransactionResult, error) {
	if in.Amount <= 0 {
		return CreateTransactionResult{}, &GatewayError{Provider: c.Name(), Message: "amount must be positive"}
	}

	body := duitkuCreateRequest{
		MerchantCode:    c.MerchantCode,
		PaymentAmount:   in.Amount,
		PaymentMethod:   duitkuQRISMethod,
		MerchantOrderID: in.OrderID,
		ProductDetails:  in.ProductDetails,
		Email:           in.CustomerEmail,
		CustomerVaName:  in.CustomerName,
		CallbackURL:     c.CallbackURL,
		ReturnURL:       c.ReturnURL,
		Signature:       DuitkuSignature(c.MerchantCode, in.OrderID, in.Amount, c.APIKey),
		ExpiryPeriod:    10, // minutes
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return CreateTransactionResult{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/merchant/v2/inquiry", bytes.NewReader(raw))
	if err != nil {
		return CreateTransactionResult{}, err
	}
	req.Header.Set("Content-Type", "application/json")

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

	var out duitkuCreateResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return CreateTransactionResult{}, &GatewayError{Provider: c.Name(), Message: "malformed gateway response"}
	}
	if out.StatusCode != "00" {
		return CreateTransactionResult{}, &GatewayError{Provider: c.Name(), Message: out.StatusMessage}
	}

	return CreateTransactionResult{
		Reference:   out.Reference,
		QRString:    out.QRString,
		CheckoutURL: out.PaymentURL,
		Amount:      in.Amount,
	}, nil
}

type duitkuCallbackBody struct {
	MerchantCode    string      `json:"merchantCode"`
	MerchantOrderID string      `json:"merchantOrderId"`
	Reference       string      `json:"reference"`
	Amount          json.Number `json:"amount"`
	ResultCode      string      `json:"resultCode"`
	PaymentMethod   string      `json:"paymentCode"`
}

// VerifyCallback recomputes the creation digest from the callback body fields
// and compares it to the signature header.
func (c *DuitkuClient) VerifyCallback(headers http.Header, body []byte) (CallbackEvent, error) {
	var cb duitkuCallbackBody
	if err := json.Unmarshal(body, &cb); err != nil {
		return CallbackEvent{}, &GatewayError{Provider: c.Name(), Message: "malformed callback payload"}
	}

	amount, err := strconv.Atoi(cb.Amount.String())
	if err != nil {
		return CallbackEvent{}, &GatewayError{Provider: c.Name(), Message: "malformed callback amount"}
	}

	want := DuitkuSignature(cb.MerchantCode, cb.MerchantOrderID, amount, c.APIKey)
	if headers.Get(HeaderDuitkuSignature) != want {
		return CallbackEvent{}, ErrSignatureMismatch
	}

	status := CallbackFailed
	switch cb.ResultCode {
	case "00":
		status = CallbackSuccess
	case "02":
		status = CallbackExpired
	}

	return CallbackEvent{
		Reference:       cb.Reference,
		MerchantOrderID: cb.MerchantOrderID,
		Amount:          amount,
		Status:          status,
		PaymentMethod:   cb.PaymentMethod,
	}, nil
}

func (c *DuitkuClient) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
