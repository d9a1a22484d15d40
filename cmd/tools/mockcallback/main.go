package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dianlent/apotik-online-sub001/internal/modules/payments"
)

type duitkuPayload struct {
	MerchantCode    string `json:"merchantCode"`
	MerchantOrderID string `json:"merchantOrderId"`
	Reference       string `json:"reference"`
	Amount          string `json:"amount"`
	ResultCode      string `json:"resultCode"`
	PaymentMethod   string `json:"paymentCode"`
}

type tripayPayload struct {
	Reference     string `json:"reference"`
	MerchantRef   string `json:"merchant_ref"`
	PaymentMethod string `json:"payment_method"`
	TotalAmount   int    `json:"total_amount"`
	Status        string `json:"status"`
}

func main() {
	provider := flag.String("provider", "duitku", "Gateway to impersonate (duitku, tripay)")
	base := flag.String("base-url", "http://localhost:8080", "API base URL")
	merchantCode := flag.String("merchant-code", os.Getenv("MERCHANT_CODE"), "Merchant code (duitku)")
	apiKey := flag.String("api-key", os.Getenv("GATEWAY_API_KEY"), "API key (duitku signature)")
	privateKey := flag.String("private-key", os.Getenv("GATEWAY_PRIVATE_KEY"), "Private key (tripay signature)")
	orderNumber := flag.String("order-number", "", "Order number (merchant ref) of the target order")
	reference := flag.String("reference", "ref-mock-001", "Gateway transaction reference")
	amount := flag.Int("amount", 50000, "Paid amount in rupiah")
	result := flag.String("result", "success", "Outcome to report (success, failed, expired)")
	dryRun := flag.Bool("dry-run", false, "Only print signature and body, don't send")

	flag.Parse()

	if *orderNumber == "" {
		fmt.Fprintf(os.Stderr, "Error: -order-number is required\n")
		os.Exit(1)
	}

	var body []byte
	var header, sig string
	var err error

	switch *provider {
	case "duitku":
		if *merchantCode == "" || *apiKey == "" {
			fmt.Fprintf(os.Stderr, "Error: duitku needs -merchant-code and -api-key\n")
			os.Exit(1)
		}
		code := map[string]string{"success": "00", "failed": "01", "expired": "02"}[*result]
		if code == "" {
			fmt.Fprintf(os.Stderr, "Error: unknown result %q\n", *result)
			os.Exit(1)
		}
		body, err = json.Marshal(duitkuPayload{
			MerchantCode:    *merchantCode,
			MerchantOrderID: *orderNumber,
			Reference:       *reference,
			Amount:          fmt.Sprintf("%d", *amount),
			ResultCode:      code,
			PaymentMethod:   "SP",
		})
		header = payments.HeaderDuitkuSignature
		sig = payments.DuitkuSignature(*merchantCode, *orderNumber, *amount, *apiKey)

	case "tripay":
		if *privateKey == "" {
			fmt.Fprintf(os.Stderr, "Error: tripay needs -private-key\n")
			os.Exit(1)
		}
		status := map[string]string{"success": "PAID", "failed": "FAILED", "expired": "EXPIRED"}[*result]
		if status == "" {
			fmt.Fprintf(os.Stderr, "Error: unknown result %q\n", *result)
			os.Exit(1)
		}
		body, err = json.Marshal(tripayPayload{
			Reference:     *reference,
			MerchantRef:   *orderNumber,
			PaymentMethod: "QRIS",
			TotalAmount:   *amount,
			Status:        status,
		})
		header = payments.HeaderTripaySignature
		if err == nil {
			sig = payments.TripayCallbackSignature(*privateKey, body)
		}

	default:
		fmt.Fprintf(os.Stderr, "Error: unknown provider %q\n", *provider)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling payload: %v\n", err)
		os.Exit(1)
	}

	url := fmt.Sprintf("%s/api/payments/callback/%s", *base, *provider)
	fmt.Printf("%s: %s\n", header, sig)
	fmt.Printf("Body: %s\n", string(body))

	if *dryRun {
		fmt.Println("\n[DRY RUN] Not sending request")
		return
	}

	fmt.Printf("\nSending to %s...\n", url)
	req, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating request: %v\n", err)
		os.Exit(1)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(header, sig)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %d\n", resp.StatusCode)
	fmt.Printf("Response: %s\n", string(respBody))

	if resp.StatusCode != http.StatusOK {
		os.Exit(1)
	}
}
