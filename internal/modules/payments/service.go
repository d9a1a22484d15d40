package payments

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/dianlent/apotik-online-sub001/internal/modules/orders"
	"github.com/dianlent/apotik-online-sub001/internal/modules/settings"
)

type Service struct {
	db       *gorm.DB
	settings *settings.Repo
	orders   *orders.Service
	http     *http.Client
}

func NewService(db *gorm.DB, st *settings.Repo, osvc *orders.Service) *Service {
	return &Service{
		db:       db,
		settings: st,
		orders:   osvc,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// ProviderFor builds the gateway client named by the merchant settings.
// Settings are passed in by the caller, which must have read them fresh.
func (s *Service) ProviderFor(st settings.Settings) (Provider, error) {
	switch st.ActiveGateway {
	case settings.GatewayDuitku:
		base := duitkuLiveBaseURL
		if st.Sandbox {
			base = duitkuSandboxBaseURL
		}
		return &DuitkuClient{
			BaseURL:      base,
			MerchantCode: st.MerchantCode,
			APIKey:       st.APIKey,
			CallbackURL:  st.CallbackURL,
			ReturnURL:    st.ReturnURL,
			HTTP:         s.http,
		}, nil
	case settings.GatewayTripay:
		base := tripayLiveBaseURL
		if st.Sandbox {
			base = tripaySandboxBaseURL
		}
		return &TripayClient{
			BaseURL:      base,
			MerchantCode: st.MerchantCode,
			APIKey:       st.APIKey,
			PrivateKey:   st.PrivateKey,
			CallbackURL:  st.CallbackURL,
			ReturnURL:    st.ReturnURL,
			HTTP:         s.http,
		}, nil
	default:
		return nil, ErrUnknownGateway
	}
}

// ProviderByName builds the client for a callback route. The callback URL
// names the provider explicitly, independent of which gateway is currently
// active for new charges.
func (s *Service) ProviderByName(ctx context.Context, name string) (Provider, error) {
	st, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}
	st.ActiveGateway = name
	return s.ProviderFor(st)
}

type ChargeInput struct {
	OrderID        string // order_number (merchant order id)
	Amount         int
	CustomerName   string
	CustomerEmail  string
	ProductDetails string
}

type ChargeResult struct {
	Reference   string
	QRString    string
	CheckoutURL string
	Amount      int
}

// CreateCharge loads merchant credentials fresh, opens a gateway transaction
// for a pending order, and stores the returned reference + QR payload on the
// order row. One outbound HTTP call; failures are not retried.
func (s *Service) CreateCharge(ctx context.Context, in ChargeInput) (ChargeResult, error) {
	ord, err := orders.NewRepo(s.db).GetByOrderNumber(ctx, in.OrderID)
	if err != nil {
		return ChargeResult{}, ErrUnknownOrder
	}
	if ord.PaymentStatus != orders.PaymentPending {
		return ChargeResult{}, ErrOrderNotPayable
	}
	if in.Amount != ord.TotalAmount {
		return ChargeResult{}, ErrAmountMismatch
	}

	st, err := s.settings.Get(ctx)
	if err != nil {
		return ChargeResult{}, err
	}
	provider, err := s.ProviderFor(st)
	if err != nil {
		return ChargeResult{}, err
	}

	res, err := provider.CreateTransaction(ctx, CreateTransactionInput(in))
	if err != nil {
		return ChargeResult{}, err
	}

	if err := s.orders.AttachGatewayRef(ctx, ord.ID, res.Reference, res.QRString); err != nil {
		return ChargeResult{}, err
	}

	return ChargeResult{
		Reference:   res.Reference,
		QRString:    res.QRString,
		CheckoutURL: res.CheckoutURL,
		Amount:      res.Amount,
	}, nil
}
