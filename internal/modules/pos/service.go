package pos

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dianlent/apotik-online-sub001/internal/modules/orders"
	"github.com/dianlent/apotik-online-sub001/internal/modules/payments"
)

var ErrInsufficientCash = errors.New("amount tendered is less than total")

const (
	MethodCash = "cash"
	MethodQRIS = "qris"
)

type Service struct {
	db       *gorm.DB
	orders   *orders.Service
	payments *payments.Service
}

func NewService(db *gorm.DB, osvc *orders.Service, psvc *payments.Service) *Service {
	return &Service{db: db, orders: osvc, payments: psvc}
}

type SaleLine struct {
	ProductID string
	Qty       int
}

type SaleInput struct {
	CashierID      string
	CustomerName   string
	Lines          []SaleLine
	PaymentMethod  string // cash|qris
	AmountTendered int    // cash only
}

type SaleResult struct {
	Order  orders.Order
	Items  []orders.OrderItem
	Change int

	// QRIS only
	Reference   string
	QRString    string
	CheckoutURL string
}

// Sale rings up a counter sale. Cash sales settle immediately; QRIS sales
// create a pending order and open a gateway transaction in the same flow, so
// the terminal can display the QR right away.
func (s *Service) Sale(ctx context.Context, in SaleInput) (SaleResult, error) {
	lines := make([]orders.OrderLine, len(in.Lines))
	for i, ln := range in.Lines {
		lines[i] = orders.OrderLine{ProductID: ln.ProductID, Qty: ln.Qty}
	}

	name := in.CustomerName
	if name == "" {
		name = "Walk-in"
	}

	create := orders.CreateOrderInput{
		CustomerName:  name,
		Lines:         lines,
		PaymentMethod: in.PaymentMethod,
		Source:        orders.SourcePOS,
		PaidNow:       in.PaymentMethod == MethodCash,
	}

	switch in.PaymentMethod {
	case MethodCash:
		// the total is only known after pricing inside the order tx, so the
		// tender check runs there: a short payment rolls back before any write
		create.TenderLimit = in.AmountTendered
		res, err := s.orders.CreateOrder(ctx, create)
		if err != nil {
			if errors.Is(err, orders.ErrTenderTooLow) {
				return SaleResult{}, ErrInsufficientCash
			}
			return SaleResult{}, err
		}
		return SaleResult{
			Order:  res.Order,
			Items:  res.Items,
			Change: in.AmountTendered - res.Order.TotalAmount,
		}, nil

	case MethodQRIS:
		res, err := s.orders.CreateOrder(ctx, create)
		if err != nil {
			return SaleResult{}, err
		}
		charge, err := s.payments.CreateCharge(ctx, payments.ChargeInput{
			OrderID:        res.Order.OrderNumber,
			Amount:         res.Order.TotalAmount,
			CustomerName:   name,
			ProductDetails: productDetails(res.Items),
		})
		if err != nil {
			return SaleResult{}, err
		}
		return SaleResult{
			Order:       res.Order,
			Items:       res.Items,
			Reference:   charge.Reference,
			QRString:    charge.QRString,
			CheckoutURL: charge.CheckoutURL,
		}, nil

	default:
		return SaleResult{}, orders.ErrProductUnavailable
	}
}

type DailySummary struct {
	Date       string `json:"date"`
	SalesCount int64  `json:"sales_count"`
	CashTotal  int64  `json:"cash_total"`
	QRISTotal  int64  `json:"qris_total"`
	GrandTotal int64  `json:"grand_total"`
}

// Summary aggregates the day's settled POS sales for the cashier dashboard.
func (s *Service) Summary(ctx context.Context, day time.Time) (DailySummary, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.Add(24 * time.Hour)

	type row struct {
		Method string
		Count  int64
		Total  int64
	}
	var rows []row
	err := s.db.WithContext(ctx).Model(&orders.Order{}).
		Select("payment_method AS method, COUNT(*) AS count, COALESCE(SUM(total_amount),0) AS total").
		Where("source = ? AND payment_status = ? AND created_at >= ? AND created_at < ?",
			orders.SourcePOS, orders.PaymentPaid, start, end).
		Group("payment_method").
		Scan(&rows).Error
	if err != nil {
		return DailySummary{}, err
	}

	out := DailySummary{Date: start.Format("2006-01-02")}
	for _, r := range rows {
		out.SalesCount += r.Count
		out.GrandTotal += r.Total
		switch r.Method {
		case MethodCash:
			out.CashTotal = r.Total
		case MethodQRIS:
			out.QRISTotal = r.Total
		}
	}
	return out, nil
}

func productDetails(items []orders.OrderItem) string {
	if len(items) == 1 {
		return items[0].ProductName
	}
	if len(items) > 1 {
		return items[0].ProductName + " +more"
	}
	return "POS sale"
}
