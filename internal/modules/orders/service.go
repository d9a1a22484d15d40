package orders

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dianlent/apotik-online-sub001/internal/modules/catalog"
)

type Service struct{ db *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{db: db} }

type OrderLine struct {
	ProductID string
	Qty       int
}

type CreateOrderInput struct {
	MemberID      *string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	Lines []OrderLine

	ShippingAddress    string
	ShippingCity       string
	ShippingPostalCode string
	ShippingCost       int

	PaymentMethod string // qris|cash
	Source        string // store|pos

	// PaidNow marks the order paid at creation (POS cash sales).
	PaidNow bool

	// TenderLimit caps the total the order may reach. Zero means no cap.
	// Cash sales set it to the amount tendered so a short payment rolls the
	// whole transaction back before anything is written.
	TenderLimit int
}

type CreateOrderResult struct {
	Order Order
	Items []OrderItem
}

// CreateOrder inserts the order, its items, and decrements stock as ONE
// transaction: any failing step rolls the whole unit back, so no partial
// order/item/stock state can survive. Deadlocks are retried.
func (s *Service) CreateOrder(ctx context.Context, in CreateOrderInput) (CreateOrderResult, error) {
	if len(in.Lines) == 0 {
		return CreateOrderResult{}, ErrEmptyOrder
	}
	for _, ln := range in.Lines {
		if ln.Qty < 1 {
			return CreateOrderResult{}, ErrProductUnavailable
		}
	}

	var out CreateOrderResult

	err := withTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		now := time.Now()

		// price + name snapshot from the locked product rows
		type productRow struct {
			ID     string `gorm:"column:id"`
			Name   string `gorm:"column:name"`
			Price  int    `gorm:"column:price"`
			Status string `gorm:"column:status"`
		}
		ids := make([]string, 0, len(in.Lines))
		for _, ln := range in.Lines {
			ids = append(ids, ln.ProductID)
		}
		var rows []productRow
		if err := tx.WithContext(ctx).Table("products").Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return err
		}
		prods := make(map[string]productRow, len(rows))
		for _, r := range rows {
			prods[r.ID] = r
		}

		want := aggregateLines(toStockLines(in.Lines))

		subtotal := 0
		items := make([]OrderItem, 0, len(want))
		for id, qty := range want {
			p, ok := prods[id]
			if !ok || p.Status != catalog.StatusActive {
				return ErrProductUnavailable
			}
			line := OrderItem{
				ID:          uuid.NewString(),
				ProductID:   p.ID,
				ProductName: p.Name,
				Price:       p.Price,
				Quantity:    qty,
				Subtotal:    qty * p.Price,
				CreatedAt:   now,
			}
			subtotal += line.Subtotal
			items = append(items, line)
		}

		if in.TenderLimit > 0 && subtotal+in.ShippingCost > in.TenderLimit {
			return ErrTenderTooLow
		}

		o := Order{
			ID:                 uuid.NewString(),
			OrderNumber:        NewOrderNumber(now),
			MemberID:           in.MemberID,
			CustomerName:       strings.TrimSpace(in.CustomerName),
			CustomerEmail:      strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
			CustomerPhone:      strings.TrimSpace(in.CustomerPhone),
			TotalAmount:        subtotal + in.ShippingCost,
			ShippingCost:       in.ShippingCost,
			ShippingAddress:    strings.TrimSpace(in.ShippingAddress),
			ShippingCity:       strings.TrimSpace(in.ShippingCity),
			ShippingPostalCode: strings.TrimSpace(in.ShippingPostalCode),
			PaymentMethod:      in.PaymentMethod,
			PaymentStatus:      PaymentPending,
			OrderStatus:        StatusPending,
			Source:             in.Source,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if in.PaidNow {
			o.PaymentStatus = PaymentPaid
			paidAt := now
			o.PaidAt = &paidAt
			o.OrderStatus = StatusProcessing
		}

		if err := tx.WithContext(ctx).Create(&o).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = o.ID
		}
		if err := tx.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}

		if err := DeductStockInTx(ctx, tx, toStockLines(in.Lines)); err != nil {
			return err
		}

		out = CreateOrderResult{Order: o, Items: items}
		return nil
	})
	if err != nil {
		return CreateOrderResult{}, err
	}
	return out, nil
}

// AttachGatewayRef stores the gateway transaction handle on the order so the
// status/QR endpoints can serve from the row.
func (s *Service) AttachGatewayRef(ctx context.Context, orderID, reference, qrString string) error {
	return s.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"gateway_reference": reference,
			"qr_string":         qrString,
			"updated_at":        time.Now(),
		}).Error
}

func toStockLines(lines []OrderLine) []StockLine {
	out := make([]StockLine, len(lines))
	for i, ln := range lines {
		out[i] = StockLine{ProductID: ln.ProductID, Qty: ln.Qty}
	}
	return out
}

// NewOrderNumber builds the human-readable reference reused as the gateway
// merchant-order-id, e.g. ORD-20250901-3FA2B4.
func NewOrderNumber(t time.Time) string {
	b := make([]byte, 3)
	_, _ = rand.Read(b)
	return fmt.Sprintf("ORD-%s-%s", t.Format("20060102"), strings.ToUpper(hex.EncodeToString(b)))
}
