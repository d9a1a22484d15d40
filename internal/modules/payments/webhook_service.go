package payments

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dianlent/apotik-online-sub001/internal/mailer"
	"github.com/dianlent/apotik-online-sub001/internal/modules/orders"
)

// WebhookService applies verified provider callbacks: it is the authoritative
// writer of payment_status. The client-side polling endpoint only reads what
// this service persisted.
type WebhookService struct {
	db     *gorm.DB
	logger *slog.Logger
	mail   mailer.Service
	from   string
}

func NewWebhookService(db *gorm.DB) *WebhookService {
	return &WebhookService{db: db, logger: slog.Default()}
}

func (s *WebhookService) SetLogger(logger *slog.Logger) { s.logger = logger }

// SetReceiptMailer enables the best-effort receipt email on paid callbacks.
func (s *WebhookService) SetReceiptMailer(m mailer.Service, from string) {
	s.mail = m
	s.from = from
}

// Handle applies one callback event. Payment insert and order status advance
// happen in a single transaction. Returns ErrUnknownOrder for callbacks that
// reference no known order (benign to the provider); other errors are hard
// failures the caller should surface as 500 so the provider retries.
func (s *WebhookService) Handle(ctx context.Context, providerName string, ev CallbackEvent, rawBody []byte) error {
	var paidOrder *orders.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ord orders.Order

		// row lock: callback and a concurrent staff edit must serialize
		err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&ord, "order_number = ?", ev.MerchantOrderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnknownOrder
		}
		if err != nil {
			return err
		}

		now := time.Now()

		switch ev.Status {
		case CallbackSuccess:
			p := Payment{
				ID:            uuid.NewString(),
				Reference:     ev.Reference,
				OrderID:       ord.ID,
				Provider:      providerName,
				Amount:        ev.Amount,
				PaymentMethod: ev.PaymentMethod,
				Status:        StatusSucceeded,
				PaidAt:        &now,
				RawPayload:    datatypes.JSON(rawBody),
				CreatedAt:     now,
			}
			if err := tx.WithContext(ctx).Create(&p).Error; err != nil {
				if isDup(err) {
					// provider retry of an already-applied callback
					s.logger.InfoContext(ctx, "callback deduplicated",
						"provider", providerName, "reference", ev.Reference)
					return nil
				}
				return err
			}

			// pending -> paid only; a paid order is never reverted here
			if err := tx.WithContext(ctx).Model(&orders.Order{}).
				Where("id = ? AND payment_status = ?", ord.ID, orders.PaymentPending).
				Updates(map[string]any{
					"payment_status": orders.PaymentPaid,
					"paid_at":        &now,
					"updated_at":     now,
				}).Error; err != nil {
				return err
			}

			ord.PaymentStatus = orders.PaymentPaid
			ord.PaidAt = &now
			paidOrder = &ord
			return nil

		case CallbackFailed, CallbackExpired:
			to := orders.PaymentFailed
			if ev.Status == CallbackExpired {
				to = orders.PaymentExpired
			}
			return tx.WithContext(ctx).Model(&orders.Order{}).
				Where("id = ? AND payment_status = ?", ord.ID, orders.PaymentPending).
				Updates(map[string]any{
					"payment_status": to,
					"updated_at":     now,
				}).Error

		default:
			return fmt.Errorf("unknown callback status %q", ev.Status)
		}
	})
	if err != nil {
		if !errors.Is(err, ErrUnknownOrder) {
			s.logger.ErrorContext(ctx, "callback apply failed",
				"provider", providerName, "order", ev.MerchantOrderID, "err", err)
		}
		return err
	}

	s.logger.InfoContext(ctx, "callback processed",
		"provider", providerName, "order", ev.MerchantOrderID, "status", ev.Status)

	// receipt email outside the tx; never fails the webhook
	if paidOrder != nil && s.mail != nil && paidOrder.CustomerEmail != "" {
		if err := s.mail.Send(ctx, receiptEmail(s.from, *paidOrder)); err != nil {
			s.logger.WarnContext(ctx, "receipt email failed",
				"order", paidOrder.OrderNumber, "err", err)
		}
	}

	return nil
}

func receiptEmail(from string, o orders.Order) mailer.Email {
	return mailer.Email{
		From:    from,
		To:      []string{o.CustomerEmail},
		Subject: fmt.Sprintf("Pembayaran diterima - %s", o.OrderNumber),
		TextBody: fmt.Sprintf(
			"Halo %s,\n\nPembayaran untuk pesanan %s sebesar Rp%d telah kami terima.\nTerima kasih telah berbelanja.\n",
			o.CustomerName, o.OrderNumber, o.TotalAmount),
	}
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
