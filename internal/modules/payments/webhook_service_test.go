package payments

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dianlent/apotik-online-sub001/internal/mailer"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:               logger.Discard,
		DisableAutomaticPing: true,
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func TestWebhookSuccessInsertsPaymentAndMarksPaid(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewWebhookService(db)
	mbox := &mailer.Mock{}
	svc.SetReceiptMailer(mbox, "noreply@apotik.test")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `orders` WHERE order_number = (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_number", "customer_name", "customer_email", "total_amount", "payment_status",
		}).AddRow("o1", "ORD-20250901-AB12CD", "Budi", "budi@example.com", 150000, "pending"))
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE `orders` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ev := CallbackEvent{
		Reference:       "D0001-REF",
		MerchantOrderID: "ORD-20250901-AB12CD",
		Amount:          150000,
		Status:          CallbackSuccess,
		PaymentMethod:   "SP",
	}
	if err := svc.Handle(context.Background(), "duitku", ev, []byte(`{}`)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	// payment insert and order advance committed together
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}

	if len(mbox.Sent) != 1 {
		t.Fatalf("sent %d receipt mails, want 1", len(mbox.Sent))
	}
	m := mbox.Sent[0]
	if m.To[0] != "budi@example.com" || !strings.Contains(m.Subject, "ORD-20250901-AB12CD") {
		t.Fatalf("unexpected receipt mail %+v", m)
	}
}

func TestWebhookDuplicateReferenceIsIdempotent(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewWebhookService(db)
	mbox := &mailer.Mock{}
	svc.SetReceiptMailer(mbox, "noreply@apotik.test")

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `orders` WHERE order_number = (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_number", "customer_name", "customer_email", "total_amount", "payment_status",
		}).AddRow("o1", "ORD-20250901-AB12CD", "Budi", "budi@example.com", 150000, "paid"))
	mock.ExpectExec("INSERT INTO `payments`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "duplicate entry"})
	mock.ExpectCommit()

	ev := CallbackEvent{
		Reference:       "D0001-REF",
		MerchantOrderID: "ORD-20250901-AB12CD",
		Amount:          150000,
		Status:          CallbackSuccess,
		PaymentMethod:   "SP",
	}
	if err := svc.Handle(context.Background(), "duitku", ev, []byte(`{}`)); err != nil {
		t.Fatalf("Handle on provider retry: %v", err)
	}
	// no order UPDATE was expected: the retry is a no-op
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
	if len(mbox.Sent) != 0 {
		t.Fatalf("retry sent %d receipt mails, want 0", len(mbox.Sent))
	}
}

func TestWebhookExpiredMarksOrderExpired(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewWebhookService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `orders` WHERE order_number = (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "order_number", "customer_name", "total_amount", "payment_status",
		}).AddRow("o1", "ORD-20250901-AB12CD", "Budi", 150000, "pending"))
	mock.ExpectExec("UPDATE `orders` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ev := CallbackEvent{
		Reference:       "T0001-REF",
		MerchantOrderID: "ORD-20250901-AB12CD",
		Amount:          150000,
		Status:          CallbackExpired,
	}
	if err := svc.Handle(context.Background(), "tripay", ev, []byte(`{}`)); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWebhookUnknownOrder(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewWebhookService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `orders` WHERE order_number = (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	ev := CallbackEvent{
		Reference:       "D0002-REF",
		MerchantOrderID: "ORD-00000000-XXXXXX",
		Amount:          1000,
		Status:          CallbackSuccess,
	}
	err := svc.Handle(context.Background(), "duitku", ev, []byte(`{}`))
	if !errors.Is(err, ErrUnknownOrder) {
		t.Fatalf("err = %v, want ErrUnknownOrder", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
