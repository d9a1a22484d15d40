package pos

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dianlent/apotik-online-sub001/internal/modules/catalog"
	"github.com/dianlent/apotik-online-sub001/internal/modules/orders"
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

func TestCashSaleShortTenderLeavesNoTrace(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, orders.NewService(db), nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `products` WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status"}).
			AddRow("p1", "Amoxicillin 500mg", 25000, catalog.StatusActive))
	mock.ExpectRollback()

	_, err := svc.Sale(context.Background(), SaleInput{
		CashierID:      "c1",
		Lines:          []SaleLine{{ProductID: "p1", Qty: 2}},
		PaymentMethod:  MethodCash,
		AmountTendered: 40000,
	})
	if !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("err = %v, want ErrInsufficientCash", err)
	}
	// the rollback fires before any order, item or stock write
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCashSaleChange(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db, orders.NewService(db), nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `products` WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status"}).
			AddRow("p1", "Amoxicillin 500mg", 25000, catalog.StatusActive))
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `order_items`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT (.+) FROM `products` WHERE id IN (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "stock"}).AddRow("p1", 10))
	mock.ExpectExec("UPDATE `products` SET `stock`=stock - \\?").
		WithArgs(2, "p1", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.Sale(context.Background(), SaleInput{
		CashierID:      "c1",
		Lines:          []SaleLine{{ProductID: "p1", Qty: 2}},
		PaymentMethod:  MethodCash,
		AmountTendered: 60000,
	})
	if err != nil {
		t.Fatalf("Sale: %v", err)
	}
	if res.Change != 10000 {
		t.Fatalf("Change = %d, want 10000", res.Change)
	}
	if res.Order.PaymentStatus != orders.PaymentPaid {
		t.Fatalf("PaymentStatus = %q, want paid", res.Order.PaymentStatus)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
