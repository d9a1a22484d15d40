package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dianlent/apotik-online-sub001/internal/modules/catalog"
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

func TestCreateOrderDeductsStockInOneTx(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `products` WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status"}).
			AddRow("p1", "Paracetamol 500mg", 1000, catalog.StatusActive))
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `order_items`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT (.+) FROM `products` WHERE id IN (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "stock"}).AddRow("p1", 5))
	mock.ExpectExec("UPDATE `products` SET `stock`=stock - \\? WHERE id = \\? AND stock >= \\?").
		WithArgs(3, "p1", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	res, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName:  "Budi",
		Lines:         []OrderLine{{ProductID: "p1", Qty: 3}},
		ShippingCost:  500,
		PaymentMethod: "qris",
		Source:        SourceStore,
	})
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if res.Order.TotalAmount != 3500 {
		t.Fatalf("TotalAmount = %d, want 3500", res.Order.TotalAmount)
	}
	if len(res.Items) != 1 || res.Items[0].Subtotal != 3000 {
		t.Fatalf("items = %+v, want one line with subtotal 3000", res.Items)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateOrderInsufficientStockRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `products` WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status"}).
			AddRow("p1", "Paracetamol 500mg", 1000, catalog.StatusActive))
	mock.ExpectExec("INSERT INTO `orders`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `order_items`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT (.+) FROM `products` WHERE id IN (.+) FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "stock"}).AddRow("p1", 5))
	mock.ExpectRollback()

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName:  "Budi",
		Lines:         []OrderLine{{ProductID: "p1", Qty: 10}},
		PaymentMethod: "qris",
		Source:        SourceStore,
	})
	var oos *OutOfStockError
	if !errors.As(err, &oos) {
		t.Fatalf("err = %v, want OutOfStockError", err)
	}
	if len(oos.Items) != 1 || oos.Items[0].Requested != 10 || oos.Items[0].Available != 5 {
		t.Fatalf("oos items = %+v, want requested=10 available=5", oos.Items)
	}
	// no stock UPDATE and no commit were expected: the write set rolls back whole
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateOrderTenderTooLowWritesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `products` WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status"}).
			AddRow("p1", "Paracetamol 500mg", 1000, catalog.StatusActive))
	mock.ExpectRollback()

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName:  "Budi",
		Lines:         []OrderLine{{ProductID: "p1", Qty: 3}},
		ShippingCost:  500,
		PaymentMethod: "cash",
		Source:        SourcePOS,
		PaidNow:       true,
		TenderLimit:   2000,
	})
	if !errors.Is(err, ErrTenderTooLow) {
		t.Fatalf("err = %v, want ErrTenderTooLow", err)
	}
	// short tender fails before the order INSERT, so nothing is written
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateOrderRejectsInactiveProduct(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewService(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `products` WHERE id IN").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price", "status"}).
			AddRow("p1", "Paracetamol 500mg", 1000, catalog.StatusInactive))
	mock.ExpectRollback()

	_, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		CustomerName:  "Budi",
		Lines:         []OrderLine{{ProductID: "p1", Qty: 1}},
		PaymentMethod: "qris",
		Source:        SourceStore,
	})
	if !errors.Is(err, ErrProductUnavailable) {
		t.Fatalf("err = %v, want ErrProductUnavailable", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
