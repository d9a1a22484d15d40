package orders

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
)

func TestNewOrderNumber(t *testing.T) {
	ts := time.Date(2025, 9, 1, 10, 30, 0, 0, time.UTC)
	re := regexp.MustCompile(`^ORD-20250901-[0-9A-F]{6}$`)

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		n := NewOrderNumber(ts)
		if !re.MatchString(n) {
			t.Fatalf("order number %q does not match expected shape", n)
		}
		seen[n] = true
	}
	if len(seen) < 2 {
		t.Error("order numbers should not all collide")
	}
}

func TestAggregateLines(t *testing.T) {
	got := aggregateLines([]StockLine{
		{ProductID: "a", Qty: 2},
		{ProductID: "b", Qty: 1},
		{ProductID: "a", Qty: 3},
		{ProductID: "c", Qty: 0},  // clamped to 1
		{ProductID: "c", Qty: -5}, // clamped to 1
	})

	want := map[string]int{"a": 5, "b": 1, "c": 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for id, q := range want {
		if got[id] != q {
			t.Errorf("product %s: got %d, want %d", id, got[id], q)
		}
	}
}

func TestIsRetryableMySQLError(t *testing.T) {
	if !isRetryableMySQLError(&mysql.MySQLError{Number: 1213}) {
		t.Error("deadlock should be retryable")
	}
	if !isRetryableMySQLError(&mysql.MySQLError{Number: 1205}) {
		t.Error("lock wait timeout should be retryable")
	}
	if isRetryableMySQLError(&mysql.MySQLError{Number: 1062}) {
		t.Error("duplicate key is not retryable")
	}
	if isRetryableMySQLError(errors.New("plain error")) {
		t.Error("non-MySQL errors are not retryable")
	}
}

func TestOutOfStockErrorMessage(t *testing.T) {
	err := &OutOfStockError{Items: []OutOfStockItem{
		{ProductID: "p1", Requested: 3, Available: 1},
	}}
	if err.Error() == "" {
		t.Error("expected a non-empty message")
	}

	var oos *OutOfStockError
	if !errors.As(error(err), &oos) {
		t.Error("errors.As should match *OutOfStockError")
	}
}
