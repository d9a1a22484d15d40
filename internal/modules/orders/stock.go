package orders

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type StockLine struct {
	ProductID string
	Qty       int
}

// DeductStockInTx runs inside the CALLER's tx (no nested tx). Order creation
// calls it so the decrement commits or rolls back with the order itself.
func DeductStockInTx(ctx context.Context, tx *gorm.DB, lines []StockLine) error {
	if len(lines) == 0 {
		return nil
	}

	want := aggregateLines(lines)

	ids := make([]string, 0, len(want))
	for id := range want {
		ids = append(ids, id)
	}
	// deterministic lock order
	sort.Strings(ids)

	type productRow struct {
		ID    string `gorm:"column:id"`
		Stock int    `gorm:"column:stock"`
	}
	var rows []productRow

	// SELECT ... FOR UPDATE
	if err := tx.WithContext(ctx).
		Table("products").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return err
	}

	avail := make(map[string]int, len(rows))
	for _, r := range rows {
		avail[r.ID] = r.Stock
	}

	var oos []OutOfStockItem
	for _, id := range ids {
		req := want[id]
		av, ok := avail[id]
		if !ok || av < req {
			oos = append(oos, OutOfStockItem{ProductID: id, Requested: req, Available: av})
		}
	}
	if len(oos) > 0 {
		return &OutOfStockError{Items: oos}
	}

	// stock = stock - qty, guarded so a racing writer cannot push it negative
	for _, id := range ids {
		req := want[id]
		res := tx.WithContext(ctx).
			Table("products").
			Where("id = ? AND stock >= ?", id, req).
			UpdateColumn("stock", gorm.Expr("stock - ?", req))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			return &OutOfStockError{Items: []OutOfStockItem{{ProductID: id, Requested: req, Available: 0}}}
		}
	}

	return nil
}

// aggregateLines merges duplicate product ids and clamps quantities to >= 1.
func aggregateLines(lines []StockLine) map[string]int {
	want := make(map[string]int, len(lines))
	for _, ln := range lines {
		q := ln.Qty
		if q < 1 {
			q = 1
		}
		want[ln.ProductID] += q
	}
	return want
}

// --- retry helpers (deadlock/lock timeout) ---

func withTxRetry(ctx context.Context, db *gorm.DB, attempts int, fn func(tx *gorm.DB) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(tx)
		})
		if err == nil {
			return nil
		}
		lastErr = err

		if isRetryableMySQLError(err) && i < attempts-1 {
			time.Sleep(time.Duration(50*(i+1)) * time.Millisecond)
			continue
		}
		return err
	}
	return lastErr
}

func isRetryableMySQLError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		// 1213: Deadlock found; 1205: Lock wait timeout
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}
