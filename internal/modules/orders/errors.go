package orders

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyOrder         = errors.New("order has no items")
	ErrProductUnavailable = errors.New("product unavailable")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrNotActionable      = errors.New("order not actionable")
	ErrTenderTooLow       = errors.New("amount tendered below order total")
)

type OutOfStockItem struct {
	ProductID string
	Requested int
	Available int
}

type OutOfStockError struct {
	Items []OutOfStockItem
}

func (e *OutOfStockError) Error() string {
	if len(e.Items) == 0 {
		return "out of stock"
	}
	it := e.Items[0]
	return fmt.Sprintf("out of stock: product=%s requested=%d available=%d", it.ProductID, it.Requested, it.Available)
}
