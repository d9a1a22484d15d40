package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dianlent/apotik-online-sub001/internal/http/middleware"
	"github.com/dianlent/apotik-online-sub001/internal/http/validation"
	"github.com/dianlent/apotik-online-sub001/internal/modules/orders"
	"github.com/dianlent/apotik-online-sub001/internal/modules/pos"
	"github.com/dianlent/apotik-online-sub001/internal/shared/apperr"
)

type POSHandler struct {
	POS *pos.Service
}

func NewPOSHandler(svc *pos.Service) *POSHandler {
	return &POSHandler{POS: svc}
}

type saleLineInput struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type saleInput struct {
	CustomerName   string          `json:"customer_name" binding:"omitempty,max=100"`
	Items          []saleLineInput `json:"items" binding:"required,min=1,dive"`
	PaymentMethod  string          `json:"payment_method" binding:"required,oneof=cash qris"`
	AmountTendered int             `json:"amount_tendered" binding:"gte=0"`
}

// POST /api/pos/sales
func (h *POSHandler) CreateSale(c *gin.Context) {
	claims, _ := middleware.CurrentMember(c)

	var in saleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid sale data.", validation.FromBindError(err, &in)))
		return
	}

	lines := make([]pos.SaleLine, len(in.Items))
	for i, it := range in.Items {
		lines[i] = pos.SaleLine{ProductID: it.ProductID, Qty: it.Quantity}
	}

	res, err := h.POS.Sale(c.Request.Context(), pos.SaleInput{
		CashierID:      claims.MemberID,
		CustomerName:   in.CustomerName,
		Lines:          lines,
		PaymentMethod:  in.PaymentMethod,
		AmountTendered: in.AmountTendered,
	})
	if err != nil {
		var oos *orders.OutOfStockError
		switch {
		case errors.As(err, &oos):
			middleware.Fail(c, apperr.ConflictErr("Some items are out of stock."))
		case errors.Is(err, pos.ErrInsufficientCash):
			middleware.Fail(c, apperr.InvalidErr("Amount tendered is less than the total.", nil))
		case errors.Is(err, orders.ErrProductUnavailable):
			middleware.Fail(c, apperr.ConflictErr("A product is no longer available."))
		default:
			middleware.Fail(c, apperr.Wrap(err))
		}
		return
	}

	out := gin.H{
		"order":  res.Order,
		"items":  res.Items,
		"change": res.Change,
	}
	if res.QRString != "" {
		out["payment"] = gin.H{
			"reference":    res.Reference,
			"qr_string":    res.QRString,
			"checkout_url": res.CheckoutURL,
		}
	}
	c.JSON(http.StatusCreated, out)
}

// GET /api/pos/summary?date=2025-09-01
func (h *POSHandler) Summary(c *gin.Context) {
	day := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.ParseInLocation("2006-01-02", d, time.Local)
		if err != nil {
			middleware.Fail(c, apperr.InvalidErr("Invalid date, expected YYYY-MM-DD.", nil))
			return
		}
		day = parsed
	}

	sum, err := h.POS.Summary(c.Request.Context(), day)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, sum)
}
