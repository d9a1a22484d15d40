package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dianlent/apotik-online-sub001/internal/http/middleware"
	"github.com/dianlent/apotik-online-sub001/internal/http/validation"
	"github.com/dianlent/apotik-online-sub001/internal/modules/payments"
	"github.com/dianlent/apotik-online-sub001/internal/modules/settings"
	"github.com/dianlent/apotik-online-sub001/internal/qr"
	"github.com/dianlent/apotik-online-sub001/internal/shared/apperr"
)

type PaymentHandler struct {
	Payments *payments.Service
}

func NewPaymentHandler(svc *payments.Service) *PaymentHandler {
	return &PaymentHandler{Payments: svc}
}

type createPaymentInput struct {
	OrderID        string `json:"orderId" binding:"required,max=32"`
	Amount         int    `json:"amount" binding:"required,gt=0"`
	CustomerName   string `json:"customerName" binding:"required,max=100"`
	CustomerEmail  string `json:"customerEmail" binding:"omitempty,email,max=255"`
	ProductDetails string `json:"productDetails" binding:"required,max=255"`
}

// POST /api/payments
// Opens a QRIS transaction for a pending order. Validation failures reject
// with 400 before any external call; gateway failures normalize to
// {success:false, error} and are never retried here.
func (h *PaymentHandler) Create(c *gin.Context) {
	var in createPaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid payment request.",
			"fields":  validation.FromBindError(err, &in),
		})
		return
	}

	res, err := h.Payments.CreateCharge(c.Request.Context(), payments.ChargeInput{
		OrderID:        in.OrderID,
		Amount:         in.Amount,
		CustomerName:   in.CustomerName,
		CustomerEmail:  in.CustomerEmail,
		ProductDetails: in.ProductDetails,
	})
	if err != nil {
		status, msg := chargeError(err)
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"qr_string":    res.QRString,
			"checkout_url": res.CheckoutURL,
			"reference":    res.Reference,
			"amount":       res.Amount,
		},
	})
}

func chargeError(err error) (int, string) {
	var ge *payments.GatewayError
	switch {
	case errors.Is(err, payments.ErrUnknownOrder):
		return http.StatusNotFound, "Order not found."
	case errors.Is(err, payments.ErrOrderNotPayable):
		return http.StatusConflict, "Order is not payable."
	case errors.Is(err, payments.ErrAmountMismatch):
		return http.StatusBadRequest, "Amount does not match the order total."
	case errors.Is(err, settings.ErrNotConfigured), errors.Is(err, payments.ErrUnknownGateway):
		return http.StatusInternalServerError, "Payment gateway is not configured."
	case errors.As(err, &ge):
		return http.StatusBadGateway, "Payment gateway rejected the transaction."
	default:
		return http.StatusInternalServerError, "Failed to create payment."
	}
}

// GET /api/payments/status?reference=<order_number>
// The advisory polling read. Reports the persisted state only; repeated
// calls with no intervening callback return identical results.
func (h *PaymentHandler) Status(c *gin.Context) {
	ref := c.Query("reference")
	if ref == "" {
		middleware.Fail(c, apperr.InvalidErr("reference is required", nil))
		return
	}

	res, err := h.Payments.Status(c.Request.Context(), ref)
	if err != nil {
		if errors.Is(err, payments.ErrUnknownOrder) {
			middleware.Fail(c, apperr.NotFoundErr("Unknown reference."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/payments/qr?reference=<order_number>
// QR PNG for the POS display.
func (h *PaymentHandler) QR(c *gin.Context) {
	ref := c.Query("reference")
	if ref == "" {
		middleware.Fail(c, apperr.InvalidErr("reference is required", nil))
		return
	}

	payload, err := h.Payments.QRPayload(c.Request.Context(), ref)
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("No QR available for this reference."))
		return
	}

	png, err := qr.PNG(payload, 256)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
