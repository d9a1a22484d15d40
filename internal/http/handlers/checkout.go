package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dianlent/apotik-online-sub001/internal/http/middleware"
	"github.com/dianlent/apotik-online-sub001/internal/http/validation"
	cartmod "github.com/dianlent/apotik-online-sub001/internal/modules/cart"
	"github.com/dianlent/apotik-online-sub001/internal/modules/members"
	"github.com/dianlent/apotik-online-sub001/internal/modules/orders"
	"github.com/dianlent/apotik-online-sub001/internal/shared/apperr"
)

type CheckoutHandler struct {
	Cart    *cartmod.Repo
	Members *members.Service
	Orders  *orders.Service
}

func NewCheckoutHandler(cart *cartmod.Repo, msvc *members.Service, osvc *orders.Service) *CheckoutHandler {
	return &CheckoutHandler{Cart: cart, Members: msvc, Orders: osvc}
}

type checkoutInput struct {
	ShippingAddress    string `json:"shipping_address" binding:"required,min=5,max=255"`
	ShippingCity       string `json:"shipping_city" binding:"required,min=2,max=100"`
	ShippingPostalCode string `json:"shipping_postal_code" binding:"required,min=2,max=16"`
	ShippingCost       int    `json:"shipping_cost" binding:"gte=0"`
	Phone              string `json:"phone" binding:"required,min=5,max=32"`
}

// POST /api/checkout
// Turns the member's cart into an order. Order, items and stock decrement
// commit as one transaction; the cart is cleared afterwards. Payment is
// opened separately through POST /api/payments.
func (h *CheckoutHandler) Post(c *gin.Context) {
	claims, _ := middleware.CurrentMember(c)

	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid checkout data.", validation.FromBindError(err, &in)))
		return
	}

	m, err := h.Members.Get(c.Request.Context(), claims.MemberID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	crt, err := h.Cart.GetOrCreate(c.Request.Context(), claims.MemberID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	full, err := h.Cart.GetWithItems(c.Request.Context(), crt.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	if len(full.Items) == 0 {
		middleware.Fail(c, apperr.InvalidErr("Your cart is empty.", nil))
		return
	}

	lines := make([]orders.OrderLine, len(full.Items))
	for i, it := range full.Items {
		lines[i] = orders.OrderLine{ProductID: it.ProductID, Qty: it.Quantity}
	}

	memberID := claims.MemberID
	res, err := h.Orders.CreateOrder(c.Request.Context(), orders.CreateOrderInput{
		MemberID:           &memberID,
		CustomerName:       m.Name,
		CustomerEmail:      m.Email,
		CustomerPhone:      in.Phone,
		Lines:              lines,
		ShippingAddress:    in.ShippingAddress,
		ShippingCity:       in.ShippingCity,
		ShippingPostalCode: in.ShippingPostalCode,
		ShippingCost:       in.ShippingCost,
		PaymentMethod:      "qris",
		Source:             orders.SourceStore,
	})
	if err != nil {
		var oos *orders.OutOfStockError
		if errors.As(err, &oos) {
			middleware.Fail(c, apperr.ConflictErr("Some items are out of stock."))
			return
		}
		if errors.Is(err, orders.ErrProductUnavailable) {
			middleware.Fail(c, apperr.ConflictErr("A product in your cart is no longer available."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	// cart clear is best-effort; the order already committed
	_ = h.Cart.Clear(c.Request.Context(), crt.ID)

	c.JSON(http.StatusCreated, gin.H{"order": res.Order, "items": res.Items})
}
