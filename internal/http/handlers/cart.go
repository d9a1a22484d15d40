package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dianlent/apotik-online-sub001/internal/http/middleware"
	"github.com/dianlent/apotik-online-sub001/internal/http/validation"
	cartmod "github.com/dianlent/apotik-online-sub001/internal/modules/cart"
	"github.com/dianlent/apotik-online-sub001/internal/shared/apperr"
)

type CartHandler struct {
	Cart *cartmod.Repo
}

func NewCartHandler(repo *cartmod.Repo) *CartHandler {
	return &CartHandler{Cart: repo}
}

func (h *CartHandler) memberCart(c *gin.Context) (cartmod.Cart, bool) {
	claims, _ := middleware.CurrentMember(c)
	crt, err := h.Cart.GetOrCreate(c.Request.Context(), claims.MemberID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return cartmod.Cart{}, false
	}
	return crt, true
}

// GET /api/cart
func (h *CartHandler) Get(c *gin.Context) {
	crt, ok := h.memberCart(c)
	if !ok {
		return
	}

	full, err := h.Cart.GetWithItems(c.Request.Context(), crt.ID)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	total := 0
	for _, it := range full.Items {
		total += it.Quantity * it.Product.Price
	}
	c.JSON(http.StatusOK, gin.H{"cart": full, "total": total})
}

type cartItemInput struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var in cartItemInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid cart item.", validation.FromBindError(err, &in)))
		return
	}

	crt, ok := h.memberCart(c)
	if !ok {
		return
	}

	if err := h.Cart.AddItem(c.Request.Context(), crt.ID, in.ProductID, in.Quantity); err != nil {
		if errors.Is(err, cartmod.ErrInsufficientStock) {
			middleware.Fail(c, apperr.ConflictErr("Not enough stock for this product."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type cartQtyInput struct {
	Quantity int `json:"quantity" binding:"gte=0"`
}

// PUT /api/cart/items/:product_id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var in cartQtyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid quantity.", validation.FromBindError(err, &in)))
		return
	}

	crt, ok := h.memberCart(c)
	if !ok {
		return
	}

	if err := h.Cart.UpdateItemQty(c.Request.Context(), crt.ID, c.Param("product_id"), in.Quantity); err != nil {
		if errors.Is(err, cartmod.ErrInsufficientStock) {
			middleware.Fail(c, apperr.ConflictErr("Not enough stock for this product."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/cart/items/:product_id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	crt, ok := h.memberCart(c)
	if !ok {
		return
	}
	if err := h.Cart.RemoveItem(c.Request.Context(), crt.ID, c.Param("product_id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/cart
func (h *CartHandler) Clear(c *gin.Context) {
	crt, ok := h.memberCart(c)
	if !ok {
		return
	}
	if err := h.Cart.Clear(c.Request.Context(), crt.ID); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
