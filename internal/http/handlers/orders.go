package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dianlent/apotik-online-sub001/internal/http/middleware"
	"github.com/dianlent/apotik-online-sub001/internal/http/validation"
	"github.com/dianlent/apotik-online-sub001/internal/modules/orders"
	"github.com/dianlent/apotik-online-sub001/internal/shared/apperr"
)

type OrderHandler struct {
	Orders *orders.Repo
	Admin  *orders.AdminService
}

func NewOrderHandler(repo *orders.Repo, admin *orders.AdminService) *OrderHandler {
	return &OrderHandler{Orders: repo, Admin: admin}
}

// GET /api/orders
// Lists the authenticated member's order history.
func (h *OrderHandler) List(c *gin.Context) {
	claims, _ := middleware.CurrentMember(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	res, err := h.Orders.List(c.Request.Context(), orders.ListParams{
		MemberID:      claims.MemberID,
		PaymentStatus: c.Query("payment_status"),
		Page:          page,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res.Items, "total": res.Total})
}

// GET /api/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	claims, _ := middleware.CurrentMember(c)

	o, items, err := h.Orders.GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	// members see only their own orders
	if o.MemberID == nil || *o.MemberID != claims.MemberID {
		middleware.Fail(c, apperr.NotFoundErr("Order not found."))
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o, "items": items})
}

// GET /api/admin/orders
func (h *OrderHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	res, err := h.Orders.List(c.Request.Context(), orders.ListParams{
		PaymentStatus: c.Query("payment_status"),
		OrderStatus:   c.Query("order_status"),
		Source:        c.Query("source"),
		Page:          page,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res.Items, "total": res.Total})
}

// GET /api/admin/orders/:id
func (h *OrderHandler) AdminGet(c *gin.Context) {
	o, items, err := h.Orders.GetWithItems(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o, "items": items})
}

type transitionInput struct {
	Action string `json:"action" binding:"required,oneof=process ship deliver cancel"`
	Note   string `json:"note" binding:"omitempty,max=255"`
}

// POST /api/admin/orders/:id/transition
// Staff advances order_status.
func (h *OrderHandler) Transition(c *gin.Context) {
	claims, _ := middleware.CurrentMember(c)

	var in transitionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid transition.", validation.FromBindError(err, &in)))
		return
	}

	err := h.Admin.Transition(c.Request.Context(), orders.TransitionInput{
		OrderID: c.Param("id"),
		ActorID: claims.MemberID,
		Action:  in.Action,
		Note:    in.Note,
	})
	if err != nil {
		if errors.Is(err, orders.ErrInvalidTransition) {
			middleware.Fail(c, apperr.ConflictErr("This transition is not allowed from the current status."))
			return
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Order not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
