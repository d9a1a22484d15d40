package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dianlent/apotik-online-sub001/internal/modules/payments"
)

type CallbackHandler struct {
	Logger     *slog.Logger
	Payments   *payments.Service
	WebhookSvc *payments.WebhookService
}

func NewCallbackHandler(logger *slog.Logger, psvc *payments.Service, wsvc *payments.WebhookService) *CallbackHandler {
	return &CallbackHandler{Logger: logger, Payments: psvc, WebhookSvc: wsvc}
}

// POST /api/payments/callback/:provider
// Raw JSON body; signature verified against fresh merchant settings.
// Responds 200 even on benign internal skips so the provider does not enter a
// retry storm; 401 on bad signature; 500 on hard errors so it retries.
func (h *CallbackHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid body"})
		return
	}

	provider, err := h.Payments.ProviderByName(c.Request.Context(), c.Param("provider"))
	if err != nil {
		if errors.Is(err, payments.ErrUnknownGateway) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "unknown provider"})
			return
		}
		h.Logger.Error("callback: settings load failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}

	ev, err := provider.VerifyCallback(c.Request.Header, body)
	if err != nil {
		if errors.Is(err, payments.ErrSignatureMismatch) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "invalid signature"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid payload"})
		return
	}

	if err := h.WebhookSvc.Handle(c.Request.Context(), provider.Name(), ev, body); err != nil {
		if errors.Is(err, payments.ErrUnknownOrder) {
			// benign: acknowledge so the provider stops retrying
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "order not found"})
			return
		}
		h.Logger.Error("callback apply failed", "provider", provider.Name(), "order", ev.MerchantOrderID, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
}
