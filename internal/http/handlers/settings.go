package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dianlent/apotik-online-sub001/internal/http/middleware"
	"github.com/dianlent/apotik-online-sub001/internal/http/validation"
	"github.com/dianlent/apotik-online-sub001/internal/modules/settings"
	"github.com/dianlent/apotik-online-sub001/internal/shared/apperr"
)

type SettingsHandler struct {
	Settings *settings.Repo
}

func NewSettingsHandler(repo *settings.Repo) *SettingsHandler {
	return &SettingsHandler{Settings: repo}
}

// GET /api/admin/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	s, err := h.Settings.Get(c.Request.Context())
	if err != nil {
		if errors.Is(err, settings.ErrNotConfigured) {
			middleware.Fail(c, apperr.NotFoundErr("Settings not configured yet."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": s})
}

type settingsInput struct {
	ActiveGateway string `json:"active_gateway" binding:"required,oneof=duitku tripay"`
	MerchantCode  string `json:"merchant_code" binding:"required,max=64"`
	APIKey        string `json:"api_key" binding:"required,max=128"`
	PrivateKey    string `json:"private_key" binding:"omitempty,max=128"`
	Sandbox       bool   `json:"sandbox"`
	CallbackURL   string `json:"callback_url" binding:"required,url,max=255"`
	ReturnURL     string `json:"return_url" binding:"required,url,max=255"`
	StoreName     string `json:"store_name" binding:"omitempty,max=128"`
	StoreAddress  string `json:"store_address" binding:"omitempty,max=255"`
}

// PUT /api/admin/settings
func (h *SettingsHandler) Put(c *gin.Context) {
	var in settingsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid settings.", validation.FromBindError(err, &in)))
		return
	}

	err := h.Settings.Upsert(c.Request.Context(), settings.Settings{
		ActiveGateway: in.ActiveGateway,
		MerchantCode:  in.MerchantCode,
		APIKey:        in.APIKey,
		PrivateKey:    in.PrivateKey,
		Sandbox:       in.Sandbox,
		CallbackURL:   in.CallbackURL,
		ReturnURL:     in.ReturnURL,
		StoreName:     in.StoreName,
		StoreAddress:  in.StoreAddress,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
