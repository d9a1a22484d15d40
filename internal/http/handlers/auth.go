package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dianlent/apotik-online-sub001/internal/http/middleware"
	"github.com/dianlent/apotik-online-sub001/internal/http/validation"
	"github.com/dianlent/apotik-online-sub001/internal/modules/members"
	"github.com/dianlent/apotik-online-sub001/internal/shared/apperr"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	Members   *members.Service
	JWTSecret string
}

func NewAuthHandler(svc *members.Service, secret string) *AuthHandler {
	return &AuthHandler{Members: svc, JWTSecret: secret}
}

type registerInput struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var in registerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid registration data.", validation.FromBindError(err, &in)))
		return
	}

	m, err := h.Members.Register(c.Request.Context(), members.RegisterInput{
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
		Phone:    in.Phone,
	})
	if err != nil {
		if errors.Is(err, members.ErrEmailTaken) {
			middleware.Fail(c, apperr.ConflictErr("Email already registered."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	token, err := members.IssueToken(h.JWTSecret, m, tokenTTL)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "member": m})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var in loginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid login data.", validation.FromBindError(err, &in)))
		return
	}

	m, err := h.Members.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		if errors.Is(err, members.ErrInvalidCredentials) {
			middleware.Fail(c, apperr.UnauthorizedErr("Invalid email or password."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	token, err := members.IssueToken(h.JWTSecret, m, tokenTTL)
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "member": m})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	claims, _ := middleware.CurrentMember(c)

	m, err := h.Members.Get(c.Request.Context(), claims.MemberID)
	if err != nil {
		middleware.Fail(c, apperr.NotFoundErr("Member not found."))
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": m})
}

type updateProfileInput struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Phone string `json:"phone" binding:"omitempty,max=32"`
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims, _ := middleware.CurrentMember(c)

	var in updateProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid profile data.", validation.FromBindError(err, &in)))
		return
	}

	if err := h.Members.UpdateProfile(c.Request.Context(), claims.MemberID, members.UpdateProfileInput{
		Name:  in.Name,
		Phone: in.Phone,
	}); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
