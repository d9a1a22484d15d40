package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dianlent/apotik-online-sub001/internal/http/middleware"
	"github.com/dianlent/apotik-online-sub001/internal/http/validation"
	"github.com/dianlent/apotik-online-sub001/internal/modules/catalog"
	"github.com/dianlent/apotik-online-sub001/internal/shared/apperr"
	"github.com/dianlent/apotik-online-sub001/internal/shared/slug"
)

type CategoryHandler struct {
	Catalog *catalog.Repo
}

func NewCategoryHandler(repo *catalog.Repo) *CategoryHandler {
	return &CategoryHandler{Catalog: repo}
}

func (h *CategoryHandler) List(c *gin.Context) {
	items, err := h.Catalog.ListCategories(c.Request.Context())
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

type categoryInput struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Slug        string `json:"slug" binding:"omitempty,min=2,max=120"`
	Description string `json:"description" binding:"omitempty,max=255"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid category data.", validation.FromBindError(err, &in)))
		return
	}

	if in.Slug == "" {
		in.Slug = slug.FromName(in.Name)
	}

	cat, err := h.Catalog.CreateCategory(c.Request.Context(), in.Name, in.Slug, in.Description)
	if err != nil {
		if errors.Is(err, catalog.ErrDuplicateSlug) {
			middleware.Fail(c, apperr.ConflictErr("Slug already in use."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"category": cat})
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var in categoryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid category data.", validation.FromBindError(err, &in)))
		return
	}

	if in.Slug == "" {
		in.Slug = slug.FromName(in.Name)
	}

	err := h.Catalog.UpdateCategory(c.Request.Context(), c.Param("id"), in.Name, in.Slug, in.Description)
	if err != nil {
		if errors.Is(err, catalog.ErrDuplicateSlug) {
			middleware.Fail(c, apperr.ConflictErr("Slug already in use."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.Catalog.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
