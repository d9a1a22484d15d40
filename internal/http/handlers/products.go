package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dianlent/apotik-online-sub001/internal/http/middleware"
	"github.com/dianlent/apotik-online-sub001/internal/http/validation"
	"github.com/dianlent/apotik-online-sub001/internal/modules/catalog"
	"github.com/dianlent/apotik-online-sub001/internal/shared/apperr"
	"github.com/dianlent/apotik-online-sub001/internal/shared/slug"
	"github.com/dianlent/apotik-online-sub001/internal/storage"
)

const maxImageBytes = 5 << 20

type ProductHandler struct {
	Catalog *catalog.Repo
	Images  storage.Storage
}

func NewProductHandler(repo *catalog.Repo, images storage.Storage) *ProductHandler {
	return &ProductHandler{Catalog: repo, Images: images}
}

// GET /api/products
// Storefront list; only active products.
func (h *ProductHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	res, err := h.Catalog.List(c.Request.Context(), catalog.ListParams{
		Query:      c.Query("q"),
		CategoryID: c.Query("category_id"),
		Page:       page,
		PageSize:   size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res.Items, "total": res.Total})
}

// GET /api/products/:slug
func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.Catalog.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			middleware.Fail(c, apperr.NotFoundErr("Product not found."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": p})
}

// GET /api/admin/products
// Includes inactive products.
func (h *ProductHandler) AdminList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	res, err := h.Catalog.List(c.Request.Context(), catalog.ListParams{
		Query:      c.Query("q"),
		CategoryID: c.Query("category_id"),
		Status:     c.DefaultQuery("status", "all"),
		Page:       page,
		PageSize:   size,
	})
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": res.Items, "total": res.Total})
}

type productInput struct {
	CategoryID           string `json:"category_id" binding:"required,uuid"`
	SKU                  string `json:"sku" binding:"required,max=64"`
	Name                 string `json:"name" binding:"required,min=2,max=255"`
	Slug                 string `json:"slug" binding:"omitempty,min=2,max=255"`
	Description          string `json:"description" binding:"omitempty"`
	Price                int    `json:"price" binding:"required,gt=0"`
	Stock                int    `json:"stock" binding:"gte=0"`
	RequiresPrescription bool   `json:"requires_prescription"`
	Status               string `json:"status" binding:"required,oneof=active inactive"`
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid product data.", validation.FromBindError(err, &in)))
		return
	}

	if in.Slug == "" {
		in.Slug = slug.FromName(in.Name)
	}

	p, err := h.Catalog.CreateProduct(c.Request.Context(), catalog.ProductInput{
		CategoryID:           in.CategoryID,
		SKU:                  in.SKU,
		Name:                 in.Name,
		Slug:                 in.Slug,
		Description:          in.Description,
		Price:                in.Price,
		Stock:                in.Stock,
		RequiresPrescription: in.RequiresPrescription,
		Status:               in.Status,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrDuplicateSlug) {
			middleware.Fail(c, apperr.ConflictErr("Slug or SKU already in use."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": p})
}

func (h *ProductHandler) Update(c *gin.Context) {
	var in productInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid product data.", validation.FromBindError(err, &in)))
		return
	}

	if in.Slug == "" {
		in.Slug = slug.FromName(in.Name)
	}

	err := h.Catalog.UpdateProduct(c.Request.Context(), c.Param("id"), catalog.ProductInput{
		CategoryID:           in.CategoryID,
		SKU:                  in.SKU,
		Name:                 in.Name,
		Slug:                 in.Slug,
		Description:          in.Description,
		Price:                in.Price,
		RequiresPrescription: in.RequiresPrescription,
		Status:               in.Status,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrDuplicateSlug) {
			middleware.Fail(c, apperr.ConflictErr("Slug or SKU already in use."))
			return
		}
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type stockInput struct {
	Stock int `json:"stock" binding:"gte=0"`
}

func (h *ProductHandler) AdjustStock(c *gin.Context) {
	var in stockInput
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Invalid stock value.", validation.FromBindError(err, &in)))
		return
	}
	if err := h.Catalog.AdjustStock(c.Request.Context(), c.Param("id"), in.Stock); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /api/admin/products/:id/image
// Multipart upload via the storage layer.
func (h *ProductHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		middleware.Fail(c, apperr.InvalidErr("Image file is required.", nil))
		return
	}
	if fh.Size > maxImageBytes {
		middleware.Fail(c, apperr.InvalidErr("Image too large (max 5MB).", nil))
		return
	}

	f, err := fh.Open()
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	defer f.Close()

	res, err := h.Images.Put(c.Request.Context(), f, storage.PutInput{
		Scope:       c.Param("id"),
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
	})
	if errors.Is(err, storage.ErrUnsupportedImage) {
		middleware.Fail(c, apperr.InvalidErr("Image must be PNG, JPEG or WebP.", nil))
		return
	}
	if err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}

	if err := h.Catalog.SetImageURL(c.Request.Context(), c.Param("id"), res.URL); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": res.URL})
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Catalog.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		middleware.Fail(c, apperr.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
