package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDuplicateSlug = errors.New("slug or sku already in use")

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	Query      string // matches name or sku
	CategoryID string
	Status     string // empty = active only (storefront default)
	Page       int
	PageSize   int
}

type ListResult struct {
	Items []Product
	Total int64
}

func (r *Repo) List(ctx context.Context, in ListParams) (ListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}

	q := r.db.WithContext(ctx).Model(&Product{})

	status := in.Status
	if status == "" {
		status = StatusActive
	}
	if status != "all" {
		q = q.Where("status = ?", status)
	}
	if s := strings.TrimSpace(in.Query); s != "" {
		like := "%" + s + "%"
		q = q.Where("name LIKE ? OR sku LIKE ?", like, like)
	}
	if in.CategoryID != "" {
		q = q.Where("category_id = ?", in.CategoryID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var items []Product
	err := q.Order("name ASC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error
	return ListResult{Items: items, Total: total}, err
}

func (r *Repo) GetBySlug(ctx context.Context, slug string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "slug = ?", slug).Error
	return p, err
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, err
}

type ProductInput struct {
	CategoryID           string
	SKU                  string
	Name                 string
	Slug                 string
	Description          string
	Price                int
	Stock                int
	RequiresPrescription bool
	Status               string
}

func (r *Repo) CreateProduct(ctx context.Context, in ProductInput) (Product, error) {
	now := time.Now()
	p := Product{
		ID:                   uuid.NewString(),
		CategoryID:           in.CategoryID,
		SKU:                  in.SKU,
		Name:                 in.Name,
		Slug:                 in.Slug,
		Description:          in.Description,
		Price:                in.Price,
		Stock:                in.Stock,
		RequiresPrescription: in.RequiresPrescription,
		Status:               in.Status,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		if isDup(err) {
			return Product{}, ErrDuplicateSlug
		}
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) UpdateProduct(ctx context.Context, id string, in ProductInput) error {
	err := r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"category_id":           in.CategoryID,
			"sku":                   in.SKU,
			"name":                  in.Name,
			"slug":                  in.Slug,
			"description":           in.Description,
			"price":                 in.Price,
			"requires_prescription": in.RequiresPrescription,
			"status":                in.Status,
			"updated_at":            time.Now(),
		}).Error
	if isDup(err) {
		return ErrDuplicateSlug
	}
	return err
}

func (r *Repo) SetImageURL(ctx context.Context, id, url string) error {
	return r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"image_url": url, "updated_at": time.Now()}).Error
}

// AdjustStock sets an absolute stock level (admin restock/correction).
// Checkout never uses this; it goes through the conditional decrement.
func (r *Repo) AdjustStock(ctx context.Context, id string, stock int) error {
	return r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{"stock": stock, "updated_at": time.Now()}).Error
}

func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id).Error
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	var items []Category
	err := r.db.WithContext(ctx).Order("name ASC").Find(&items).Error
	return items, err
}

func (r *Repo) CreateCategory(ctx context.Context, name, slug, desc string) (Category, error) {
	now := time.Now()
	cat := Category{
		ID:          uuid.NewString(),
		Name:        name,
		Slug:        slug,
		Description: desc,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&cat).Error; err != nil {
		if isDup(err) {
			return Category{}, ErrDuplicateSlug
		}
		return Category{}, err
	}
	return cat, nil
}

func (r *Repo) UpdateCategory(ctx context.Context, id, name, slug, desc string) error {
	err := r.db.WithContext(ctx).Model(&Category{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        name,
			"slug":        slug,
			"description": desc,
			"updated_at":  time.Now(),
		}).Error
	if isDup(err) {
		return ErrDuplicateSlug
	}
	return err
}

func (r *Repo) DeleteCategory(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Category{}, "id = ?", id).Error
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
