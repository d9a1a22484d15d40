package orders

import (
	"context"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

type ListParams struct {
	MemberID      string // empty = all (admin)
	PaymentStatus string
	OrderStatus   string
	Source        string
	Page          int
	PageSize      int
}

type ListResult struct {
	Items []Order
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

	q := r.db.WithContext(ctx).Model(&Order{})
	if in.MemberID != "" {
		q = q.Where("member_id = ?", in.MemberID)
	}
	if s := strings.TrimSpace(in.PaymentStatus); s != "" {
		q = q.Where("payment_status = ?", s)
	}
	if s := strings.TrimSpace(in.OrderStatus); s != "" {
		q = q.Where("order_status = ?", s)
	}
	if s := strings.TrimSpace(in.Source); s != "" {
		q = q.Where("source = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListResult{}, err
	}

	var items []Order
	err := q.Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error
	return ListResult{Items: items, Total: total}, err
}

func (r *Repo) Get(ctx context.Context, id string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	return o, err
}

func (r *Repo) GetByOrderNumber(ctx context.Context, orderNumber string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "order_number = ?", orderNumber).Error
	return o, err
}

func (r *Repo) GetWithItems(ctx context.Context, id string) (Order, []OrderItem, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items, "order_id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}
