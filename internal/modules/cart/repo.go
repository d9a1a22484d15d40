package cart

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dianlent/apotik-online-sub001/internal/modules/catalog"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrInsufficientStock = errors.New("requested quantity exceeds stock")
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetOrCreate(ctx context.Context, memberID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Where(Cart{MemberID: memberID}).
		Attrs(Cart{ID: uuid.NewString(), CreatedAt: time.Now()}).
		FirstOrCreate(&c).Error
	return c, err
}

func (r *Repo) GetWithItems(ctx context.Context, cartID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Product").
		First(&c, "id = ?", cartID).Error
	return c, err
}

// AddItem upserts a line and clamps against current stock. This is the loose
// cart-time check; the authoritative check happens inside the order tx.
func (r *Repo) AddItem(ctx context.Context, cartID, productID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	var p catalog.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ? AND status = ?", productID, catalog.StatusActive).Error; err != nil {
		return err
	}

	var existing CartItem
	err := r.db.WithContext(ctx).
		First(&existing, "cart_id = ? AND product_id = ?", cartID, productID).Error
	switch {
	case err == nil:
		newQty := existing.Quantity + qty
		if newQty > p.Stock {
			return ErrInsufficientStock
		}
		return r.db.WithContext(ctx).Model(&CartItem{}).
			Where("id = ?", existing.ID).
			Update("quantity", newQty).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		if qty > p.Stock {
			return ErrInsufficientStock
		}
		item := CartItem{
			ID:        uuid.NewString(),
			CartID:    cartID,
			ProductID: productID,
			Quantity:  qty,
			CreatedAt: time.Now(),
		}
		return r.db.WithContext(ctx).Create(&item).Error
	default:
		return err
	}
}

func (r *Repo) UpdateItemQty(ctx context.Context, cartID, productID string, qty int) error {
	if qty <= 0 {
		return r.RemoveItem(ctx, cartID, productID)
	}

	var p catalog.Product
	if err := r.db.WithContext(ctx).First(&p, "id = ?", productID).Error; err != nil {
		return err
	}
	if qty > p.Stock {
		return ErrInsufficientStock
	}

	return r.db.WithContext(ctx).Model(&CartItem{}).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Update("quantity", qty).Error
}

func (r *Repo) RemoveItem(ctx context.Context, cartID, productID string) error {
	return r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&CartItem{}).Error
}

func (r *Repo) Clear(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Where("cart_id = ?", cartID).Delete(&CartItem{}).Error
}
