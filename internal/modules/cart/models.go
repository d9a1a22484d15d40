package cart

import (
	"time"

	"github.com/dianlent/apotik-online-sub001/internal/modules/catalog"
)

type Cart struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	MemberID  string    `gorm:"type:char(36);not null;uniqueIndex:ux_carts_member_id" json:"member_id"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`

	Items []CartItem `gorm:"foreignKey:CartID" json:"items"`
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	ID        string    `gorm:"type:char(36);primaryKey" json:"id"`
	CartID    string    `gorm:"type:char(36);not null;uniqueIndex:ux_cart_items_cart_product,priority:1" json:"cart_id"`
	ProductID string    `gorm:"type:char(36);not null;uniqueIndex:ux_cart_items_cart_product,priority:2" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`

	Product catalog.Product `gorm:"foreignKey:ProductID" json:"product"`
}

func (CartItem) TableName() string { return "cart_items" }
