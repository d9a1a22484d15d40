package catalog

import "time"

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Category struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(120);not null;uniqueIndex:ux_categories_slug" json:"slug"`
	Description string    `gorm:"type:varchar(255);not null;default:''" json:"description"`
	CreatedAt   time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

type Product struct {
	ID          string `gorm:"type:char(36);primaryKey" json:"id"`
	CategoryID  string `gorm:"type:char(36);not null;index:ix_products_category_id" json:"category_id"`
	SKU         string `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:ux_products_sku" json:"sku"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Slug        string `gorm:"type:varchar(255);not null;uniqueIndex:ux_products_slug" json:"slug"`
	Description string `gorm:"type:text" json:"description"`

	// Price in whole rupiah; QRIS gateways reject fractional amounts.
	Price int `gorm:"not null" json:"price"`
	Stock int `gorm:"not null;default:0" json:"stock"`

	RequiresPrescription bool   `gorm:"not null;default:false" json:"requires_prescription"`
	ImageURL             string `gorm:"type:varchar(255);not null;default:''" json:"image_url"`
	Status               string `gorm:"type:varchar(16);not null;default:'active'" json:"status"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
