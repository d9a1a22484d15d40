package payments

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusSucceeded = "succeeded"
)

// Payment is the gateway-side audit record. Created only when a callback
// reports a successful payment; the raw payload is retained for audit.
type Payment struct {
	ID            string         `gorm:"type:char(36);primaryKey" json:"id"`
	Reference     string         `gorm:"type:varchar(128);not null;uniqueIndex:ux_payments_reference" json:"reference"`
	OrderID       string         `gorm:"type:char(36);not null;index:ix_payments_order_id" json:"order_id"`
	Provider      string         `gorm:"type:varchar(32);not null" json:"provider"`
	Amount        int            `gorm:"not null" json:"amount"`
	PaymentMethod string         `gorm:"type:varchar(32);not null;default:''" json:"payment_method"`
	Status        string         `gorm:"type:varchar(32);not null" json:"status"`
	PaidAt        *time.Time     `gorm:"type:datetime(3)" json:"paid_at"`
	RawPayload    datatypes.JSON `gorm:"type:json" json:"-"`
	CreatedAt     time.Time      `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }
