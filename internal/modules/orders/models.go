package orders

import "time"

// payment_status moves forward only: pending -> paid | failed | expired.
// Once paid it is never reverted by the reconciliation flow.
const (
	PaymentPending = "pending"
	PaymentPaid    = "paid"
	PaymentFailed  = "failed"
	PaymentExpired = "expired"
)

// order_status is independent of payment_status and advanced manually by
// staff, except for the initial value set at creation.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

const (
	SourceStore = "store"
	SourcePOS   = "pos"
)

type Order struct {
	ID          string  `gorm:"type:char(36);primaryKey" json:"id"`
	OrderNumber string  `gorm:"type:varchar(32);not null;uniqueIndex:ux_orders_order_number" json:"order_number"`
	MemberID    *string `gorm:"type:char(36);index:ix_orders_member_id" json:"member_id"`

	CustomerName  string `gorm:"type:varchar(100);not null" json:"customer_name"`
	CustomerEmail string `gorm:"type:varchar(255);not null;default:''" json:"customer_email"`
	CustomerPhone string `gorm:"type:varchar(32);not null;default:''" json:"customer_phone"`

	TotalAmount  int `gorm:"not null" json:"total_amount"`
	ShippingCost int `gorm:"not null;default:0" json:"shipping_cost"`

	ShippingAddress    string `gorm:"type:varchar(255);not null;default:''" json:"shipping_address"`
	ShippingCity       string `gorm:"type:varchar(100);not null;default:''" json:"shipping_city"`
	ShippingPostalCode string `gorm:"type:varchar(16);not null;default:''" json:"shipping_postal_code"`

	PaymentMethod string `gorm:"type:varchar(32);not null" json:"payment_method"`
	PaymentStatus string `gorm:"type:varchar(16);not null;default:'pending';index:ix_orders_payment_status" json:"payment_status"`
	OrderStatus   string `gorm:"type:varchar(16);not null;default:'pending'" json:"order_status"`
	Source        string `gorm:"type:varchar(16);not null;default:'store'" json:"source"`

	// Filled once the gateway transaction is opened; lets the status and QR
	// endpoints serve from the persisted row instead of calling the provider.
	GatewayReference *string `gorm:"type:varchar(128)" json:"gateway_reference"`
	QRString         *string `gorm:"type:text" json:"qr_string,omitempty"`

	PaidAt    *time.Time `gorm:"type:datetime(3)" json:"paid_at"`
	CreatedAt time.Time  `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt time.Time  `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID      string `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID string `gorm:"type:char(36);not null;index:ix_order_items_order_id" json:"order_id"`

	ProductID   string `gorm:"type:char(36);not null;index:ix_order_items_product_id" json:"product_id"`
	ProductName string `gorm:"type:varchar(255);not null" json:"product_name"` // snapshot at purchase time
	Price       int    `gorm:"not null" json:"price"`
	Quantity    int    `gorm:"not null" json:"quantity"`
	Subtotal    int    `gorm:"not null" json:"subtotal"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderEvent records staff transitions for the audit trail.
type OrderEvent struct {
	ID         string    `gorm:"type:char(36);primaryKey" json:"id"`
	OrderID    string    `gorm:"type:char(36);not null;index:ix_order_events_order_id" json:"order_id"`
	ActorID    string    `gorm:"type:char(36);not null" json:"actor_id"`
	Action     string    `gorm:"type:varchar(32);not null" json:"action"`
	FromStatus string    `gorm:"type:varchar(16);not null" json:"from_status"`
	ToStatus   string    `gorm:"type:varchar(16);not null" json:"to_status"`
	Note       *string   `gorm:"type:varchar(255)" json:"note"`
	CreatedAt  time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
}

func (OrderEvent) TableName() string { return "order_events" }
