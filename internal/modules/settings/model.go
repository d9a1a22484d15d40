package settings

import "time"

// KeyGeneral is the single row holding merchant credentials and store info.
const KeyGeneral = "general"

const (
	GatewayDuitku = "duitku"
	GatewayTripay = "tripay"
)

type Settings struct {
	Key           string    `gorm:"column:setting_key;type:varchar(32);primaryKey" json:"key"`
	ActiveGateway string    `gorm:"type:varchar(32);not null;default:'duitku'" json:"active_gateway"`
	MerchantCode  string    `gorm:"type:varchar(64);not null" json:"merchant_code"`
	APIKey        string    `gorm:"column:api_key;type:varchar(128);not null" json:"api_key"`
	PrivateKey    string    `gorm:"type:varchar(128);not null" json:"private_key"`
	Sandbox       bool      `gorm:"not null;default:true" json:"sandbox"`
	CallbackURL   string    `gorm:"type:varchar(255);not null" json:"callback_url"`
	ReturnURL     string    `gorm:"type:varchar(255);not null" json:"return_url"`
	StoreName     string    `gorm:"type:varchar(128);not null;default:''" json:"store_name"`
	StoreAddress  string    `gorm:"type:varchar(255);not null;default:''" json:"store_address"`
	UpdatedAt     time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Settings) TableName() string { return "settings" }
