package members

import "time"

const (
	RoleMember  = "member"
	RoleCashier = "cashier"
	RoleAdmin   = "admin"
)

type Member struct {
	ID           string    `gorm:"type:char(36);primaryKey" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_members_email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Phone        string    `gorm:"type:varchar(32);not null;default:''" json:"phone"`
	Role         string    `gorm:"type:varchar(16);not null;default:'member'" json:"role"`
	CreatedAt    time.Time `gorm:"type:datetime(3);not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"type:datetime(3);not null" json:"updated_at"`
}

func (Member) TableName() string { return "members" }
