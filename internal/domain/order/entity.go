// internal/domain/order/entity.go
package order

import (
	"time"
)

// Order records a purchase of a product option. Creation and update
// timestamps are stamped explicitly at the write boundary rather than
// by ORM hooks.
type Order struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	MemberID        uint      `gorm:"not null;index" json:"member_id"`
	ProductOptionID uint      `gorm:"not null;index" json:"product_option_id"`
	Quantity        int       `gorm:"not null;default:1" json:"quantity"`
	Message         string    `gorm:"size:500" json:"message"`
	CreatedAt       time.Time `gorm:"autoCreateTime:false" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false" json:"updated_at"`
}

// TableName overrides the table name
func (Order) TableName() string {
	return "orders"
}
