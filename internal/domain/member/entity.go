// internal/domain/member/entity.go
package member

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Member represents the member entity
type Member struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Email       string         `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password    string         `gorm:"not null;size:255" json:"-"` // Don't return in JSON
	Name        string         `gorm:"size:100" json:"name"`
	IsActive    bool           `gorm:"default:true" json:"is_active"`
	IsAdmin     bool           `gorm:"default:false" json:"is_admin"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Member) TableName() string {
	return "members"
}

// BeforeCreate hook to normalize data before member creation
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	m.Email = strings.ToLower(m.Email)
	return nil
}

// GetDisplayName returns display name (name or email)
func (m *Member) GetDisplayName() string {
	if m.Name != "" {
		return m.Name
	}
	return m.Email
}
