package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User holds one account. Exactly one of Phone or Email is set; which column
// holds the handle is decided by format classification at registration and
// never changes.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Phone        *string        `gorm:"size:20;uniqueIndex" json:"-"`
	Email        *string        `gorm:"size:255;uniqueIndex" json:"-"`
	PasswordHash string         `gorm:"not null" json:"-"`
	Nickname     *string        `gorm:"size:100" json:"nickname,omitempty"`
	Avatar       *string        `gorm:"size:500" json:"avatar,omitempty"`
	Role         string         `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Account returns the contact handle, whichever column holds it.
func (u *User) Account() string {
	if u.Phone != nil {
		return *u.Phone
	}
	if u.Email != nil {
		return *u.Email
	}
	return ""
}
