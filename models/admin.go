package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin is a back-office account. Admins are created only by the
// create-admin maintenance tool, never through the public API, and every
// admin has identical, unrestricted access.
type Admin struct {
	ID        string    `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	Username  string    `gorm:"column:username;uniqueIndex;size:64;not null" json:"username"`
	Email     string    `gorm:"column:email;uniqueIndex;size:191;not null" json:"email"`
	Password  string    `gorm:"column:password;not null" json:"-"` // bcrypt hash
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(*gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
