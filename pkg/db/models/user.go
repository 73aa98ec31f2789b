package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents the canonical identity entity.
type User struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	FullName      string    `gorm:"column:full_name;not null"`
	Email         string    `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash  string    `gorm:"column:password_hash;not null"`
	ContactNumber *string   `gorm:"column:contact_number"`
	Address       *string   `gorm:"column:address"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
