package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucifer43562/wastelink-backend/pkg/enums"
)

// User represents the canonical identity entity for both marketplace roles.
type User struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Email        string            `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	Role         enums.AccountRole `gorm:"type:text;not null"`
	Name         string            `gorm:"column:name;not null"`
	Phone        *string           `gorm:"column:phone"`
	Address      *string           `gorm:"column:address"`
	IsActive     bool              `gorm:"column:is_active;not null;default:true"`
	LastLoginAt  *time.Time        `gorm:"column:last_login_at"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
