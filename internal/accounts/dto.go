package accounts

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucifer43562/wastelink-backend/pkg/db/models"
	"github.com/lucifer43562/wastelink-backend/pkg/enums"
)

// AccountDTO is the transport shape that omits sensitive credentials.
type AccountDTO struct {
	ID          uuid.UUID         `json:"id"`
	Email       string            `json:"email"`
	Role        enums.AccountRole `json:"role"`
	Name        string            `json:"name"`
	Phone       *string           `json:"phone,omitempty"`
	Address     *string           `json:"address,omitempty"`
	IsActive    bool              `json:"is_active"`
	LastLoginAt *time.Time        `json:"last_login_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateAccountDTO holds the data required by the repo to persist a new account.
type CreateAccountDTO struct {
	Email        string
	PasswordHash string
	Role         enums.AccountRole
	Name         string
	Phone        *string
	Address      *string
}

func FromModel(u *models.User) *AccountDTO {
	if u == nil {
		return nil
	}

	return &AccountDTO{
		ID:          u.ID,
		Email:       u.Email,
		Role:        u.Role,
		Name:        u.Name,
		Phone:       u.Phone,
		Address:     u.Address,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateAccountDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		Name:         c.Name,
		Phone:        c.Phone,
		Address:      c.Address,
		IsActive:     true,
	}
}
