package companies

import (
	"context"

	"gorm.io/gorm"

	"github.com/lucifer43562/wastelink-backend/pkg/db/models"
)

// Repository exposes read access to the company catalog.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a companies repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListAll returns the full catalog ordered by name.
func (r *Repository) ListAll(ctx context.Context) ([]models.Company, error) {
	var companies []models.Company
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
