package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/lucifer43562/wastelink-backend/pkg/db/types"
)

// Company is a catalog entry the locator ranks for "nearby" results.
// BaseDistanceKM anchors the randomized distance until a real geo query
// replaces the placeholder ranking.
type Company struct {
	ID             uuid.UUID           `gorm:"type:uuid;primaryKey"`
	Name           string              `gorm:"column:name;not null;uniqueIndex"`
	Rating         float64             `gorm:"column:rating;not null"`
	Services       dbtypes.StringArray `gorm:"type:text;column:services;not null"`
	BaseDistanceKM float64             `gorm:"column:base_distance_km;not null"`
	CreatedAt      time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
