package models

import (
	"time"

	"github.com/google/uuid"

	dbtypes "github.com/lucifer43562/wastelink-backend/pkg/db/types"
	"github.com/lucifer43562/wastelink-backend/pkg/enums"
)

// WasteRequest is a customer's pickup request moving through the
// pending/accepted/completed lifecycle. Customer name and email are
// denormalized snapshots taken at creation time.
type WasteRequest struct {
	ID            uuid.UUID           `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID           `gorm:"type:uuid;column:customer_id;not null;index"`
	CustomerName  string              `gorm:"column:customer_name;not null"`
	CustomerEmail string              `gorm:"column:customer_email;not null"`
	WasteType     string              `gorm:"column:waste_type;not null"`
	Quantity      string              `gorm:"column:quantity;not null"`
	Location      string              `gorm:"column:location;not null"`
	Description   string              `gorm:"column:description;not null"`
	Images        dbtypes.StringArray `gorm:"type:text;column:images;not null"`
	Status        enums.RequestStatus `gorm:"type:text;column:status;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
