package requests

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucifer43562/wastelink-backend/pkg/db/models"
	"github.com/lucifer43562/wastelink-backend/pkg/enums"
)

// CreateRequestBody is the payload accepted by the create endpoint. The customer
// identity is taken from the session, never from the body. Image entries are
// stored verbatim (URLs or inline data strings), capped per entry.
type CreateRequestBody struct {
	WasteType   string   `json:"waste_type" validate:"required"`
	Quantity    string   `json:"quantity" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Description string   `json:"description,omitempty"`
	Images      []string `json:"images,omitempty" validate:"max=5,dive,max=1048576"`
}

// UpdateStatusBody carries the target status for a company transition.
type UpdateStatusBody struct {
	Status string `json:"status" validate:"required,oneof=accepted completed"`
}

// Actor identifies the authenticated account performing an operation.
type Actor struct {
	UserID uuid.UUID
	Role   enums.AccountRole
}

// ListFilters describe the inputs supported by the request list.
type ListFilters struct {
	Status *enums.RequestStatus
	Limit  int
	Cursor string
}

// WasteRequestDTO is the transport shape for a ledger entry.
type WasteRequestDTO struct {
	ID            uuid.UUID           `json:"id"`
	CustomerID    uuid.UUID           `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	CustomerEmail string              `json:"customer_email"`
	WasteType     string              `json:"waste_type"`
	Quantity      string              `json:"quantity"`
	Location      string              `json:"location"`
	Description   string              `json:"description,omitempty"`
	Images        []string            `json:"images"`
	Status        enums.RequestStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// RequestList wraps the paginated entries plus the next page cursor.
type RequestList struct {
	Requests   []WasteRequestDTO `json:"requests"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func fromModel(m *models.WasteRequest) WasteRequestDTO {
	images := []string(m.Images)
	if images == nil {
		images = []string{}
	}
	return WasteRequestDTO{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		CustomerName:  m.CustomerName,
		CustomerEmail: m.CustomerEmail,
		WasteType:     m.WasteType,
		Quantity:      m.Quantity,
		Location:      m.Location,
		Description:   m.Description,
		Images:        images,
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
