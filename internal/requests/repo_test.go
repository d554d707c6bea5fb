package requests

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucifer43562/wastelink-backend/pkg/db/models"
	dbtypes "github.com/lucifer43562/wastelink-backend/pkg/db/types"
	"github.com/lucifer43562/wastelink-backend/pkg/enums"
	"github.com/lucifer43562/wastelink-backend/pkg/pagination"
)

func setupRequestsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:requestsrepo?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	wasteRequests := `
CREATE TABLE IF NOT EXISTS waste_requests (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  customer_name TEXT NOT NULL,
  customer_email TEXT NOT NULL,
  waste_type TEXT NOT NULL,
  quantity TEXT NOT NULL,
  location TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  images TEXT NOT NULL DEFAULT '[]',
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(wasteRequests).Error)
	return db
}

func newWasteRequest(t *testing.T, db *gorm.DB, customerID uuid.UUID, status enums.RequestStatus, created time.Time) *models.WasteRequest {
	t.Helper()

	request := &models.WasteRequest{
		ID:            uuid.New(),
		CustomerID:    customerID,
		CustomerName:  "Test Customer",
		CustomerEmail: "customer@example.com",
		WasteType:     "Electronic Waste",
		Quantity:      "5 kg",
		Location:      "12 Elm St",
		Images:        dbtypes.StringArray{},
		Status:        status,
		CreatedAt:     created,
		UpdatedAt:     created,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func TestRepositoryListFiltersByCustomer(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	other := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	newWasteRequest(t, db, owner, enums.RequestStatusPending, base)
	newWasteRequest(t, db, owner, enums.RequestStatusAccepted, base.Add(time.Minute))
	newWasteRequest(t, db, other, enums.RequestStatusPending, base.Add(2*time.Minute))

	entries, next, err := repo.List(ctx, listRequestsParams{CustomerID: &owner})
	require.NoError(t, err)
	assert.Nil(t, next)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, owner, entry.CustomerID)
	}
}

func TestRepositoryListFiltersByStatus(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	newWasteRequest(t, db, customer, enums.RequestStatusPending, base)
	accepted := newWasteRequest(t, db, customer, enums.RequestStatusAccepted, base.Add(time.Minute))

	status := enums.RequestStatusAccepted
	entries, _, err := repo.List(ctx, listRequestsParams{CustomerID: &customer, Status: &status})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, accepted.ID, entries[0].ID)
}

func TestRepositoryListPaginates(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := uuid.New()
	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		newWasteRequest(t, db, customer, enums.RequestStatusPending, base.Add(time.Duration(i)*time.Minute))
	}

	firstPage, next, err := repo.List(ctx, listRequestsParams{CustomerID: &customer, Limit: 2})
	require.NoError(t, err)
	require.Len(t, firstPage, 2)
	require.NotNil(t, next)

	// newest first
	assert.True(t, firstPage[0].CreatedAt.After(firstPage[1].CreatedAt))

	secondPage, _, err := repo.List(ctx, listRequestsParams{
		CustomerID: &customer,
		Limit:      2,
		Cursor:     &pagination.Cursor{CreatedAt: next.CreatedAt, ID: next.ID},
	})
	require.NoError(t, err)
	require.Len(t, secondPage, 2)
	for _, entry := range secondPage {
		assert.NotEqual(t, firstPage[0].ID, entry.ID)
		assert.NotEqual(t, firstPage[1].ID, entry.ID)
	}
}

func TestRepositoryTransitionStatusGuardsPredecessor(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	request := newWasteRequest(t, db, uuid.New(), enums.RequestStatusPending, time.Now().UTC())
	now := time.Now().UTC()

	applied, err := repo.TransitionStatus(ctx, request.ID, enums.RequestStatusPending, enums.RequestStatusAccepted, now)
	require.NoError(t, err)
	assert.True(t, applied)

	// guard: predecessor no longer matches
	applied, err = repo.TransitionStatus(ctx, request.ID, enums.RequestStatusPending, enums.RequestStatusAccepted, now)
	require.NoError(t, err)
	assert.False(t, applied)

	stored, err := repo.FindByID(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.RequestStatusAccepted, stored.Status)
}

func TestRepositoryDelete(t *testing.T) {
	db := setupRequestsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	request := newWasteRequest(t, db, uuid.New(), enums.RequestStatusCompleted, time.Now().UTC())

	deleted, err := repo.Delete(ctx, request.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, request.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.FindByID(ctx, request.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
