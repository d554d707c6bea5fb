package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucifer43562/wastelink-backend/pkg/db/models"
	dbtypes "github.com/lucifer43562/wastelink-backend/pkg/db/types"
	"github.com/lucifer43562/wastelink-backend/pkg/enums"
	pkgerrors "github.com/lucifer43562/wastelink-backend/pkg/errors"
	"github.com/lucifer43562/wastelink-backend/pkg/pagination"
)

// Service defines the waste request ledger operations.
type Service interface {
	Create(ctx context.Context, actor Actor, body CreateRequestBody) (*WasteRequestDTO, error)
	List(ctx context.Context, actor Actor, filters ListFilters) (*RequestList, error)
	UpdateStatus(ctx context.Context, actor Actor, requestID uuid.UUID, target enums.RequestStatus) (*WasteRequestDTO, error)
	Delete(ctx context.Context, actor Actor, requestID uuid.UUID) error
}

type accountFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo     Repository
	accounts accountFinder
}

// NewService builds a waste request service with the required dependencies.
func NewService(repo Repository, accounts accountFinder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("requests repository required")
	}
	if accounts == nil {
		return nil, fmt.Errorf("account finder required")
	}
	return &service{repo: repo, accounts: accounts}, nil
}

// Create opens a new pending request. Only customers may create, and the name
// and email snapshots come from the stored account, not the payload.
func (s *service) Create(ctx context.Context, actor Actor, body CreateRequestBody) (*WasteRequestDTO, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if actor.Role != enums.AccountRoleCustomer {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only customers can create waste requests")
	}

	account, err := s.accounts.FindByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load account")
	}

	images := body.Images
	if images == nil {
		images = []string{}
	}

	request := &models.WasteRequest{
		ID:            uuid.New(),
		CustomerID:    account.ID,
		CustomerName:  account.Name,
		CustomerEmail: account.Email,
		WasteType:     strings.TrimSpace(body.WasteType),
		Quantity:      strings.TrimSpace(body.Quantity),
		Location:      strings.TrimSpace(body.Location),
		Description:   strings.TrimSpace(body.Description),
		Images:        dbtypes.StringArray(images),
		Status:        enums.RequestStatusPending,
	}
	if request.WasteType == "" || request.Quantity == "" || request.Location == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "waste_type, quantity, and location are required")
	}

	if err := s.repo.Create(ctx, request); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create waste request")
	}

	dto := fromModel(request)
	return &dto, nil
}

// List returns the ledger slice visible to the actor: customers see their own
// entries, companies see the whole ledger.
func (s *service) List(ctx context.Context, actor Actor, filters ListFilters) (*RequestList, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	cursor, err := pagination.ParseCursor(filters.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	params := listRequestsParams{
		Status: filters.Status,
		Limit:  filters.Limit,
		Cursor: cursor,
	}
	switch actor.Role {
	case enums.AccountRoleCustomer:
		id := actor.UserID
		params.CustomerID = &id
	case enums.AccountRoleCompany:
		// companies browse the full ledger
	default:
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "unknown account role")
	}

	entries, next, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list waste requests")
	}

	list := &RequestList{Requests: make([]WasteRequestDTO, 0, len(entries))}
	for i := range entries {
		list.Requests = append(list.Requests, fromModel(&entries[i]))
	}
	if next != nil {
		list.NextCursor = pagination.EncodeCursor(*next)
	}
	return list, nil
}

// UpdateStatus advances a request one step through the lifecycle. Companies only,
// and only along pending -> accepted -> completed.
func (s *service) UpdateStatus(ctx context.Context, actor Actor, requestID uuid.UUID, target enums.RequestStatus) (*WasteRequestDTO, error) {
	if actor.UserID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if actor.Role != enums.AccountRoleCompany {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only companies can update request status")
	}
	if requestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}
	if !target.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
	}

	current, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "waste request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load waste request")
	}

	if !current.Status.CanTransitionTo(target) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("cannot move request from %s to %s", current.Status, target))
	}

	now := time.Now().UTC()
	applied, err := s.repo.TransitionStatus(ctx, requestID, current.Status, target, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "transition status")
	}
	if !applied {
		// the row moved underneath us between the read and the guarded update
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "request status changed concurrently")
	}

	current.Status = target
	current.UpdatedAt = now
	dto := fromModel(current)
	return &dto, nil
}

// Delete removes a completed request. Only the owning customer may delete, and
// only once the lifecycle has finished.
func (s *service) Delete(ctx context.Context, actor Actor, requestID uuid.UUID) error {
	if actor.UserID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if actor.Role != enums.AccountRoleCustomer {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only customers can delete waste requests")
	}
	if requestID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "request id required")
	}

	current, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "waste request not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load waste request")
	}

	if current.CustomerID != actor.UserID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "request belongs to another customer")
	}
	if current.Status != enums.RequestStatusCompleted {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "only completed requests can be deleted")
	}

	deleted, err := s.repo.Delete(ctx, requestID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete waste request")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "waste request not found")
	}
	return nil
}
