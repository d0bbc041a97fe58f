package auditlog

import (
	"context"
	"fmt"

	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	"github.com/asavirtual/flightboard-backend/pkg/enums"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/session"
	"github.com/google/uuid"
)

// CreateEntryInput carries the fields a staff member supplies when recording
// an action. The entry is always attributed to the acting session.
type CreateEntryInput struct {
	Action     enums.LogAction
	TargetUser string
	Reason     string
}

// Service defines the action log operations consumed by the HTTP layer.
type Service interface {
	List(ctx context.Context, actor session.Session) ([]*EntryDTO, error)
	Create(ctx context.Context, actor session.Session, input CreateEntryInput) (*EntryDTO, error)
	Delete(ctx context.Context, actor session.Session, id uuid.UUID) error
}

type repository interface {
	List(ctx context.Context) ([]models.ActionLog, error)
	Create(ctx context.Context, dto CreateEntryDTO) (*models.ActionLog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo repository
}

// NewService constructs an audit log service backed by the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("auditlog repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, actor session.Session) ([]*EntryDTO, error) {
	if !actor.IsStaff() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "staff role required")
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list action logs")
	}
	dtos := make([]*EntryDTO, 0, len(entries))
	for i := range entries {
		dtos = append(dtos, FromModel(&entries[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, actor session.Session, input CreateEntryInput) (*EntryDTO, error) {
	if !actor.IsStaff() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "staff role required")
	}
	if !input.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid log action")
	}

	entry, err := s.repo.Create(ctx, CreateEntryDTO{
		StaffUsername: actor.Username,
		Action:        input.Action,
		TargetUser:    input.TargetUser,
		Reason:        input.Reason,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create action log")
	}
	return FromModel(entry), nil
}

func (s *service) Delete(ctx context.Context, actor session.Session, id uuid.UUID) error {
	if !actor.IsOwner() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "owner role required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete action log")
	}
	return nil
}
