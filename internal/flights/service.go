package flights

import (
	"context"
	"errors"
	"fmt"

	"github.com/asavirtual/flightboard-backend/pkg/db"
	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service defines the flight operations consumed by the HTTP layer.
type Service interface {
	List(ctx context.Context) ([]*FlightDTO, error)
	Create(ctx context.Context, actor session.Session, input CreateFlightDTO) (*FlightDTO, error)
	Delete(ctx context.Context, actor session.Session, id uuid.UUID) error
	IncrementInterest(ctx context.Context, code string) (int, error)
	SetActive(ctx context.Context, actor session.Session, id uuid.UUID, active bool) (*FlightDTO, error)
}

type repository interface {
	List(ctx context.Context) ([]models.Flight, error)
	Create(ctx context.Context, dto CreateFlightDTO) (*models.Flight, error)
	Delete(ctx context.Context, id uuid.UUID) error
	IncrementInterest(ctx context.Context, code string) (int, error)
	SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Flight, error)
}

type service struct {
	repo repository
}

// NewService constructs a flight service backed by the provided repository.
func NewService(repo repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("flights repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]*FlightDTO, error) {
	flights, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list flights")
	}
	dtos := make([]*FlightDTO, 0, len(flights))
	for i := range flights {
		dtos = append(dtos, FromModel(&flights[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, actor session.Session, input CreateFlightDTO) (*FlightDTO, error) {
	if !actor.IsStaff() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "staff role required")
	}

	flight, err := s.repo.Create(ctx, input)
	if err != nil {
		if db.IsUniqueViolation(err, "flights_code") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "flight code already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create flight")
	}
	return FromModel(flight), nil
}

func (s *service) Delete(ctx context.Context, actor session.Session, id uuid.UUID) error {
	if !actor.IsStaff() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "staff role required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete flight")
	}
	return nil
}

func (s *service) IncrementInterest(ctx context.Context, code string) (int, error) {
	count, err := s.repo.IncrementInterest(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, pkgerrors.New(pkgerrors.CodeNotFound, "unknown flight code")
		}
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "increment interest")
	}
	return count, nil
}

func (s *service) SetActive(ctx context.Context, actor session.Session, id uuid.UUID, active bool) (*FlightDTO, error) {
	if !actor.IsStaff() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "staff role required")
	}
	flight, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "flight not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set flight status")
	}
	return FromModel(flight), nil
}
