package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/asavirtual/flightboard-backend/internal/staff"
	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/security"
	"gorm.io/gorm"
)

// Unknown usernames and wrong passwords produce the same message so login
// failures never reveal which half was wrong.
const invalidCredentialsMessage = "invalid credentials"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type staffRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.StaffUser, error)
}

type service struct {
	staff staffRepository
}

// NewService constructs a login service with the provided staff repository.
func NewService(repo staffRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("staff repository is required")
	}
	return &service{staff: repo}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.staff.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find staff user")
	}

	ok, err := security.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		// a malformed stored hash is indistinguishable from a bad password
		// to the caller
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}

	return &LoginResponse{User: staff.FromModel(user)}, nil
}
