package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/asavirtual/flightboard-backend/pkg/config"
	"github.com/asavirtual/flightboard-backend/pkg/db"
	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	"github.com/asavirtual/flightboard-backend/pkg/enums"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/security"
	"github.com/asavirtual/flightboard-backend/pkg/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateStaffInput carries the plaintext credentials for a new account. The
// service hashes the password before it ever reaches the repo.
type CreateStaffInput struct {
	Username string
	Password string
	Role     enums.StaffRole
}

// UpdateProfileInput lets the authenticated owner rotate their own
// credentials after re-proving the current password.
type UpdateProfileInput struct {
	CurrentPassword string
	NewUsername     string
	NewPassword     string
	ConfirmPassword string
}

// UpdateStaffInput is a partial patch applied by the owner; nil fields are
// left untouched. Password arrives in plaintext and is hashed here.
type UpdateStaffInput struct {
	Username *string
	Password *string
	Role     *enums.StaffRole
}

// Service defines the staff directory operations consumed by the HTTP layer.
type Service interface {
	List(ctx context.Context, actor session.Session) ([]*StaffUserDTO, error)
	Create(ctx context.Context, actor session.Session, input CreateStaffInput) (*StaffUserDTO, error)
	Update(ctx context.Context, actor session.Session, id uuid.UUID, input UpdateStaffInput) (*StaffUserDTO, error)
	Delete(ctx context.Context, actor session.Session, id uuid.UUID) error
	UpdateProfile(ctx context.Context, actor session.Session, input UpdateProfileInput) (*StaffUserDTO, error)
}

type repository interface {
	List(ctx context.Context) ([]models.StaffUser, error)
	Create(ctx context.Context, dto CreateStaffDTO) (*models.StaffUser, error)
	FindByUsername(ctx context.Context, username string) (*models.StaffUser, error)
	Update(ctx context.Context, id uuid.UUID, patch UpdateStaffDTO) (*models.StaffUser, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo        repository
	passwordCfg config.PasswordConfig
}

// NewService constructs a staff service backed by the provided repository.
func NewService(repo repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("staff repository is required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

func (s *service) List(ctx context.Context, actor session.Session) ([]*StaffUserDTO, error) {
	if !actor.IsOwner() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "owner role required")
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list staff")
	}
	dtos := make([]*StaffUserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, FromModel(&users[i]))
	}
	return dtos, nil
}

func (s *service) Create(ctx context.Context, actor session.Session, input CreateStaffInput) (*StaffUserDTO, error) {
	if !actor.IsOwner() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "owner role required")
	}
	if !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid staff role")
	}

	hash, err := security.HashPassword(input.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hash password")
	}

	user, err := s.repo.Create(ctx, CreateStaffDTO{
		Username:     input.Username,
		PasswordHash: hash,
		Role:         input.Role,
		CreatedBy:    actor.Username,
	})
	if err != nil {
		if db.IsUniqueViolation(err, "staff_users_username") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create staff user")
	}
	return FromModel(user), nil
}

func (s *service) Update(ctx context.Context, actor session.Session, id uuid.UUID, input UpdateStaffInput) (*StaffUserDTO, error) {
	if !actor.IsOwner() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "owner role required")
	}
	if input.Role != nil && !input.Role.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid staff role")
	}

	patch := UpdateStaffDTO{Username: input.Username, Role: input.Role}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hash password")
		}
		patch.PasswordHash = &hash
	}
	if patch.Username == nil && patch.PasswordHash == nil && patch.Role == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "staff user not found")
		}
		if db.IsUniqueViolation(err, "staff_users_username") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update staff user")
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, actor session.Session, id uuid.UUID) error {
	if !actor.IsOwner() {
		return pkgerrors.New(pkgerrors.CodeForbidden, "owner role required")
	}

	target, err := s.repo.FindByUsername(ctx, actor.Username)
	if err == nil && target.ID == id {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cannot delete your own account")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete staff user")
	}
	return nil
}

func (s *service) UpdateProfile(ctx context.Context, actor session.Session, input UpdateProfileInput) (*StaffUserDTO, error) {
	if !actor.IsOwner() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "owner role required")
	}

	current, err := s.repo.FindByUsername(ctx, actor.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load profile")
	}

	ok, err := security.VerifyPassword(input.CurrentPassword, current.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	patch := UpdateStaffDTO{}
	if input.NewUsername != "" && input.NewUsername != current.Username {
		patch.Username = &input.NewUsername
	}
	if input.NewPassword != "" {
		if input.NewPassword != input.ConfirmPassword {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "password confirmation does not match")
		}
		hash, err := security.HashPassword(input.NewPassword, s.passwordCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "hash password")
		}
		patch.PasswordHash = &hash
	}
	if patch.Username == nil && patch.PasswordHash == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	updated, err := s.repo.Update(ctx, current.ID, patch)
	if err != nil {
		if db.IsUniqueViolation(err, "staff_users_username") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username already taken")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return FromModel(updated), nil
}
