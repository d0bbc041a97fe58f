package bootstrap

import (
	"context"
	"fmt"

	"github.com/asavirtual/flightboard-backend/internal/staff"
	"github.com/asavirtual/flightboard-backend/pkg/config"
	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	"github.com/asavirtual/flightboard-backend/pkg/enums"
	"github.com/asavirtual/flightboard-backend/pkg/logger"
	"github.com/asavirtual/flightboard-backend/pkg/security"
)

type staffRepository interface {
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, dto staff.CreateStaffDTO) (*models.StaffUser, error)
}

// SeedOwner creates the first owner account when the staff directory is
// empty. It is a no-op once any account exists or when seeding is disabled,
// so operators can turn it off after handover. The seeded credentials come
// from config and are warned about loudly so they get rotated.
func SeedOwner(ctx context.Context, repo staffRepository, cfg config.BootstrapConfig, passwordCfg config.PasswordConfig, log *logger.Logger) error {
	if !cfg.SeedOwner {
		return nil
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count staff users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := security.HashPassword(cfg.OwnerPassword, passwordCfg)
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	if _, err := repo.Create(ctx, staff.CreateStaffDTO{
		Username:     cfg.OwnerUsername,
		PasswordHash: hash,
		Role:         enums.StaffRoleOwner,
		CreatedBy:    "system",
	}); err != nil {
		return fmt.Errorf("create bootstrap owner: %w", err)
	}

	log.Warn(log.WithField(ctx, "username", cfg.OwnerUsername),
		"seeded bootstrap owner account with configured credentials; rotate the password and set FLIGHTBOARD_BOOTSTRAP_OWNER=false")
	return nil
}
