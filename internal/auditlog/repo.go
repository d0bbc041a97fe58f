package auditlog

import (
	"context"

	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes action log persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an audit log repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns entries newest-first.
func (r *Repository) List(ctx context.Context) ([]models.ActionLog, error) {
	var entries []models.ActionLog
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Create inserts a new entry and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateEntryDTO) (*models.ActionLog, error) {
	entry := dto.ToModel()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// Delete removes the entry. Deleting an absent id is a no-op.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.ActionLog{}, "id = ?", id).Error
}
