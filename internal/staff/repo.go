package staff

import (
	"context"

	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes staff directory persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a staff repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns the directory newest-first.
func (r *Repository) List(ctx context.Context) ([]models.StaffUser, error) {
	var users []models.StaffUser
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Count reports how many staff accounts exist.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.StaffUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new staff account and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateStaffDTO) (*models.StaffUser, error) {
	user := dto.ToModel()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByUsername retrieves the staff account matching the provided username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	var user models.StaffUser
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the non-nil fields of the patch and returns the updated row.
// An empty patch or an unknown id returns gorm.ErrRecordNotFound.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch UpdateStaffDTO) (*models.StaffUser, error) {
	columns := patch.columns()
	if len(columns) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	res := r.db.WithContext(ctx).
		Model(&models.StaffUser{}).
		Where("id = ?", id).
		UpdateColumns(columns)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var user models.StaffUser
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the staff account. Deleting an absent id is a no-op.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.StaffUser{}, "id = ?", id).Error
}
