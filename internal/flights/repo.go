package flights

import (
	"context"

	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes flight persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a flights repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every flight ordered by (date, time) ascending.
func (r *Repository) List(ctx context.Context) ([]models.Flight, error) {
	var flights []models.Flight
	if err := r.db.WithContext(ctx).Order("date ASC, time ASC").Find(&flights).Error; err != nil {
		return nil, err
	}
	return flights, nil
}

// Create inserts a new flight and returns the persisted model. Flights always
// start inactive with a zero interest counter.
func (r *Repository) Create(ctx context.Context, dto CreateFlightDTO) (*models.Flight, error) {
	flight := dto.ToModel()
	if flight.ID == uuid.Nil {
		flight.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(flight).Error; err != nil {
		return nil, err
	}
	return flight, nil
}

// Delete removes the flight row. Deleting an absent id is a no-op.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Flight{}, "id = ?", id).Error
}

// IncrementInterest bumps the interest counter by one in a single atomic
// UPDATE ... RETURNING and returns the new value. Unknown codes return
// gorm.ErrRecordNotFound.
func (r *Repository) IncrementInterest(ctx context.Context, code string) (int, error) {
	var flight models.Flight
	res := r.db.WithContext(ctx).
		Model(&flight).
		Clauses(clause.Returning{}).
		Where("code = ?", code).
		UpdateColumn("interested", gorm.Expr("interested + 1"))
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return flight.Interested, nil
}

// SetActive flips the activation flag and returns the updated flight.
func (r *Repository) SetActive(ctx context.Context, id uuid.UUID, active bool) (*models.Flight, error) {
	var flight models.Flight
	res := r.db.WithContext(ctx).
		Model(&flight).
		Clauses(clause.Returning{}).
		Where("id = ?", id).
		UpdateColumn("active", active)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &flight, nil
}
