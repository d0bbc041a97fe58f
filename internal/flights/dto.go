package flights

import (
	"time"

	"github.com/asavirtual/flightboard-backend/pkg/db/models"
	"github.com/google/uuid"
)

// FlightDTO is the transport shape for a flight.
type FlightDTO struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Route      string    `json:"route"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Gate       string    `json:"gate"`
	Interested int       `json:"interested"`
	Active     bool      `json:"active"`
	Link       *string   `json:"link,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreateFlightDTO holds the data required by the repo to persist a new flight.
type CreateFlightDTO struct {
	Code  string
	Route string
	Date  string
	Time  string
	Gate  string
	Link  *string
}

func FromModel(f *models.Flight) *FlightDTO {
	if f == nil {
		return nil
	}
	return &FlightDTO{
		ID:         f.ID,
		Code:       f.Code,
		Route:      f.Route,
		Date:       f.Date,
		Time:       f.Time,
		Gate:       f.Gate,
		Interested: f.Interested,
		Active:     f.Active,
		Link:       f.Link,
		CreatedAt:  f.CreatedAt,
	}
}

func (c CreateFlightDTO) ToModel() *models.Flight {
	return &models.Flight{
		Code:       c.Code,
		Route:      c.Route,
		Date:       c.Date,
		Time:       c.Time,
		Gate:       c.Gate,
		Interested: 0,
		Active:     false,
		Link:       c.Link,
	}
}
