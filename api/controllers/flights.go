package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/asavirtual/flightboard-backend/api/middleware"
	"github.com/asavirtual/flightboard-backend/api/responses"
	"github.com/asavirtual/flightboard-backend/api/validators"
	"github.com/asavirtual/flightboard-backend/internal/flights"
	pkgerrors "github.com/asavirtual/flightboard-backend/pkg/errors"
	"github.com/asavirtual/flightboard-backend/pkg/logger"
)

// FlightsList returns the full board ordered by departure. It serves both
// the public board and the admin table.
func FlightsList(svc flights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

type createFlightRequest struct {
	Code  string  `json:"code" validate:"required,min=2,max=16"`
	Route string  `json:"route" validate:"required,max=128"`
	Date  string  `json:"date" validate:"required,datetime=2006-01-02"`
	Time  string  `json:"time" validate:"required,datetime=15:04"`
	Gate  string  `json:"gate" validate:"required,max=16"`
	Link  *string `json:"link,omitempty" validate:"omitempty,url"`
}

// FlightsCreate adds a flight to the board. New flights start inactive.
func FlightsCreate(svc flights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var req createFlightRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flight, err := svc.Create(r.Context(), sess, flights.CreateFlightDTO{
			Code:  validators.SanitizeString(req.Code, 16),
			Route: validators.SanitizeString(req.Route, 128),
			Date:  req.Date,
			Time:  req.Time,
			Gate:  validators.SanitizeString(req.Gate, 16),
			Link:  req.Link,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, flight)
	}
}

// FlightsDelete removes a flight from the board.
func FlightsDelete(svc flights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), sess, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

type flightStatusRequest struct {
	Active *bool `json:"active" validate:"required"`
}

// FlightsSetStatus toggles whether a flight is live on the public board.
func FlightsSetStatus(svc flights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := middleware.SessionFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		id, err := validators.ParseUUIDParam(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req flightStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		flight, err := svc.SetActive(r.Context(), sess, id, *req.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, flight)
	}
}

// FlightsInterest registers an anonymous "interested" click on a flight.
func FlightsInterest(svc flights.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := validators.SanitizeString(chi.URLParam(r, "code"), 16)
		if code == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "flight code is required"))
			return
		}

		count, err := svc.IncrementInterest(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"code": code, "interested": count})
	}
}
